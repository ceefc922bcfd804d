package memory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/inventory"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo implementación en memoria de LotRepository.
type LotRepo struct {
	store *Store
}

// NewLotRepository construye el repo sobre un store.
func NewLotRepository(store *Store) *LotRepo {
	return &LotRepo{store: store}
}

// Create guarda un lote nuevo.
func (r *LotRepo) Create(lot *entity.InventoryLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.lots[lot.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.lots[lot.ID] = *lot
	return nil
}

// GetByID devuelve una copia del lote (nil si no existe).
func (r *LotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	lot, ok := r.store.lots[id]
	if !ok {
		return nil, nil
	}
	return &lot, nil
}

// GetForUpdate en memoria equivale a GetByID: la serialización la aporta el
// mutex del TxRunner, no un lock por fila.
func (r *LotRepo) GetForUpdate(id string) (*entity.InventoryLot, error) {
	return r.GetByID(id)
}

// Update reemplaza los datos guardados del lote.
func (r *LotRepo) Update(lot *entity.InventoryLot) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.lots[lot.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.lots[lot.ID] = *lot
	return nil
}

// ListAvailable lotes con remanente > 0 en orden FIFO determinista.
func (r *LotRepo) ListAvailable(productID, warehouseID string) ([]*entity.InventoryLot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var lots []*entity.InventoryLot
	for _, lot := range r.store.lots {
		if lot.ProductID != productID || lot.WarehouseID != warehouseID {
			continue
		}
		if lot.Available().LessThanOrEqual(decimal.Zero) {
			continue
		}
		copia := lot
		lots = append(lots, &copia)
	}
	inventory.SortLotsFIFO(lots)
	return lots, nil
}

// ListAvailableForUpdate igual que ListAvailable (ver GetForUpdate).
func (r *LotRepo) ListAvailableForUpdate(productID, warehouseID string) ([]*entity.InventoryLot, error) {
	return r.ListAvailable(productID, warehouseID)
}

// SumReserved suma el contador reservado de los lotes del par.
func (r *LotRepo) SumReserved(productID, warehouseID string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	total := decimal.Zero
	for _, lot := range r.store.lots {
		if lot.ProductID == productID && lot.WarehouseID == warehouseID {
			total = total.Add(lot.Reserved)
		}
	}
	return total, nil
}
