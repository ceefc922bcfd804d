package memory

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

// ReservationRepo implementación en memoria de ReservationRepository.
type ReservationRepo struct {
	store *Store
}

// NewReservationRepository construye el repo sobre un store.
func NewReservationRepository(store *Store) *ReservationRepo {
	return &ReservationRepo{store: store}
}

// Create guarda una reserva nueva.
func (r *ReservationRepo) Create(res *entity.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reservations[res.ID]; ok {
		return domain.ErrDuplicate
	}
	r.store.reservations[res.ID] = *res
	return nil
}

// GetByID devuelve una copia de la reserva (nil si no existe).
func (r *ReservationRepo) GetByID(id string) (*entity.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	res, ok := r.store.reservations[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

// GetForUpdate en memoria equivale a GetByID (serializa el TxRunner).
func (r *ReservationRepo) GetForUpdate(id string) (*entity.Reservation, error) {
	return r.GetByID(id)
}

// Update reemplaza los datos guardados de la reserva.
func (r *ReservationRepo) Update(res *entity.Reservation) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.reservations[res.ID]; !ok {
		return domain.ErrNotFound
	}
	r.store.reservations[res.ID] = *res
	return nil
}

// ListByOwner lista las reservas de un dueño ordenadas por fecha de creación.
func (r *ReservationRepo) ListByOwner(ownerKind, ownerID string) ([]*entity.Reservation, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var list []*entity.Reservation
	for _, res := range r.store.reservations {
		if res.OwnerKind == ownerKind && res.OwnerID == ownerID {
			copia := res
			list = append(list, &copia)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// SumActiveReserved suma ReservedQty de las reservas ACTIVE del par.
func (r *ReservationRepo) SumActiveReserved(productID, warehouseID string) (decimal.Decimal, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	total := decimal.Zero
	for _, res := range r.store.reservations {
		if res.ProductID == productID && res.WarehouseID == warehouseID &&
			res.Status == entity.ReservationStatusACTIVE {
			total = total.Add(res.ReservedQty)
		}
	}
	return total, nil
}
