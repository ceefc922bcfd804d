package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// ReceiptUseCase registra recepciones de stock (compra o salida de producción)
// creando un lote nuevo de forma transaccional.
type ReceiptUseCase struct {
	txRunner      TxRunner
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		txRunner:      txRunner,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
	}
}

// RegisterReceipt crea un lote nuevo para (producto, bodega) con la cantidad,
// el costo unitario y la fecha de entrada dados. La fecha de entrada define
// la posición FIFO del lote; si viene en cero se usa el momento actual.
func (uc *ReceiptUseCase) RegisterReceipt(
	ctx context.Context,
	productID, warehouseID string,
	qty, unitCost decimal.Decimal,
	entryDate time.Time,
	userID string,
) (*entity.InventoryLot, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !qty.GreaterThan(decimal.Zero) || unitCost.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto %s: %w", productID, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(warehouseID)
	if err != nil {
		return nil, fmt.Errorf("consultar bodega %s: %w", warehouseID, err)
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	if entryDate.IsZero() {
		entryDate = now
	}
	lot := &entity.InventoryLot{
		ID:          uuid.New().String(),
		ProductID:   productID,
		WarehouseID: warehouseID,
		OnHand:      qty,
		Reserved:    decimal.Zero,
		UnitCost:    unitCost,
		EntryDate:   entryDate,
		CreatedBy:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunLots(ctx, func(lotRepo repository.LotRepository) error {
		return lotRepo.Create(lot)
	})
	if err != nil {
		return nil, err
	}
	return lot, nil
}
