package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
)

// LotRepository define el puerto de persistencia para lotes de inventario.
// Las variantes ForUpdate bloquean filas (SELECT FOR UPDATE) y solo tienen
// sentido dentro de una transacción.
type LotRepository interface {
	Create(lot *entity.InventoryLot) error
	GetByID(id string) (*entity.InventoryLot, error)
	GetForUpdate(id string) (*entity.InventoryLot, error)
	Update(lot *entity.InventoryLot) error
	// ListAvailable devuelve los lotes con OnHand - Reserved > 0 para un
	// producto en una bodega, ordenados por fecha de entrada ascendente y
	// desempate por ID (determinismo FIFO).
	ListAvailable(productID, warehouseID string) ([]*entity.InventoryLot, error)
	// ListAvailableForUpdate igual que ListAvailable pero bloqueando las filas.
	ListAvailableForUpdate(productID, warehouseID string) ([]*entity.InventoryLot, error)
	// SumReserved suma el contador Reserved de todos los lotes del par
	// (producto, bodega). Usado por la auditoría de reconciliación.
	SumReserved(productID, warehouseID string) (decimal.Decimal, error)
}
