package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLot representa un lote físico de un producto en una bodega.
// La fecha de entrada define el orden FIFO; el costo unitario queda fijo
// al momento del ingreso. Invariante: 0 <= Reserved <= OnHand.
// Un lote consumido por completo se conserva con cantidades en cero (auditoría).
type InventoryLot struct {
	ID          string
	ProductID   string
	WarehouseID string
	OnHand      decimal.Decimal
	Reserved    decimal.Decimal
	UnitCost    decimal.Decimal
	EntryDate   time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Available devuelve el remanente consumible del lote (OnHand - Reserved).
func (l *InventoryLot) Available() decimal.Decimal {
	return l.OnHand.Sub(l.Reserved)
}
