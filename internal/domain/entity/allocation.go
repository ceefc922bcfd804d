package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation vincula una reserva con un lote específico. UnitCost es una
// copia del costo del lote al momento de asignar, para estabilidad de
// auditoría aunque el lote cambie después.
type Allocation struct {
	ID            string
	ReservationID string
	LotID         string
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	CreatedAt     time.Time
}
