package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una reserva. CONSUMED, CANCELLED y EXPIRED son terminales.
const (
	ReservationStatusPENDING   = "PENDING"   // solicitada, sin asignaciones
	ReservationStatusACTIVE    = "ACTIVE"    // asignada total o parcialmente a lotes
	ReservationStatusCONSUMED  = "CONSUMED"  // stock retirado, reserva cerrada
	ReservationStatusCANCELLED = "CANCELLED" // cancelada por el caller
	ReservationStatusEXPIRED   = "EXPIRED"   // vencida por scheduler externo
)

// Tipos de dueño de una reserva (variante etiquetada).
const (
	OwnerKindProductionOrder      = "PRODUCTION_ORDER"
	OwnerKindComponentRequirement = "COMPONENT_REQUIREMENT"
)

// Reservation representa un reclamo pendiente contra el stock de un producto
// en una bodega. Invariantes: ReservedQty <= RequestedQty y la suma de sus
// asignaciones activas es igual a ReservedQty.
type Reservation struct {
	ID           string
	ProductID    string
	WarehouseID  string
	RequestedQty decimal.Decimal
	ReservedQty  decimal.Decimal
	Status       string
	OwnerKind    string
	OwnerID      string
	CreatedBy    string
	UpdatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsTerminal indica si la reserva está en un estado sin transiciones de salida.
func (r *Reservation) IsTerminal() bool {
	switch r.Status {
	case ReservationStatusCONSUMED, ReservationStatusCANCELLED, ReservationStatusEXPIRED:
		return true
	}
	return false
}

// ValidOwnerKind valida el tipo de dueño.
func ValidOwnerKind(kind string) bool {
	return kind == OwnerKindProductionOrder || kind == OwnerKindComponentRequirement
}
