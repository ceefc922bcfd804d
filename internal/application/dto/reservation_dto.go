package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateReservationRequest entrada HTTP para crear una reserva.
type CreateReservationRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	OwnerKind   string          `json:"owner_kind"`
	OwnerID     string          `json:"owner_id"`
}

// ReservationResponse representación de una reserva hacia afuera.
type ReservationResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"product_id"`
	WarehouseID  string          `json:"warehouse_id"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
	ReservedQty  decimal.Decimal `json:"reserved_qty"`
	Status       string          `json:"status"`
	OwnerKind    string          `json:"owner_kind"`
	OwnerID      string          `json:"owner_id"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreateReservationResult reserva creada más el faltante visible al caller
// (cero si quedó totalmente asignada).
type CreateReservationResult struct {
	Reservation ReservationResponse `json:"reservation"`
	Shortfall   decimal.Decimal     `json:"shortfall"`
}

// AuditReport resultado de la auditoría de reconciliación para un par
// (producto, bodega). La deriva se reporta, nunca se corrige.
type AuditReport struct {
	ProductID        string          `json:"product_id"`
	WarehouseID      string          `json:"warehouse_id"`
	ReservationTotal decimal.Decimal `json:"reservation_total"`
	LotTotal         decimal.Decimal `json:"lot_total"`
	Consistent       bool            `json:"consistent"`
	Difference       decimal.Decimal `json:"difference"`
}

// RegisterReceiptRequest entrada HTTP para registrar una recepción de stock.
type RegisterReceiptRequest struct {
	ProductID   string          `json:"product_id"`
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unit_cost"`
	EntryDate   *time.Time      `json:"entry_date,omitempty"`
}
