package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
)

// ReservationRepository define el puerto de persistencia para reservas.
type ReservationRepository interface {
	Create(reservation *entity.Reservation) error
	GetByID(id string) (*entity.Reservation, error)
	// GetForUpdate bloquea la fila de la reserva (SELECT FOR UPDATE) para
	// serializar transiciones de estado concurrentes.
	GetForUpdate(id string) (*entity.Reservation, error)
	Update(reservation *entity.Reservation) error
	ListByOwner(ownerKind, ownerID string) ([]*entity.Reservation, error)
	// SumActiveReserved suma ReservedQty de las reservas ACTIVE del par
	// (producto, bodega). Contraparte de LotRepository.SumReserved.
	SumActiveReserved(productID, warehouseID string) (decimal.Decimal, error)
}
