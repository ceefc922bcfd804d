package repository

import "github.com/tu-usuario/mrp-pro/internal/domain/entity"

// AllocationRepository define el puerto de persistencia para asignaciones
// (reserva -> lote). Las asignaciones pertenecen a su reserva.
type AllocationRepository interface {
	Create(allocation *entity.Allocation) error
	ListByReservation(reservationID string) ([]*entity.Allocation, error)
	DeleteByReservation(reservationID string) error
}
