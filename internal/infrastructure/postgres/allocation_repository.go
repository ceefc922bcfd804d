package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.AllocationRepository = (*AllocationRepo)(nil)

// AllocationRepo implementación de AllocationRepository sobre PostgreSQL
// (usable con pool o tx).
type AllocationRepo struct {
	q Querier
}

// NewAllocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAllocationRepository(q Querier) *AllocationRepo {
	return &AllocationRepo{q: q}
}

// Create persiste una asignación reserva -> lote con su costo congelado.
func (r *AllocationRepo) Create(alloc *entity.Allocation) error {
	if alloc.ID == "" {
		alloc.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reservation_allocations (id, reservation_id, lot_id, quantity, unit_cost, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		alloc.ID, alloc.ReservationID, alloc.LotID, alloc.Quantity, alloc.UnitCost, alloc.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create allocation: %w", err)
	}
	return nil
}

// ListByReservation lista las asignaciones de una reserva en orden de creación.
func (r *AllocationRepo) ListByReservation(reservationID string) ([]*entity.Allocation, error) {
	query := `
		SELECT id, reservation_id, lot_id, quantity, unit_cost, created_at
		FROM reservation_allocations
		WHERE reservation_id = $1
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(context.Background(), query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Allocation
	for rows.Next() {
		var a entity.Allocation
		if err := rows.Scan(&a.ID, &a.ReservationID, &a.LotID, &a.Quantity, &a.UnitCost, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// DeleteByReservation elimina las asignaciones de una reserva (cancelación o
// expiración; en consumo se conservan para auditoría).
func (r *AllocationRepo) DeleteByReservation(reservationID string) error {
	query := `DELETE FROM reservation_allocations WHERE reservation_id = $1`
	_, err := r.q.Exec(context.Background(), query, reservationID)
	if err != nil {
		return fmt.Errorf("delete allocations: %w", err)
	}
	return nil
}
