package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.ReservationRepository = (*ReservationRepo)(nil)

const reservationColumns = "id, product_id, warehouse_id, requested_qty, reserved_qty, status, owner_kind, owner_id, created_by, updated_by, created_at, updated_at"

// ReservationRepo implementación de ReservationRepository sobre PostgreSQL
// (usable con pool o tx).
type ReservationRepo struct {
	q Querier
}

// NewReservationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReservationRepository(q Querier) *ReservationRepo {
	return &ReservationRepo{q: q}
}

// Create persiste una reserva nueva.
func (r *ReservationRepo) Create(res *entity.Reservation) error {
	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		res.ID, res.ProductID, res.WarehouseID, res.RequestedQty, res.ReservedQty,
		res.Status, res.OwnerKind, res.OwnerID, res.CreatedBy, res.UpdatedBy,
		res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create reservation: %w", err)
	}
	return nil
}

// GetByID obtiene una reserva por ID (nil si no existe).
func (r *ReservationRepo) GetByID(id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene la reserva bloqueando la fila (SELECT FOR UPDATE) para
// serializar transiciones de estado.
func (r *ReservationRepo) GetForUpdate(id string) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update guarda estado, cantidad reservada y auditoría de una reserva.
func (r *ReservationRepo) Update(res *entity.Reservation) error {
	query := `
		UPDATE reservations
		SET reserved_qty = $2, status = $3, updated_by = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		res.ID, res.ReservedQty, res.Status, res.UpdatedBy, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update reservation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByOwner lista reservas de un dueño (orden de producción o requerimiento
// de componente).
func (r *ReservationRepo) ListByOwner(ownerKind, ownerID string) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE owner_kind = $1 AND owner_id = $2
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, ownerKind, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list reservations by owner: %w", err)
	}
	defer rows.Close()
	var list []*entity.Reservation
	for rows.Next() {
		var res entity.Reservation
		if err := rows.Scan(&res.ID, &res.ProductID, &res.WarehouseID, &res.RequestedQty,
			&res.ReservedQty, &res.Status, &res.OwnerKind, &res.OwnerID,
			&res.CreatedBy, &res.UpdatedBy, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan reservation: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// SumActiveReserved suma ReservedQty de las reservas ACTIVE del par
// (producto, bodega). Contraparte de la suma de reservados por lote en la
// auditoría de reconciliación.
func (r *ReservationRepo) SumActiveReserved(productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(reserved_qty), 0)
		FROM reservations
		WHERE product_id = $1 AND warehouse_id = $2 AND status = $3`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID,
		entity.ReservationStatusACTIVE).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum active reserved: %w", err)
	}
	return total, nil
}

func (r *ReservationRepo) scanOne(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID, &res.ProductID, &res.WarehouseID, &res.RequestedQty, &res.ReservedQty,
		&res.Status, &res.OwnerKind, &res.OwnerID, &res.CreatedBy, &res.UpdatedBy,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}
	return &res, nil
}
