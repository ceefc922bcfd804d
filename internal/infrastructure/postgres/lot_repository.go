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

var _ repository.LotRepository = (*LotRepo)(nil)

const lotColumns = "id, product_id, warehouse_id, on_hand, reserved, unit_cost, entry_date, created_by, created_at, updated_at"

// LotRepo implementación de LotRepository sobre PostgreSQL (usable con pool o tx).
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

// Create persiste un lote nuevo (recepción de stock).
func (r *LotRepo) Create(lot *entity.InventoryLot) error {
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_lots (` + lotColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.ProductID, lot.WarehouseID, lot.OnHand, lot.Reserved,
		lot.UnitCost, lot.EntryDate, lot.CreatedBy, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID (nil si no existe).
func (r *LotRepo) GetByID(id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// GetForUpdate obtiene un lote bloqueando la fila (SELECT FOR UPDATE).
// Serializa a los escritores concurrentes del mismo lote.
func (r *LotRepo) GetForUpdate(id string) (*entity.InventoryLot, error) {
	query := `SELECT ` + lotColumns + ` FROM inventory_lots WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

// Update guarda los contadores OnHand/Reserved del lote (un solo update por
// clave para evitar lost updates).
func (r *LotRepo) Update(lot *entity.InventoryLot) error {
	query := `
		UPDATE inventory_lots
		SET on_hand = $2, reserved = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		lot.ID, lot.OnHand, lot.Reserved, lot.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update lot: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListAvailable lotes con remanente disponible para (producto, bodega) en
// orden FIFO: fecha de entrada ascendente, desempate por ID.
func (r *LotRepo) ListAvailable(productID, warehouseID string) ([]*entity.InventoryLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM inventory_lots
		WHERE product_id = $1 AND warehouse_id = $2 AND on_hand - reserved > 0
		ORDER BY entry_date ASC, id ASC`
	return r.list(query, productID, warehouseID)
}

// ListAvailableForUpdate igual que ListAvailable pero bloqueando las filas
// durante toda la asignación (modo COMMIT del Allocator).
func (r *LotRepo) ListAvailableForUpdate(productID, warehouseID string) ([]*entity.InventoryLot, error) {
	query := `
		SELECT ` + lotColumns + `
		FROM inventory_lots
		WHERE product_id = $1 AND warehouse_id = $2 AND on_hand - reserved > 0
		ORDER BY entry_date ASC, id ASC
		FOR UPDATE`
	return r.list(query, productID, warehouseID)
}

// SumReserved suma el contador reservado de todos los lotes del par.
func (r *LotRepo) SumReserved(productID, warehouseID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(reserved), 0)
		FROM inventory_lots
		WHERE product_id = $1 AND warehouse_id = $2`
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum reserved: %w", err)
	}
	return total, nil
}

func (r *LotRepo) scanOne(row pgx.Row) (*entity.InventoryLot, error) {
	var l entity.InventoryLot
	err := row.Scan(
		&l.ID, &l.ProductID, &l.WarehouseID, &l.OnHand, &l.Reserved,
		&l.UnitCost, &l.EntryDate, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lot: %w", err)
	}
	return &l, nil
}

func (r *LotRepo) list(query string, args ...any) ([]*entity.InventoryLot, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list lots: %w", err)
	}
	defer rows.Close()
	var lots []*entity.InventoryLot
	for rows.Next() {
		var l entity.InventoryLot
		if err := rows.Scan(&l.ID, &l.ProductID, &l.WarehouseID, &l.OnHand, &l.Reserved,
			&l.UnitCost, &l.EntryDate, &l.CreatedBy, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lot: %w", err)
		}
		lots = append(lots, &l)
	}
	return lots, rows.Err()
}
