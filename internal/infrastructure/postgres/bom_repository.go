package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación de BOMRepository sobre PostgreSQL (solo lectura:
// la edición de BOMs pertenece al sistema circundante).
type BOMRepo struct {
	q Querier
}

// NewBOMRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBOMRepository(q Querier) *BOMRepo {
	return &BOMRepo{q: q}
}

// GetByID obtiene un BOM por ID (nil si no existe).
func (r *BOMRepo) GetByID(id string) (*entity.BOM, error) {
	query := `
		SELECT id, product_id, name, created_at, updated_at
		FROM boms WHERE id = $1`
	var b entity.BOM
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.ProductID, &b.Name, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bom: %w", err)
	}
	return &b, nil
}

// ListNodes devuelve los componentes directos de un BOM con su posible BOM
// anidado, en orden estable por ID.
func (r *BOMRepo) ListNodes(bomID string) ([]*entity.BOMNode, error) {
	query := `
		SELECT id, bom_id, product_id, qty_per_unit, child_bom_id, created_at
		FROM bom_nodes
		WHERE bom_id = $1
		ORDER BY id ASC`
	rows, err := r.q.Query(context.Background(), query, bomID)
	if err != nil {
		return nil, fmt.Errorf("list bom nodes: %w", err)
	}
	defer rows.Close()
	var nodes []*entity.BOMNode
	for rows.Next() {
		var n entity.BOMNode
		if err := rows.Scan(&n.ID, &n.BOMID, &n.ProductID, &n.QtyPerUnit, &n.ChildBOMID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bom node: %w", err)
		}
		nodes = append(nodes, &n)
	}
	return nodes, rows.Err()
}
