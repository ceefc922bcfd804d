package memory

import (
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.BOMRepository = (*BOMRepo)(nil)

// BOMRepo implementación en memoria de BOMRepository (se alimenta con
// Store.SeedBOM).
type BOMRepo struct {
	store *Store
}

// NewBOMRepository construye el repo sobre un store.
func NewBOMRepository(store *Store) *BOMRepo {
	return &BOMRepo{store: store}
}

// GetByID devuelve una copia del BOM (nil si no existe).
func (r *BOMRepo) GetByID(id string) (*entity.BOM, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	bom, ok := r.store.boms[id]
	if !ok {
		return nil, nil
	}
	return &bom, nil
}

// ListNodes devuelve los componentes directos del BOM en el orden sembrado.
func (r *BOMRepo) ListNodes(bomID string) ([]*entity.BOMNode, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	nodes := r.store.bomNodes[bomID]
	list := make([]*entity.BOMNode, 0, len(nodes))
	for i := range nodes {
		copia := nodes[i]
		list = append(list, &copia)
	}
	return list, nil
}
