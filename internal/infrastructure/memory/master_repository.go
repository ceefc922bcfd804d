package memory

import (
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)
var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// ProductRepo lectura en memoria de productos (se alimenta con Store.SeedProduct).
type ProductRepo struct {
	store *Store
}

// NewProductRepository construye el repo sobre un store.
func NewProductRepository(store *Store) *ProductRepo {
	return &ProductRepo{store: store}
}

// GetByID devuelve una copia del producto (nil si no existe).
func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	p, ok := r.store.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// WarehouseRepo lectura en memoria de bodegas (se alimenta con Store.SeedWarehouse).
type WarehouseRepo struct {
	store *Store
}

// NewWarehouseRepository construye el repo sobre un store.
func NewWarehouseRepository(store *Store) *WarehouseRepo {
	return &WarehouseRepo{store: store}
}

// GetByID devuelve una copia de la bodega (nil si no existe).
func (r *WarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	w, ok := r.store.warehouses[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}
