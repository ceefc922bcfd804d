package repository

import "github.com/tu-usuario/mrp-pro/internal/domain/entity"

// WarehouseRepository puerto de lectura de bodegas (validación de referencias).
type WarehouseRepository interface {
	GetByID(id string) (*entity.Warehouse, error)
}
