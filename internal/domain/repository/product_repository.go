package repository

import "github.com/tu-usuario/mrp-pro/internal/domain/entity"

// ProductRepository puerto de lectura de productos (validación de referencias).
type ProductRepository interface {
	GetByID(id string) (*entity.Product, error)
}
