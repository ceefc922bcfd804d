package repository

import "github.com/tu-usuario/mrp-pro/internal/domain/entity"

// BOMRepository define el puerto de consulta de listas de materiales.
// La edición de BOMs vive fuera de este módulo; aquí solo se leen.
type BOMRepository interface {
	GetByID(id string) (*entity.BOM, error)
	// ListNodes devuelve los componentes directos de un BOM con su posible
	// BOM anidado (subensamble).
	ListNodes(bomID string) ([]*entity.BOMNode, error)
}
