package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BOM es la lista de materiales para producir una unidad de un producto.
type BOM struct {
	ID        string
	ProductID string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BOMNode es un requerimiento de componente dentro de un BOM. Si ChildBOMID
// no es nil el componente es un subensamble con su propio BOM anidado.
// El grafo (BOM, descendientes) debe ser acíclico; un ciclo es un error de
// datos, no una condición de ejecución.
type BOMNode struct {
	ID         string
	BOMID      string
	ProductID  string
	QtyPerUnit decimal.Decimal
	ChildBOMID *string
	CreatedAt  time.Time
}
