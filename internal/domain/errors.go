package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrInvalidState      = errors.New("estado inválido para la operación")
	ErrCyclicBom         = errors.New("ciclo detectado en la estructura del BOM")
	ErrConsistency       = errors.New("inconsistencia entre reservas y lotes")
)

// InsufficientStockError lleva el faltante conocido al momento de fallar la
// asignación en modo COMMIT. errors.Is(err, ErrInsufficientStock) == true.
type InsufficientStockError struct {
	ProductID   string
	WarehouseID string
	Shortfall   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente para producto %s en bodega %s (faltante %s)",
		e.ProductID, e.WarehouseID, e.Shortfall.String())
}

// Is permite errors.Is contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ConsistencyError describe una deriva detectada entre la suma de reservas
// activas y los contadores reservados de los lotes. Nunca se corrige sola:
// requiere auditoría del operador.
type ConsistencyError struct {
	ProductID     string
	WarehouseID   string
	ReservedTotal decimal.Decimal
	LotTotal      decimal.Decimal
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("deriva de reservas para producto %s en bodega %s: reservas=%s lotes=%s",
		e.ProductID, e.WarehouseID, e.ReservedTotal.String(), e.LotTotal.String())
}

func (e *ConsistencyError) Is(target error) bool {
	return target == ErrConsistency
}
