package allocation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/inventory"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// Mode modo de operación del asignador FIFO.
type Mode string

const (
	// ModeSimulate plan de solo lectura: costeo y consulta de disponibilidad.
	ModeSimulate Mode = "SIMULATE"
	// ModeCommit plan aplicado: reserva cada entrada contra el libro de
	// inventario dentro de la transacción del caller.
	ModeCommit Mode = "COMMIT"
)

// Allocator selecciona lotes en orden FIFO para cubrir una cantidad requerida
// de un producto en una bodega. El mismo plan sirve para reservar físicamente
// (COMMIT) y para costear sin mutar nada (SIMULATE).
type Allocator struct {
	lotRepo repository.LotRepository // atado al pool; solo lecturas
}

// NewAllocator construye el asignador con un repositorio de lotes de solo
// lectura (conexión de pool, aislamiento read-committed).
func NewAllocator(lotRepo repository.LotRepository) *Allocator {
	return &Allocator{lotRepo: lotRepo}
}

// Simulate produce un plan FIFO sin mutar estado. Dos llamadas sin commits
// intermedios devuelven planes idénticos (orden por fecha de entrada con
// desempate por ID de lote).
func (a *Allocator) Simulate(ctx context.Context, productID, warehouseID string, requiredQty decimal.Decimal) (*inventory.Plan, error) {
	if productID == "" || warehouseID == "" || requiredQty.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	lots, err := a.lotRepo.ListAvailable(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	return inventory.PlanFIFO(lots, requiredQty), nil
}

// CommitInTx es el modo COMMIT del plan: debe invocarse dentro de una
// transacción, con un LotRepository atado a ella. Bloquea las filas de los
// lotes disponibles (SELECT FOR UPDATE, orden FIFO), re-planea contra el
// estado bloqueado y aplica ledger.Reserve por cada entrada. Si alguna
// reserva falla (agotamiento concurrente) la transacción completa se revierte
// en el caller y se devuelve InsufficientStockError con el último faltante
// conocido; nunca queda estado parcial.
//
// Un plan con faltante (Shortfall > 0) NO es un error: se reserva lo
// satisfecho y el caller decide si acepta parcial o reintenta. Solo el
// agotamiento real se traduce a InsufficientStockError; cualquier otro fallo
// del repositorio se propaga sin cambiar.
func (a *Allocator) CommitInTx(lotRepo repository.LotRepository, productID, warehouseID string, requiredQty decimal.Decimal) (*inventory.Plan, error) {
	if productID == "" || warehouseID == "" || !requiredQty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	lots, err := lotRepo.ListAvailableForUpdate(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	plan := inventory.PlanFIFO(lots, requiredQty)
	reserved := decimal.Zero
	for _, entry := range plan.Entries {
		if err := ledger.Reserve(lotRepo, entry.Lot.ID, entry.Quantity); err != nil {
			if errors.Is(err, domain.ErrInsufficientStock) {
				// Todo lo aún no reservado cuenta como faltante, incluidas
				// las entradas posteriores a la que falló.
				return nil, &domain.InsufficientStockError{
					ProductID:   productID,
					WarehouseID: warehouseID,
					Shortfall:   requiredQty.Sub(reserved),
				}
			}
			return nil, fmt.Errorf("reservar lote %s: %w", entry.Lot.ID, err)
		}
		reserved = reserved.Add(entry.Quantity)
	}
	return plan, nil
}
