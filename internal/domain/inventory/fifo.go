package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
)

// PlanEntry una línea del plan FIFO: cuánto tomar de qué lote y a qué costo.
type PlanEntry struct {
	Lot      *entity.InventoryLot
	Quantity decimal.Decimal
	UnitCost decimal.Decimal
}

// Plan resultado de planear una asignación FIFO.
// Shortfall = Required - Satisfied (cero si alcanzó el stock).
type Plan struct {
	Entries   []PlanEntry
	Required  decimal.Decimal
	Satisfied decimal.Decimal
	Shortfall decimal.Decimal
	TotalCost decimal.Decimal
}

// FullySatisfied indica si el plan cubre toda la cantidad requerida.
func (p *Plan) FullySatisfied() bool {
	return p.Shortfall.IsZero()
}

// SortLotsFIFO ordena lotes por fecha de entrada ascendente, con desempate
// por ID para que dos planes sobre el mismo estado sean idénticos.
func SortLotsFIFO(lots []*entity.InventoryLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		if lots[i].EntryDate.Equal(lots[j].EntryDate) {
			return lots[i].ID < lots[j].ID
		}
		return lots[i].EntryDate.Before(lots[j].EntryDate)
	})
}

// PlanFIFO recorre los lotes en orden FIFO y toma de cada uno
// min(restante, disponible) hasta cubrir required o agotar los lotes.
// No muta los lotes; el costo unitario de cada entrada es una copia del
// costo del lote (servicio de dominio puro, igual de utilizable para
// simulación de costeo que para reserva física).
func PlanFIFO(lots []*entity.InventoryLot, required decimal.Decimal) *Plan {
	plan := &Plan{
		Required:  required,
		Satisfied: decimal.Zero,
		TotalCost: decimal.Zero,
	}
	if required.LessThanOrEqual(decimal.Zero) {
		plan.Shortfall = decimal.Zero
		return plan
	}

	SortLotsFIFO(lots)

	remaining := required
	for _, lot := range lots {
		if remaining.IsZero() {
			break
		}
		available := lot.Available()
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}
		take := decimal.Min(remaining, available)
		plan.Entries = append(plan.Entries, PlanEntry{
			Lot:      lot,
			Quantity: take,
			UnitCost: lot.UnitCost,
		})
		plan.Satisfied = plan.Satisfied.Add(take)
		plan.TotalCost = plan.TotalCost.Add(take.Mul(lot.UnitCost))
		remaining = remaining.Sub(take)
	}
	plan.Shortfall = remaining
	return plan
}
