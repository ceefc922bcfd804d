package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/inventory"
)

func lote(id string, entry time.Time, onHand, reserved, cost float64) *entity.InventoryLot {
	return &entity.InventoryLot{
		ID:          id,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		OnHand:      decimal.NewFromFloat(onHand),
		Reserved:    decimal.NewFromFloat(reserved),
		UnitCost:    decimal.NewFromFloat(cost),
		EntryDate:   entry,
	}
}

func fecha(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// El plan debe consumir exclusivamente del lote más antiguo cuando éste
// alcanza para cubrir la cantidad requerida.
func TestPlanFIFO_ConsumeSoloElMasAntiguo(t *testing.T) {
	lots := []*entity.InventoryLot{
		lote("L3", fecha("2024-03-01"), 10, 0, 7),
		lote("L1", fecha("2024-01-01"), 10, 0, 5),
		lote("L2", fecha("2024-02-01"), 10, 0, 6),
	}

	plan := inventory.PlanFIFO(lots, decimal.NewFromInt(8))

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "L1", plan.Entries[0].Lot.ID)
	assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(8)))
	assert.True(t, plan.Shortfall.IsZero())
	assert.True(t, plan.FullySatisfied())
}

// Escenario de referencia: L1 (2024-01-01, 10 @ 5.00) y L2 (2024-01-05,
// 10 @ 6.00); 15 unidades -> [L1: 10 @ 5.00, L2: 5 @ 6.00], costo 80.00.
func TestPlanFIFO_CruzaLotes(t *testing.T) {
	lots := []*entity.InventoryLot{
		lote("L1", fecha("2024-01-01"), 10, 0, 5),
		lote("L2", fecha("2024-01-05"), 10, 0, 6),
	}

	plan := inventory.PlanFIFO(lots, decimal.NewFromInt(15))

	require.Len(t, plan.Entries, 2)
	assert.Equal(t, "L1", plan.Entries[0].Lot.ID)
	assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "L2", plan.Entries[1].Lot.ID)
	assert.True(t, plan.Entries[1].Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, plan.Satisfied.Equal(decimal.NewFromInt(15)))
	assert.True(t, plan.TotalCost.Equal(decimal.NewFromInt(80)))
	assert.True(t, plan.Shortfall.IsZero())
}

// Empate de fechas: desempata por ID de lote para que dos planes sobre el
// mismo estado sean idénticos.
func TestPlanFIFO_DesempatePorID(t *testing.T) {
	mismaFecha := fecha("2024-01-01")
	lots := []*entity.InventoryLot{
		lote("L-b", mismaFecha, 10, 0, 6),
		lote("L-a", mismaFecha, 10, 0, 5),
	}

	plan := inventory.PlanFIFO(lots, decimal.NewFromInt(5))

	require.Len(t, plan.Entries, 1)
	assert.Equal(t, "L-a", plan.Entries[0].Lot.ID)
}

// Lo reservado no está disponible: el plan solo ve OnHand - Reserved.
func TestPlanFIFO_RespetaReservado(t *testing.T) {
	lots := []*entity.InventoryLot{
		lote("L1", fecha("2024-01-01"), 10, 8, 5),
		lote("L2", fecha("2024-02-01"), 10, 0, 6),
	}

	plan := inventory.PlanFIFO(lots, decimal.NewFromInt(5))

	require.Len(t, plan.Entries, 2)
	assert.True(t, plan.Entries[0].Quantity.Equal(decimal.NewFromInt(2)))
	assert.True(t, plan.Entries[1].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, plan.Shortfall.IsZero())
}

// Stock agotado: el plan reporta el faltante y lo satisfecho parcial.
func TestPlanFIFO_Faltante(t *testing.T) {
	lots := []*entity.InventoryLot{
		lote("L1", fecha("2024-01-01"), 4, 0, 5),
	}

	plan := inventory.PlanFIFO(lots, decimal.NewFromInt(6))

	assert.True(t, plan.Satisfied.Equal(decimal.NewFromInt(4)))
	assert.True(t, plan.Shortfall.Equal(decimal.NewFromInt(2)))
	assert.False(t, plan.FullySatisfied())
}

// Cantidad cero o negativa: plan vacío sin faltante.
func TestPlanFIFO_CantidadNoPositiva(t *testing.T) {
	lots := []*entity.InventoryLot{
		lote("L1", fecha("2024-01-01"), 10, 0, 5),
	}

	plan := inventory.PlanFIFO(lots, decimal.Zero)

	assert.Empty(t, plan.Entries)
	assert.True(t, plan.Shortfall.IsZero())
	assert.True(t, plan.TotalCost.IsZero())
}

// Determinismo: dos planes sin commits intermedios son idénticos.
func TestPlanFIFO_Determinista(t *testing.T) {
	lots := func() []*entity.InventoryLot {
		return []*entity.InventoryLot{
			lote("L2", fecha("2024-01-05"), 7, 1, 6),
			lote("L1", fecha("2024-01-01"), 3, 0, 5),
			lote("L3", fecha("2024-01-05"), 9, 0, 7),
		}
	}

	p1 := inventory.PlanFIFO(lots(), decimal.NewFromInt(12))
	p2 := inventory.PlanFIFO(lots(), decimal.NewFromInt(12))

	require.Equal(t, len(p1.Entries), len(p2.Entries))
	for i := range p1.Entries {
		assert.Equal(t, p1.Entries[i].Lot.ID, p2.Entries[i].Lot.ID)
		assert.True(t, p1.Entries[i].Quantity.Equal(p2.Entries[i].Quantity))
	}
	assert.True(t, p1.TotalCost.Equal(p2.TotalCost))
}
