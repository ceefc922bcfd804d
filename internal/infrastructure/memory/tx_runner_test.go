package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
	"github.com/tu-usuario/mrp-pro/internal/infrastructure/memory"
)

// Si fn devuelve error, todo lo mutado dentro de la transacción se revierte;
// mismo contrato observable que el Rollback de PostgreSQL.
func TestTxRunner_RollbackAnteError(t *testing.T) {
	store := memory.NewStore()
	lots := memory.NewLotRepository(store)
	require.NoError(t, lots.Create(&entity.InventoryLot{
		ID:          "L1",
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		OnHand:      decimal.NewFromInt(10),
		Reserved:    decimal.Zero,
		UnitCost:    decimal.NewFromInt(5),
		EntryDate:   time.Now(),
	}))

	fallo := errors.New("fallo a mitad de camino")
	err := memory.NewTxRunner(store).Run(context.Background(), func(
		lotRepo repository.LotRepository,
		resRepo repository.ReservationRepository,
		allocRepo repository.AllocationRepository,
	) error {
		lot, err := lotRepo.GetForUpdate("L1")
		require.NoError(t, err)
		lot.Reserved = decimal.NewFromInt(7)
		require.NoError(t, lotRepo.Update(lot))

		require.NoError(t, resRepo.Create(&entity.Reservation{
			ID:           "R1",
			ProductID:    "prod-1",
			WarehouseID:  "wh-1",
			RequestedQty: decimal.NewFromInt(7),
			Status:       entity.ReservationStatusPENDING,
		}))
		require.NoError(t, allocRepo.Create(&entity.Allocation{
			ID:            "A1",
			ReservationID: "R1",
			LotID:         "L1",
			Quantity:      decimal.NewFromInt(7),
		}))
		return fallo
	})
	require.ErrorIs(t, err, fallo)

	lot, err := lots.GetByID("L1")
	require.NoError(t, err)
	assert.True(t, lot.Reserved.IsZero(), "la reserva del lote debe revertirse")

	res, err := memory.NewReservationRepository(store).GetByID("R1")
	require.NoError(t, err)
	assert.Nil(t, res, "la reserva creada debe revertirse")

	allocs, err := memory.NewAllocationRepository(store).ListByReservation("R1")
	require.NoError(t, err)
	assert.Empty(t, allocs, "las asignaciones creadas deben revertirse")
}

// Con fn exitosa, las mutaciones sobreviven a la transacción.
func TestTxRunner_CommitConservaMutaciones(t *testing.T) {
	store := memory.NewStore()
	lots := memory.NewLotRepository(store)
	require.NoError(t, lots.Create(&entity.InventoryLot{
		ID:          "L1",
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		OnHand:      decimal.NewFromInt(10),
		Reserved:    decimal.Zero,
		UnitCost:    decimal.NewFromInt(5),
		EntryDate:   time.Now(),
	}))

	err := memory.NewTxRunner(store).RunLots(context.Background(), func(lotRepo repository.LotRepository) error {
		lot, err := lotRepo.GetForUpdate("L1")
		if err != nil {
			return err
		}
		lot.Reserved = decimal.NewFromInt(3)
		return lotRepo.Update(lot)
	})
	require.NoError(t, err)

	lot, err := lots.GetByID("L1")
	require.NoError(t, err)
	assert.True(t, lot.Reserved.Equal(decimal.NewFromInt(3)))
}
