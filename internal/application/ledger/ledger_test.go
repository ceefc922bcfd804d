package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
	"github.com/tu-usuario/mrp-pro/internal/infrastructure/memory"
)

func newStoreConLote(t *testing.T, onHand, reserved float64) (*memory.Store, *memory.LotRepo) {
	t.Helper()
	store := memory.NewStore()
	lotRepo := memory.NewLotRepository(store)
	require.NoError(t, lotRepo.Create(&entity.InventoryLot{
		ID:          "L1",
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		OnHand:      decimal.NewFromFloat(onHand),
		Reserved:    decimal.NewFromFloat(reserved),
		UnitCost:    decimal.NewFromFloat(5),
		EntryDate:   time.Now(),
	}))
	return store, lotRepo
}

func TestReserve(t *testing.T) {
	t.Run("incrementa Reserved dentro del disponible", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 0)

		require.NoError(t, ledger.Reserve(lotRepo, "L1", decimal.NewFromInt(6)))

		lot, err := lotRepo.GetByID("L1")
		require.NoError(t, err)
		assert.True(t, lot.Reserved.Equal(decimal.NewFromInt(6)))
		assert.True(t, lot.OnHand.Equal(decimal.NewFromInt(10)))
	})

	t.Run("falla con ErrInsufficientStock si excede el disponible", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 7)

		err := ledger.Reserve(lotRepo, "L1", decimal.NewFromInt(4))
		assert.ErrorIs(t, err, domain.ErrInsufficientStock)

		lot, _ := lotRepo.GetByID("L1")
		assert.True(t, lot.Reserved.Equal(decimal.NewFromInt(7)), "no debe haber mutación parcial")
	})

	t.Run("rechaza cantidades no positivas", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 0)
		assert.ErrorIs(t, ledger.Reserve(lotRepo, "L1", decimal.Zero), domain.ErrInvalidInput)
	})

	t.Run("lote inexistente", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 0)
		assert.ErrorIs(t, ledger.Reserve(lotRepo, "nope", decimal.NewFromInt(1)), domain.ErrNotFound)
	})
}

func TestRelease(t *testing.T) {
	t.Run("decrementa Reserved", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 6)

		require.NoError(t, ledger.Release(lotRepo, "L1", decimal.NewFromInt(4)))

		lot, _ := lotRepo.GetByID("L1")
		assert.True(t, lot.Reserved.Equal(decimal.NewFromInt(2)))
	})

	t.Run("falla con ErrInvalidState si excede lo reservado", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 2)
		assert.ErrorIs(t, ledger.Release(lotRepo, "L1", decimal.NewFromInt(3)), domain.ErrInvalidState)
	})
}

func TestConsume(t *testing.T) {
	t.Run("decrementa OnHand y Reserved juntos", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 6)

		require.NoError(t, ledger.Consume(lotRepo, "L1", decimal.NewFromInt(6)))

		lot, _ := lotRepo.GetByID("L1")
		assert.True(t, lot.OnHand.Equal(decimal.NewFromInt(4)))
		assert.True(t, lot.Reserved.IsZero())
	})

	t.Run("el lote consumido por completo queda en cero, no se borra", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 6, 6)

		require.NoError(t, ledger.Consume(lotRepo, "L1", decimal.NewFromInt(6)))

		lot, err := lotRepo.GetByID("L1")
		require.NoError(t, err)
		require.NotNil(t, lot, "el lote debe conservarse para auditoría")
		assert.True(t, lot.OnHand.IsZero())
	})

	t.Run("falla con ErrInvalidState si excede lo reservado", func(t *testing.T) {
		_, lotRepo := newStoreConLote(t, 10, 2)
		assert.ErrorIs(t, ledger.Consume(lotRepo, "L1", decimal.NewFromInt(5)), domain.ErrInvalidState)
	})
}

// Propiedad: bajo reservas concurrentes contra el mismo lote, Reserved nunca
// supera OnHand. Las transacciones se serializan igual que los row locks en BD.
func TestReserve_Concurrente(t *testing.T) {
	store, _ := newStoreConLote(t, 10, 0)
	txRunner := memory.NewTxRunner(store)

	var wg sync.WaitGroup
	okCount := 0
	var okMu sync.Mutex
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := txRunner.RunLots(context.Background(), func(lotRepo repository.LotRepository) error {
				return ledger.Reserve(lotRepo, "L1", decimal.NewFromInt(1))
			})
			if err == nil {
				okMu.Lock()
				okCount++
				okMu.Unlock()
			}
		}()
	}
	wg.Wait()

	lot, err := memory.NewLotRepository(store).GetByID("L1")
	require.NoError(t, err)
	assert.Equal(t, 10, okCount, "solo caben 10 reservas de 1 unidad")
	assert.True(t, lot.Reserved.Equal(decimal.NewFromInt(10)))
	assert.True(t, lot.Reserved.LessThanOrEqual(lot.OnHand), "Reserved nunca supera OnHand")
}

func TestRegisterReceipt(t *testing.T) {
	store := memory.NewStore()
	store.SeedProduct(entity.Product{ID: "prod-1", SKU: "SKU-1", Name: "Tornillo"})
	store.SeedWarehouse(entity.Warehouse{ID: "wh-1", Code: "BOD-1", Name: "Principal"})
	uc := ledger.NewReceiptUseCase(
		memory.NewTxRunner(store),
		memory.NewProductRepository(store),
		memory.NewWarehouseRepository(store),
	)

	t.Run("crea un lote con posición FIFO", func(t *testing.T) {
		entry := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		lot, err := uc.RegisterReceipt(context.Background(), "prod-1", "wh-1",
			decimal.NewFromInt(20), decimal.NewFromFloat(4.5), entry, "user-1")
		require.NoError(t, err)
		assert.NotEmpty(t, lot.ID)
		assert.True(t, lot.OnHand.Equal(decimal.NewFromInt(20)))
		assert.True(t, lot.Reserved.IsZero())
		assert.Equal(t, entry, lot.EntryDate)
		assert.Equal(t, "user-1", lot.CreatedBy)
	})

	t.Run("rechaza cantidad no positiva", func(t *testing.T) {
		_, err := uc.RegisterReceipt(context.Background(), "prod-1", "wh-1",
			decimal.Zero, decimal.NewFromInt(1), time.Time{}, "user-1")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("rechaza producto inexistente", func(t *testing.T) {
		_, err := uc.RegisterReceipt(context.Background(), "nope", "wh-1",
			decimal.NewFromInt(1), decimal.NewFromInt(1), time.Time{}, "user-1")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("propaga el fallo del repositorio sin disfrazarlo de 404", func(t *testing.T) {
		fallo := errors.New("conexión perdida")
		conFallo := ledger.NewReceiptUseCase(
			memory.NewTxRunner(store),
			productRepoConFallo{err: fallo},
			memory.NewWarehouseRepository(store),
		)
		_, err := conFallo.RegisterReceipt(context.Background(), "prod-1", "wh-1",
			decimal.NewFromInt(1), decimal.NewFromInt(1), time.Time{}, "user-1")
		assert.ErrorIs(t, err, fallo)
		assert.False(t, errors.Is(err, domain.ErrNotFound))
	})
}

type productRepoConFallo struct{ err error }

func (r productRepoConFallo) GetByID(id string) (*entity.Product, error) { return nil, r.err }
