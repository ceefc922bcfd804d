package allocation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/mrp-pro/internal/application/allocation"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// lotRepoStub simula la ventana entre listar lotes y bloquear sus filas:
// el listado devuelve un estado y GetForUpdate otro (u otro error).
type lotRepoStub struct {
	repository.LotRepository
	listados  []*entity.InventoryLot
	bloqueado func(id string) (*entity.InventoryLot, error)
}

func (s *lotRepoStub) ListAvailableForUpdate(productID, warehouseID string) ([]*entity.InventoryLot, error) {
	return s.listados, nil
}

func (s *lotRepoStub) GetForUpdate(id string) (*entity.InventoryLot, error) {
	return s.bloqueado(id)
}

func (s *lotRepoStub) Update(lot *entity.InventoryLot) error { return nil }

func loteCon(id string, onHand, reserved float64) *entity.InventoryLot {
	return &entity.InventoryLot{
		ID:          id,
		ProductID:   "prod-1",
		WarehouseID: "wh-1",
		OnHand:      decimal.NewFromFloat(onHand),
		Reserved:    decimal.NewFromFloat(reserved),
		UnitCost:    decimal.NewFromInt(5),
		EntryDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Agotamiento entre el listado y el bloqueo de fila: el faltante reportado es
// todo lo que quedó sin reservar, incluidas las entradas posteriores a la que
// falló.
func TestCommitInTx_AgotamientoReportaFaltanteCompleto(t *testing.T) {
	repo := &lotRepoStub{
		listados: []*entity.InventoryLot{
			loteCon("L1", 5, 0),
			loteCon("L2", 5, 0),
			loteCon("L3", 5, 0),
		},
		bloqueado: func(id string) (*entity.InventoryLot, error) {
			if id == "L1" {
				// Otro escritor lo agotó antes del lock.
				return loteCon("L1", 5, 5), nil
			}
			return loteCon(id, 5, 0), nil
		},
	}

	_, err := allocation.NewAllocator(repo).CommitInTx(repo, "prod-1", "wh-1", decimal.NewFromInt(15))

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	var insuf *domain.InsufficientStockError
	require.ErrorAs(t, err, &insuf)
	assert.True(t, insuf.Shortfall.Equal(decimal.NewFromInt(15)),
		"faltante fue %s", insuf.Shortfall)
}

// Un fallo del repositorio dentro del commit NO se disfraza de stock
// insuficiente: se propaga envuelto para que el caller lo distinga.
func TestCommitInTx_FalloDeRepositorioSePropaga(t *testing.T) {
	fallo := errors.New("conexión perdida")
	repo := &lotRepoStub{
		listados: []*entity.InventoryLot{loteCon("L1", 5, 0)},
		bloqueado: func(id string) (*entity.InventoryLot, error) {
			return nil, fallo
		},
	}

	_, err := allocation.NewAllocator(repo).CommitInTx(repo, "prod-1", "wh-1", decimal.NewFromInt(5))

	require.Error(t, err)
	assert.ErrorIs(t, err, fallo)
	assert.False(t, errors.Is(err, domain.ErrInsufficientStock))
}
