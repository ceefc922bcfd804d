package memory

import (
	"context"

	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
	"github.com/tu-usuario/mrp-pro/internal/application/reservation"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// El runner satisface los contratos transaccionales de reservas y del libro.
var _ reservation.TxRunner = (*TxRunner)(nil)
var _ ledger.TxRunner = (*TxRunner)(nil)

// TxRunner contraparte en memoria del runner transaccional: serializa las
// transacciones con un mutex (equivalente de los row locks) y revierte el
// estado por snapshot si fn devuelve error. Mismo contrato observable que el
// runner PostgreSQL: o todo, o nada.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner sobre un store.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// Run ejecuta fn con repositorios sobre el store, con rollback ante error.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.LotRepository,
	resRepo repository.ReservationRepository,
	allocRepo repository.AllocationRepository,
) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	snap := r.store.takeSnapshot()
	err := fn(
		NewLotRepository(r.store),
		NewReservationRepository(r.store),
		NewAllocationRepository(r.store),
	)
	if err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}

// RunLots igual que Run pero solo con el repositorio de lotes.
func (r *TxRunner) RunLots(ctx context.Context, fn func(lotRepo repository.LotRepository) error) error {
	r.store.txMu.Lock()
	defer r.store.txMu.Unlock()

	snap := r.store.takeSnapshot()
	if err := fn(NewLotRepository(r.store)); err != nil {
		r.store.restore(snap)
		return err
	}
	return nil
}
