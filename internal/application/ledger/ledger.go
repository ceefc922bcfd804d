package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// Libro de inventario: toda mutación de los contadores OnHand/Reserved de un
// lote pasa por aquí. Cada operación recibe el LotRepository atado a la
// transacción del caller, bloquea la fila (SELECT FOR UPDATE) y aplica un
// único update por lote, de modo que dos reservas concurrentes sobre el mismo
// lote se serializan y el invariante Reserved <= OnHand no puede romperse ni
// transitoriamente.

// Reserve incrementa Reserved del lote en qty.
// Falla con ErrInsufficientStock si qty > OnHand - Reserved.
func Reserve(lotRepo repository.LotRepository, lotID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	lot, err := lotRepo.GetForUpdate(lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return fmt.Errorf("lote %s: %w", lotID, domain.ErrNotFound)
	}
	if qty.GreaterThan(lot.Available()) {
		return domain.ErrInsufficientStock
	}
	lot.Reserved = lot.Reserved.Add(qty)
	lot.UpdatedAt = time.Now()
	return lotRepo.Update(lot)
}

// Release decrementa Reserved del lote en qty (cancelación o reversa parcial).
// Falla con ErrInvalidState si qty > Reserved.
func Release(lotRepo repository.LotRepository, lotID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	lot, err := lotRepo.GetForUpdate(lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return fmt.Errorf("lote %s: %w", lotID, domain.ErrNotFound)
	}
	if qty.GreaterThan(lot.Reserved) {
		return domain.ErrInvalidState
	}
	lot.Reserved = lot.Reserved.Sub(qty)
	lot.UpdatedAt = time.Now()
	return lotRepo.Update(lot)
}

// Consume decrementa OnHand y Reserved en qty (retiro físico de lo reservado).
// Falla con ErrInvalidState si qty > Reserved. El lote queda en cero tras el
// consumo total; no se borra (auditoría).
func Consume(lotRepo repository.LotRepository, lotID string, qty decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	lot, err := lotRepo.GetForUpdate(lotID)
	if err != nil {
		return err
	}
	if lot == nil {
		return fmt.Errorf("lote %s: %w", lotID, domain.ErrNotFound)
	}
	if qty.GreaterThan(lot.Reserved) {
		return domain.ErrInvalidState
	}
	lot.OnHand = lot.OnHand.Sub(qty)
	lot.Reserved = lot.Reserved.Sub(qty)
	lot.UpdatedAt = time.Now()
	return lotRepo.Update(lot)
}
