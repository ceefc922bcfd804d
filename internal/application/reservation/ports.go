package reservation

import (
	"context"

	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el ciclo de vida
// de la reserva: o toda la transición se aplica, o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.LotRepository,
		resRepo repository.ReservationRepository,
		allocRepo repository.AllocationRepository,
	) error) error
}
