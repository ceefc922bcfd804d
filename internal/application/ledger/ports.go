package ledger

import (
	"context"

	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando un
// LotRepository atado a esa tx. Usado por el registro de recepciones.
type TxRunner interface {
	RunLots(ctx context.Context, fn func(lotRepo repository.LotRepository) error) error
}
