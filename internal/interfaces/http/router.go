package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mrp-pro/internal/application/costing"
	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
	"github.com/tu-usuario/mrp-pro/internal/application/reservation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ReservationUC *reservation.UseCase
	CostingUC     *costing.UseCase
	ReceiptUC     *ledger.ReceiptUseCase
}

// Router registra las rutas del motor de reservas y costeo.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	reservations := api.Group("/reservations")
	reservationHandler := NewReservationHandler(deps.ReservationUC)
	reservations.Post("/", reservationHandler.Create)
	reservations.Get("/audit", reservationHandler.Audit)
	reservations.Get("/:id", reservationHandler.Get)
	reservations.Post("/:id/consume", reservationHandler.Consume)
	reservations.Post("/:id/cancel", reservationHandler.Cancel)
	reservations.Post("/:id/expire", reservationHandler.Expire)
	reservations.Post("/:id/retry", reservationHandler.Retry)

	boms := api.Group("/boms")
	costingHandler := NewCostingHandler(deps.CostingUC)
	boms.Get("/:id/cost", costingHandler.CalculateCost)
	boms.Get("/:id/validate", costingHandler.Validate)

	receipts := api.Group("/receipts")
	receiptHandler := NewReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", receiptHandler.Register)
}
