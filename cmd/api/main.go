package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/mrp-pro/internal/application/allocation"
	"github.com/tu-usuario/mrp-pro/internal/application/costing"
	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
	"github.com/tu-usuario/mrp-pro/internal/application/reservation"
	"github.com/tu-usuario/mrp-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/mrp-pro/internal/interfaces/http"
	"github.com/tu-usuario/mrp-pro/pkg/config"
	"github.com/tu-usuario/mrp-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios atados al pool (lecturas); las mutaciones van por TxRunner.
	lotRepo := postgres.NewLotRepository(pool)
	resRepo := postgres.NewReservationRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	warehouseRepo := postgres.NewWarehouseRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	allocator := allocation.NewAllocator(lotRepo)
	reservationUC := reservation.NewUseCase(
		txRunner, allocator, productRepo, warehouseRepo, lotRepo, resRepo, log,
	)
	costingUC := costing.NewUseCase(bomRepo, productRepo, allocator)
	receiptUC := ledger.NewReceiptUseCase(txRunner, productRepo, warehouseRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ReservationUC: reservationUC,
		CostingUC:     costingUC,
		ReceiptUC:     receiptUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
