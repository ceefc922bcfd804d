package reservation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/application/allocation"
	"github.com/tu-usuario/mrp-pro/internal/application/dto"
	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/entity"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
	"github.com/tu-usuario/mrp-pro/pkg/logger"
)

// UseCase gobierna el ciclo de vida de las reservas:
//
//	PENDING -> ACTIVE -> CONSUMED
//	PENDING|ACTIVE -> CANCELLED
//	PENDING|ACTIVE -> EXPIRED (disparado por scheduler externo)
//
// CONSUMED, CANCELLED y EXPIRED son terminales. La selección de lotes se
// delega al Allocator y la mutación de contadores al paquete ledger; cada
// transición corre dentro de una sola transacción (Commit o Rollback total).
type UseCase struct {
	txRunner      TxRunner
	allocator     *allocation.Allocator
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	lotRepo       repository.LotRepository
	resRepo       repository.ReservationRepository
	log           *logger.Logger
}

// NewUseCase construye el caso de uso. lotRepo y resRepo van atados al pool
// (solo lecturas: auditoría); las mutaciones pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	allocator *allocation.Allocator,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	lotRepo repository.LotRepository,
	resRepo repository.ReservationRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner:      txRunner,
		allocator:     allocator,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		lotRepo:       lotRepo,
		resRepo:       resRepo,
		log:           log,
	}
}

// CreateInput entrada para crear una reserva. UserID alimenta los campos de
// auditoría (lo inyecta el contexto de identidad del caller).
type CreateInput struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	OwnerKind   string
	OwnerID     string
	UserID      string
}

// Create crea la reserva y en la misma transacción asigna lotes FIFO en modo
// COMMIT. Política documentada: satisfacción total o parcial deja la reserva
// ACTIVE (con ReservedQty < RequestedQty si hubo faltante); cero satisfecho
// la deja PENDING con cero asignaciones, para poder reintentar con Retry
// cuando llegue stock nuevo. El faltante se devuelve siempre al caller.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*dto.CreateReservationResult, error) {
	if input.ProductID == "" || input.WarehouseID == "" || input.OwnerID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !input.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidOwnerKind(input.OwnerKind) {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, fmt.Errorf("consultar producto %s: %w", input.ProductID, err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(input.WarehouseID)
	if err != nil {
		return nil, fmt.Errorf("consultar bodega %s: %w", input.WarehouseID, err)
	}
	if warehouse == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	res := &entity.Reservation{
		ID:           uuid.New().String(),
		ProductID:    input.ProductID,
		WarehouseID:  input.WarehouseID,
		RequestedQty: input.Quantity,
		ReservedQty:  decimal.Zero,
		Status:       entity.ReservationStatusPENDING,
		OwnerKind:    input.OwnerKind,
		OwnerID:      input.OwnerID,
		CreatedBy:    input.UserID,
		UpdatedBy:    input.UserID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	shortfall := input.Quantity
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		resRepo repository.ReservationRepository,
		allocRepo repository.AllocationRepository,
	) error {
		if err := resRepo.Create(res); err != nil {
			return err
		}
		plan, err := uc.allocator.CommitInTx(lotRepo, input.ProductID, input.WarehouseID, input.Quantity)
		if err != nil {
			return err
		}
		for _, entry := range plan.Entries {
			alloc := &entity.Allocation{
				ID:            uuid.New().String(),
				ReservationID: res.ID,
				LotID:         entry.Lot.ID,
				Quantity:      entry.Quantity,
				UnitCost:      entry.UnitCost,
				CreatedAt:     now,
			}
			if err := allocRepo.Create(alloc); err != nil {
				return err
			}
		}
		res.ReservedQty = plan.Satisfied
		if plan.Satisfied.GreaterThan(decimal.Zero) {
			res.Status = entity.ReservationStatusACTIVE
		}
		res.UpdatedAt = time.Now()
		shortfall = plan.Shortfall
		return resRepo.Update(res)
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateReservationResult{
		Reservation: toResponse(res),
		Shortfall:   shortfall,
	}, nil
}

// Cancel libera todas las asignaciones de la reserva contra el libro de
// inventario, las elimina y marca la reserva CANCELLED. Falla con
// ErrInvalidState si la reserva ya es terminal; síncrono, sin limpieza
// diferida.
func (uc *UseCase) Cancel(ctx context.Context, reservationID, userID string) error {
	return uc.release(ctx, reservationID, userID, entity.ReservationStatusCANCELLED)
}

// Expire marca la reserva EXPIRED liberando sus asignaciones. La dispara un
// scheduler externo; este módulo no mantiene timers.
func (uc *UseCase) Expire(ctx context.Context, reservationID, userID string) error {
	return uc.release(ctx, reservationID, userID, entity.ReservationStatusEXPIRED)
}

func (uc *UseCase) release(ctx context.Context, reservationID, userID, finalStatus string) error {
	if reservationID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		resRepo repository.ReservationRepository,
		allocRepo repository.AllocationRepository,
	) error {
		res, err := resRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		if res.IsTerminal() {
			return domain.ErrInvalidState
		}
		allocs, err := allocRepo.ListByReservation(reservationID)
		if err != nil {
			return err
		}
		for _, alloc := range allocs {
			if err := ledger.Release(lotRepo, alloc.LotID, alloc.Quantity); err != nil {
				return err
			}
		}
		if err := allocRepo.DeleteByReservation(reservationID); err != nil {
			return err
		}
		res.Status = finalStatus
		res.ReservedQty = decimal.Zero
		res.UpdatedBy = userID
		res.UpdatedAt = time.Now()
		return resRepo.Update(res)
	})
}

// Consume retira físicamente el stock reservado: ledger.Consume por cada
// asignación, todo en una transacción. Solo válido sobre reservas ACTIVE.
// Si algún lote ya no puede cubrir su asignación la operación completa se
// revierte con ErrConsistency: significa que un lote estaba reservado pero
// dejó de ser consumible, condición fatal que requiere auditoría del
// operador y nunca se corrige en silencio.
func (uc *UseCase) Consume(ctx context.Context, reservationID, userID string) error {
	if reservationID == "" {
		return domain.ErrInvalidInput
	}
	return uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		resRepo repository.ReservationRepository,
		allocRepo repository.AllocationRepository,
	) error {
		res, err := resRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		if res.Status != entity.ReservationStatusACTIVE {
			return domain.ErrInvalidState
		}
		allocs, err := allocRepo.ListByReservation(reservationID)
		if err != nil {
			return err
		}
		for _, alloc := range allocs {
			if err := ledger.Consume(lotRepo, alloc.LotID, alloc.Quantity); err != nil {
				return fmt.Errorf("consumir reserva %s lote %s: %w",
					reservationID, alloc.LotID, domain.ErrConsistency)
			}
		}
		res.Status = entity.ReservationStatusCONSUMED
		res.UpdatedBy = userID
		res.UpdatedAt = time.Now()
		return resRepo.Update(res)
	})
}

// Retry reintenta asignar el remanente no satisfecho de una reserva PENDING
// o ACTIVE parcial (típicamente tras una recepción de stock). Promueve
// PENDING a ACTIVE si logra asignar algo; devuelve el faltante restante.
func (uc *UseCase) Retry(ctx context.Context, reservationID, userID string) (*dto.CreateReservationResult, error) {
	if reservationID == "" {
		return nil, domain.ErrInvalidInput
	}
	var result *dto.CreateReservationResult
	err := uc.txRunner.Run(ctx, func(
		lotRepo repository.LotRepository,
		resRepo repository.ReservationRepository,
		allocRepo repository.AllocationRepository,
	) error {
		res, err := resRepo.GetForUpdate(reservationID)
		if err != nil {
			return err
		}
		if res == nil {
			return domain.ErrNotFound
		}
		if res.IsTerminal() {
			return domain.ErrInvalidState
		}
		remaining := res.RequestedQty.Sub(res.ReservedQty)
		if !remaining.GreaterThan(decimal.Zero) {
			return domain.ErrInvalidState
		}
		plan, err := uc.allocator.CommitInTx(lotRepo, res.ProductID, res.WarehouseID, remaining)
		if err != nil {
			return err
		}
		now := time.Now()
		for _, entry := range plan.Entries {
			alloc := &entity.Allocation{
				ID:            uuid.New().String(),
				ReservationID: res.ID,
				LotID:         entry.Lot.ID,
				Quantity:      entry.Quantity,
				UnitCost:      entry.UnitCost,
				CreatedAt:     now,
			}
			if err := allocRepo.Create(alloc); err != nil {
				return err
			}
		}
		res.ReservedQty = res.ReservedQty.Add(plan.Satisfied)
		if res.ReservedQty.GreaterThan(decimal.Zero) {
			res.Status = entity.ReservationStatusACTIVE
		}
		res.UpdatedBy = userID
		res.UpdatedAt = now
		if err := resRepo.Update(res); err != nil {
			return err
		}
		result = &dto.CreateReservationResult{
			Reservation: toResponse(res),
			Shortfall:   plan.Shortfall,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Get devuelve una reserva por ID (lectura de pool, sin bloqueo).
func (uc *UseCase) Get(ctx context.Context, reservationID string) (*dto.ReservationResponse, error) {
	res, err := uc.resRepo.GetByID(reservationID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, domain.ErrNotFound
	}
	resp := toResponse(res)
	return &resp, nil
}

func toResponse(res *entity.Reservation) dto.ReservationResponse {
	return dto.ReservationResponse{
		ID:           res.ID,
		ProductID:    res.ProductID,
		WarehouseID:  res.WarehouseID,
		RequestedQty: res.RequestedQty,
		ReservedQty:  res.ReservedQty,
		Status:       res.Status,
		OwnerKind:    res.OwnerKind,
		OwnerID:      res.OwnerID,
		CreatedAt:    res.CreatedAt,
		UpdatedAt:    res.UpdatedAt,
	}
}
