package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mrp-pro/internal/application/dto"
	"github.com/tu-usuario/mrp-pro/internal/application/reservation"
	"github.com/tu-usuario/mrp-pro/internal/domain"
)

// ReservationHandler maneja las peticiones HTTP del ciclo de vida de reservas.
type ReservationHandler struct {
	uc *reservation.UseCase
}

// NewReservationHandler construye el handler.
func NewReservationHandler(uc *reservation.UseCase) *ReservationHandler {
	return &ReservationHandler{uc: uc}
}

// Create crea una reserva y asigna lotes FIFO en la misma transacción.
// Devuelve 201 con la reserva y el faltante (cero si quedó completa).
func (h *ReservationHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no inyectada"})
	}
	var in dto.CreateReservationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	result, err := h.uc.Create(c.Context(), reservation.CreateInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		OwnerKind:   in.OwnerKind,
		OwnerID:     in.OwnerID,
		UserID:      userID,
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Get devuelve una reserva por ID.
func (h *ReservationHandler) Get(c *fiber.Ctx) error {
	res, err := h.uc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(res)
}

// Consume retira el stock reservado (reserva ACTIVE -> CONSUMED).
func (h *ReservationHandler) Consume(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no inyectada"})
	}
	if err := h.uc.Consume(c.Context(), c.Params("id"), userID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva consumida"})
}

// Cancel libera los lotes y marca la reserva CANCELLED.
func (h *ReservationHandler) Cancel(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no inyectada"})
	}
	if err := h.uc.Cancel(c.Context(), c.Params("id"), userID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva cancelada"})
}

// Expire marca la reserva EXPIRED (lo invoca el scheduler externo).
func (h *ReservationHandler) Expire(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no inyectada"})
	}
	if err := h.uc.Expire(c.Context(), c.Params("id"), userID); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "reserva expirada"})
}

// Retry reintenta asignar el remanente de una reserva PENDING o parcial.
func (h *ReservationHandler) Retry(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no inyectada"})
	}
	result, err := h.uc.Retry(c.Context(), c.Params("id"), userID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// Audit reporta la reconciliación reservas vs lotes de un par (producto, bodega).
func (h *ReservationHandler) Audit(c *fiber.Ctx) error {
	report, err := h.uc.Audit(c.Context(), c.Query("product_id"), c.Query("warehouse_id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}

// mapDomainError traduce errores de dominio a códigos HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "recurso no encontrado"})
	case errors.Is(err, domain.ErrInvalidState):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrCyclicBom):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CYCLIC_BOM", Message: err.Error()})
	case errors.Is(err, domain.ErrConsistency):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "CONSISTENCY", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "recurso duplicado"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}
