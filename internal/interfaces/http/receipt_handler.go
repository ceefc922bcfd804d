package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/mrp-pro/internal/application/dto"
	"github.com/tu-usuario/mrp-pro/internal/application/ledger"
)

// ReceiptHandler maneja el registro de recepciones de stock (creación de lotes).
type ReceiptHandler struct {
	uc *ledger.ReceiptUseCase
}

// NewReceiptHandler construye el handler.
func NewReceiptHandler(uc *ledger.ReceiptUseCase) *ReceiptHandler {
	return &ReceiptHandler{uc: uc}
}

// Register crea un lote nuevo para (producto, bodega) con costo y fecha de
// entrada (posición FIFO).
func (h *ReceiptHandler) Register(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "identidad no inyectada"})
	}
	var in dto.RegisterReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	entryDate := time.Time{}
	if in.EntryDate != nil {
		entryDate = *in.EntryDate
	}
	lot, err := h.uc.RegisterReceipt(c.Context(), in.ProductID, in.WarehouseID, in.Quantity, in.UnitCost, entryDate, userID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lot)
}
