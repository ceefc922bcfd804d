package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/application/costing"
	"github.com/tu-usuario/mrp-pro/internal/application/dto"
)

// CostingHandler maneja las peticiones HTTP de explosión y costeo de BOMs.
type CostingHandler struct {
	uc *costing.UseCase
}

// NewCostingHandler construye el handler.
func NewCostingHandler(uc *costing.UseCase) *CostingHandler {
	return &CostingHandler{uc: uc}
}

// CalculateCost explota el BOM y costea los componentes contra lotes FIFO
// (simulación, sin mutar stock). Query params: warehouse_id, quantity.
func (h *CostingHandler) CalculateCost(c *fiber.Ctx) error {
	quantity, err := decimal.NewFromString(c.Query("quantity", "1"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "quantity inválida"})
	}
	result, err := h.uc.CalculateCost(c.Context(), c.Params("id"), c.Query("warehouse_id"), quantity)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(result)
}

// Validate revisa ciclos y productos faltantes en la estructura del BOM.
func (h *CostingHandler) Validate(c *fiber.Ctx) error {
	report, err := h.uc.Validate(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(report)
}
