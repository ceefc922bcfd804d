package reservation

import (
	"context"

	"github.com/tu-usuario/mrp-pro/internal/application/dto"
	"github.com/tu-usuario/mrp-pro/internal/domain"
)

// Audit verifica el invariante de reconciliación para un par (producto,
// bodega): la suma de ReservedQty de las reservas ACTIVE debe igualar la suma
// del contador Reserved de los lotes. Cualquier deriva se reporta (log de
// advertencia + reporte con la diferencia), nunca se corrige aquí.
func (uc *UseCase) Audit(ctx context.Context, productID, warehouseID string) (*dto.AuditReport, error) {
	if productID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	resTotal, err := uc.resRepo.SumActiveReserved(productID, warehouseID)
	if err != nil {
		return nil, err
	}
	lotTotal, err := uc.lotRepo.SumReserved(productID, warehouseID)
	if err != nil {
		return nil, err
	}

	report := &dto.AuditReport{
		ProductID:        productID,
		WarehouseID:      warehouseID,
		ReservationTotal: resTotal,
		LotTotal:         lotTotal,
		Consistent:       resTotal.Equal(lotTotal),
		Difference:       resTotal.Sub(lotTotal),
	}
	if !report.Consistent && uc.log != nil {
		uc.log.Warn().
			Str("product_id", productID).
			Str("warehouse_id", warehouseID).
			Str("reservation_total", resTotal.String()).
			Str("lot_total", lotTotal.String()).
			Msg("deriva detectada entre reservas activas y lotes")
	}
	return report, nil
}
