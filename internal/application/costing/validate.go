package costing

import (
	"context"
	"strings"

	"github.com/tu-usuario/mrp-pro/internal/application/dto"
	"github.com/tu-usuario/mrp-pro/internal/domain"
)

// Validate revisa la estructura de un BOM sin costear: ciclos en el grafo de
// subensambles y componentes hoja que referencian productos inexistentes.
// Pensado para correr antes de usar un BOM en producción o costeo.
func (uc *UseCase) Validate(ctx context.Context, bomID string) (*dto.BOMValidationReport, error) {
	if bomID == "" {
		return nil, domain.ErrInvalidInput
	}
	report := &dto.BOMValidationReport{BOMID: bomID, Valid: true}
	seenMissing := make(map[string]bool)
	if err := uc.validateWalk(ctx, bomID, nil, report, seenMissing); err != nil {
		return nil, err
	}
	report.Valid = len(report.Cycles) == 0 && len(report.MissingProducts) == 0
	return report, nil
}

// validateWalk recorre el grafo llevando la ruta como slice (para poder
// reportar el ciclo completo, no solo detectarlo).
func (uc *UseCase) validateWalk(
	ctx context.Context,
	bomID string,
	trail []string,
	report *dto.BOMValidationReport,
	seenMissing map[string]bool,
) error {
	for _, onPath := range trail {
		if onPath == bomID {
			cycle := append(append([]string{}, trail...), bomID)
			report.Cycles = append(report.Cycles, strings.Join(cycle, " -> "))
			return nil
		}
	}
	bom, err := uc.bomRepo.GetByID(bomID)
	if err != nil {
		return err
	}
	if bom == nil {
		return domain.ErrNotFound
	}
	trail = append(trail, bomID)

	nodes, err := uc.bomRepo.ListNodes(bomID)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		if node.ChildBOMID != nil {
			if err := uc.validateWalk(ctx, *node.ChildBOMID, trail, report, seenMissing); err != nil {
				return err
			}
			continue
		}
		if seenMissing[node.ProductID] {
			continue
		}
		product, err := uc.productRepo.GetByID(node.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			seenMissing[node.ProductID] = true
			report.MissingProducts = append(report.MissingProducts, node.ProductID)
		}
	}
	return nil
}
