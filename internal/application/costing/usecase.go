package costing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/mrp-pro/internal/application/allocation"
	"github.com/tu-usuario/mrp-pro/internal/application/dto"
	"github.com/tu-usuario/mrp-pro/internal/domain"
	"github.com/tu-usuario/mrp-pro/internal/domain/repository"
)

// Escala decimal del porcentaje de cobertura; el redondeo ocurre solo en la
// agregación final, nunca entre niveles de recursión.
const coverageScale = 2

var hundred = decimal.NewFromInt(100)

// UseCase explota recursivamente un BOM multinivel y costea los componentes
// hoja contra lotes FIFO en modo SIMULATE (cero mutaciones). El recorrido es
// en dos fases: primero acumula requerimientos brutos por componente hoja
// (escalado multiplicativo hacia abajo, detección de ciclos por conjunto de
// IDs en la ruta), luego simula una asignación por componente distinto, de
// modo que un componente compartido por varias ramas no cuenta dos veces la
// misma disponibilidad.
type UseCase struct {
	bomRepo     repository.BOMRepository
	productRepo repository.ProductRepository
	allocator   *allocation.Allocator
}

// NewUseCase construye el motor de costeo.
func NewUseCase(
	bomRepo repository.BOMRepository,
	productRepo repository.ProductRepository,
	allocator *allocation.Allocator,
) *UseCase {
	return &UseCase{
		bomRepo:     bomRepo,
		productRepo: productRepo,
		allocator:   allocator,
	}
}

// requirement requerimiento bruto acumulado de un componente hoja, en orden
// de primera aparición para que el resultado sea determinista.
type requirement struct {
	productID string
	qty       decimal.Decimal
}

// CalculateCost calcula el costo material de producir quantity unidades del
// BOM dado contra el stock de una bodega. Las cantidades y costos mantienen
// precisión decimal completa durante toda la recursión; solo el porcentaje de
// cobertura se redondea (2 decimales) al final.
func (uc *UseCase) CalculateCost(ctx context.Context, bomID, warehouseID string, quantity decimal.Decimal) (*dto.CostResult, error) {
	if bomID == "" || warehouseID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var reqs []requirement
	index := make(map[string]int)
	path := make(map[string]bool)
	if err := uc.collect(ctx, bomID, quantity, path, &reqs, index); err != nil {
		return nil, err
	}

	result := &dto.CostResult{
		BOMID:       bomID,
		WarehouseID: warehouseID,
		Quantity:    quantity,
		TotalCost:   decimal.Zero,
		Calculable:  true,
	}

	covered := 0
	for _, req := range reqs {
		plan, err := uc.allocator.Simulate(ctx, req.productID, warehouseID, req.qty)
		if err != nil {
			return nil, err
		}
		comp := dto.ComponentCost{
			ProductID:    req.productID,
			RequiredQty:  req.qty,
			AvailableQty: plan.Satisfied,
			TotalCost:    plan.TotalCost,
		}
		if plan.Satisfied.GreaterThan(decimal.Zero) {
			comp.UnitCost = plan.TotalCost.Div(plan.Satisfied)
		}
		for _, entry := range plan.Entries {
			comp.Batches = append(comp.Batches, dto.BatchUse{
				LotID:     entry.Lot.ID,
				Quantity:  entry.Quantity,
				UnitCost:  entry.UnitCost,
				EntryDate: entry.Lot.EntryDate,
			})
		}
		result.Components = append(result.Components, comp)
		result.TotalCost = result.TotalCost.Add(plan.TotalCost)

		if plan.FullySatisfied() {
			covered++
		} else {
			result.Calculable = false
			result.Missing = append(result.Missing, dto.MissingComponent{
				ProductID: req.productID,
				Shortfall: plan.Shortfall,
			})
		}
	}

	if len(reqs) > 0 {
		result.StockCoveragePct = decimal.NewFromInt(int64(covered)).
			Div(decimal.NewFromInt(int64(len(reqs)))).
			Mul(hundred).
			Round(coverageScale)
	} else {
		result.StockCoveragePct = hundred
	}
	return result, nil
}

// collect recorre los nodos del BOM acumulando requerimientos de hojas.
// factor es la cantidad escalada que llega de los padres (multiplicativo).
// path es el conjunto de BOMs en la ruta de recursión actual: si el BOM ya
// está en la ruta hay un ciclo y el cálculo completo aborta con ErrCyclicBom
// (error de datos, se arregla en el BOM, no aquí).
func (uc *UseCase) collect(
	ctx context.Context,
	bomID string,
	factor decimal.Decimal,
	path map[string]bool,
	reqs *[]requirement,
	index map[string]int,
) error {
	if path[bomID] {
		return fmt.Errorf("bom %s: %w", bomID, domain.ErrCyclicBom)
	}
	bom, err := uc.bomRepo.GetByID(bomID)
	if err != nil {
		return err
	}
	if bom == nil {
		return fmt.Errorf("bom %s: %w", bomID, domain.ErrNotFound)
	}
	path[bomID] = true
	defer delete(path, bomID)

	nodes, err := uc.bomRepo.ListNodes(bomID)
	if err != nil {
		return err
	}
	for _, node := range nodes {
		scaled := node.QtyPerUnit.Mul(factor)
		if node.ChildBOMID != nil {
			if err := uc.collect(ctx, *node.ChildBOMID, scaled, path, reqs, index); err != nil {
				return err
			}
			continue
		}
		if i, ok := index[node.ProductID]; ok {
			(*reqs)[i].qty = (*reqs)[i].qty.Add(scaled)
			continue
		}
		index[node.ProductID] = len(*reqs)
		*reqs = append(*reqs, requirement{productID: node.ProductID, qty: scaled})
	}
	return nil
}
