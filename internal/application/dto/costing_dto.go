package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchUse un lote FIFO que el costeo consumiría, con cantidad y costo.
type BatchUse struct {
	LotID     string          `json:"lot_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	EntryDate time.Time       `json:"entry_date"`
}

// ComponentCost desglose de costo por componente hoja del BOM.
type ComponentCost struct {
	ProductID    string          `json:"product_id"`
	RequiredQty  decimal.Decimal `json:"required_qty"`
	AvailableQty decimal.Decimal `json:"available_qty"`
	UnitCost     decimal.Decimal `json:"unit_cost"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	Batches      []BatchUse      `json:"batches"`
}

// MissingComponent componente hoja con faltante de stock.
type MissingComponent struct {
	ProductID string          `json:"product_id"`
	Shortfall decimal.Decimal `json:"shortfall"`
}

// CostResult resultado efímero del costeo de un BOM. Pertenece al caller;
// el núcleo no lo persiste.
type CostResult struct {
	BOMID            string             `json:"bom_id"`
	WarehouseID      string             `json:"warehouse_id"`
	Quantity         decimal.Decimal    `json:"quantity"`
	TotalCost        decimal.Decimal    `json:"total_cost"`
	Calculable       bool               `json:"calculable"`
	StockCoveragePct decimal.Decimal    `json:"stock_coverage_pct"`
	Components       []ComponentCost    `json:"components"`
	Missing          []MissingComponent `json:"missing_components"`
}

// BOMValidationReport problemas estructurales de un BOM detectados sin costear.
type BOMValidationReport struct {
	BOMID           string   `json:"bom_id"`
	Valid           bool     `json:"valid"`
	Cycles          []string `json:"cycles,omitempty"`
	MissingProducts []string `json:"missing_products,omitempty"`
}
