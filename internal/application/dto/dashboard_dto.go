package dto

import "github.com/shopspring/decimal"

// StageCount cantidad de leads en una etapa.
type StageCount struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// SegmentCount cantidad de clientes en un segmento.
type SegmentCount struct {
	Segment string `json:"segment"`
	Count   int    `json:"count"`
}

// SalesSummary ventas no canceladas de un periodo.
type SalesSummary struct {
	Revenue          decimal.Decimal `json:"revenue"`
	RevenueFormatted string          `json:"revenue_formatted"`
	Orders           int             `json:"orders"`
}

// DashboardResponse resumen de GET /api/dashboard.
type DashboardResponse struct {
	LeadsByStage       []StageCount   `json:"leads_by_stage"`
	CustomersBySegment []SegmentCount `json:"customers_by_segment"`
	SalesToday         SalesSummary   `json:"sales_today"`
	SalesMonth         SalesSummary   `json:"sales_month"`
	MonthLabel         string         `json:"month_label"` // ej. "Octubre 2026"
}
