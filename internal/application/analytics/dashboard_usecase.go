// Package analytics contiene los casos de uso de reportes del CRM: embudo de leads,
// segmentación de clientes y ventas del día y del mes.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/pipeline"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/domain/segment"
	"github.com/jhoicas/crm-api/pkg/format"
	"github.com/shopspring/decimal"
)

// DashboardUseCase genera el resumen del tablero.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	money         *format.Formatter
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. money nil usa USD/inglés.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, money *format.Formatter) *DashboardUseCase {
	if money == nil {
		money = format.New("USD", "en")
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, money: money, now: time.Now}
}

// GetSummary arma el DashboardResponse.
//
// Cuatro llamadas en paralelo:
//  1. CountLeadsByStatus       → LeadsByStage (las siete etapas, con cero si no hay leads)
//  2. GetCustomerSpend         → CustomersBySegment
//  3. GetSalesMetrics(hoy)     → SalesToday
//  4. GetSalesMetrics(mes)     → SalesMonth
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now()

	// ── Rangos de fecha ────────────────────────────────────────────────────────
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	// ── Goroutines para paralelizar las consultas ──────────────────────────────
	type leadsResult struct {
		counts map[string]int
		err    error
	}
	type spendResult struct {
		spend []decimal.Decimal
		err   error
	}
	type salesResult struct {
		m   repository.SalesMetrics
		err error
	}

	leadsCh := make(chan leadsResult, 1)
	spendCh := make(chan spendResult, 1)
	todayCh := make(chan salesResult, 1)
	monthCh := make(chan salesResult, 1)

	go func() {
		counts, err := uc.analyticsRepo.CountLeadsByStatus(ctx)
		leadsCh <- leadsResult{counts, err}
	}()
	go func() {
		spend, err := uc.analyticsRepo.GetCustomerSpend(ctx)
		spendCh <- spendResult{spend, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, todayStart, todayEnd)
		todayCh <- salesResult{m, err}
	}()
	go func() {
		m, err := uc.analyticsRepo.GetSalesMetrics(ctx, monthStart, todayEnd)
		monthCh <- salesResult{m, err}
	}()

	leads := <-leadsCh
	spend := <-spendCh
	today := <-todayCh
	month := <-monthCh

	if leads.err != nil {
		return nil, fmt.Errorf("dashboard: leads por etapa: %w", leads.err)
	}
	if spend.err != nil {
		return nil, fmt.Errorf("dashboard: gasto de clientes: %w", spend.err)
	}
	if today.err != nil {
		return nil, fmt.Errorf("dashboard: ventas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: ventas del mes: %w", month.err)
	}

	// ── Construir DTO ──────────────────────────────────────────────────────────
	return &dto.DashboardResponse{
		LeadsByStage:       stageCounts(leads.counts),
		CustomersBySegment: segmentCounts(spend.spend),
		SalesToday:         uc.summary(today.m),
		SalesMonth:         uc.summary(month.m),
		MonthLabel:         monthLabel(now),
	}, nil
}

func (uc *DashboardUseCase) summary(m repository.SalesMetrics) dto.SalesSummary {
	rev := m.Revenue.Round(2)
	return dto.SalesSummary{Revenue: rev, RevenueFormatted: uc.money.Money(rev), Orders: m.OrderCount}
}

// stageCounts respeta el orden del embudo. Estados fuera del catálogo se ignoran.
func stageCounts(counts map[string]int) []dto.StageCount {
	stages := pipeline.Stages()
	out := make([]dto.StageCount, 0, len(stages))
	for _, s := range stages {
		out = append(out, dto.StageCount{Value: s.Value, Label: s.Label, Color: s.Color, Count: counts[s.Value]})
	}
	return out
}

func segmentCounts(spend []decimal.Decimal) []dto.SegmentCount {
	counts := map[segment.Segment]int{}
	for _, s := range spend {
		counts[segment.FromSpend(s)]++
	}
	all := segment.All()
	out := make([]dto.SegmentCount, 0, len(all))
	for _, s := range all {
		out = append(out, dto.SegmentCount{Segment: string(s), Count: counts[s]})
	}
	return out
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
