package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

const (
	summaryCacheKey = "dashboard:summary"
	summaryCacheTTL = 60 * time.Second

	lowStockLimit    = 10
	recentSalesLimit = 5
	chartDays        = 7
)

// DashboardUseCase arma el resumen de la pantalla principal: ventas del día
// y del mes, conteo de productos, variantes con stock bajo, últimas ventas
// y la gráfica de los últimos días. El resultado se cachea brevemente.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         Cache
	clock         domain.Clock
	log           zerolog.Logger
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache Cache, clock domain.Clock, log zerolog.Logger) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, cache: cache, clock: clock, log: log}
}

// Summary devuelve el resumen del dashboard, sirviendo desde caché cuando
// hay una copia fresca.
func (uc *DashboardUseCase) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	if raw, ok := uc.cache.Get(ctx, summaryCacheKey); ok {
		var cached dto.DashboardSummary
		if err := json.Unmarshal(raw, &cached); err == nil {
			return &cached, nil
		}
		uc.log.Warn().Msg("resumen de dashboard en caché corrupto, recalculando")
	}

	summary, err := uc.build(ctx)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(summary); err == nil {
		uc.cache.Set(ctx, summaryCacheKey, raw, summaryCacheTTL)
	}
	return summary, nil
}

func (uc *DashboardUseCase) build(_ context.Context) (*dto.DashboardSummary, error) {
	now := uc.clock.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	daily, err := uc.analyticsRepo.SalesTotalBetween(dayStart, now)
	if err != nil {
		return nil, err
	}
	monthly, err := uc.analyticsRepo.SalesTotalBetween(monthStart, now)
	if err != nil {
		return nil, err
	}
	productCount, err := uc.analyticsRepo.ActiveProductCount()
	if err != nil {
		return nil, err
	}
	lowStock, err := uc.analyticsRepo.LowStockVariants(lowStockLimit)
	if err != nil {
		return nil, err
	}
	recent, err := uc.analyticsRepo.RecentSales(recentSalesLimit)
	if err != nil {
		return nil, err
	}
	chartStart := dayStart.AddDate(0, 0, -(chartDays - 1))
	points, err := uc.analyticsRepo.SalesByDay(chartStart, now)
	if err != nil {
		return nil, err
	}

	summary := &dto.DashboardSummary{
		DailySales:   daily,
		MonthlySales: monthly,
		ProductCount: productCount,
		LowStock:     make([]dto.VariantResponse, 0, len(lowStock)),
		RecentSales:  make([]dto.SaleResponse, 0, len(recent)),
		SalesChart:   make([]dto.SalesChartPoint, 0, len(points)),
		ChartDays:    chartDays,
	}
	for _, v := range lowStock {
		summary.LowStock = append(summary.LowStock, variantSummary(v))
	}
	for _, s := range recent {
		summary.RecentSales = append(summary.RecentSales, saleSummary(s))
	}
	for _, p := range points {
		summary.SalesChart = append(summary.SalesChart, dto.SalesChartPoint{
			Date:  p.Date.Format("2006-01-02"),
			Total: p.Total,
		})
	}
	return summary, nil
}

func variantSummary(v *entity.ProductVariant) dto.VariantResponse {
	return dto.VariantResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		Presentation: v.Presentation,
		SKU:          v.SKU,
		Barcode:      v.Barcode,
		Price:        v.Price,
		SalePrice:    v.SalePrice,
		Stock:        v.Stock,
		MinStock:     v.MinStock,
		TaxID:        v.TaxID,
		LowStock:     v.HasLowStock(),
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func saleSummary(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:        s.ID,
		Channel:   s.Channel,
		UserID:    s.UserID,
		Subtotal:  s.Subtotal,
		TaxTotal:  s.TaxTotal,
		Total:     s.Total,
		CreatedAt: s.CreatedAt,
		Items:     []dto.SaleItemResponse{},
	}
}
