package repository

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// DailySalesPoint punto de la gráfica de ventas por día.
type DailySalesPoint struct {
	Date  time.Time
	Total decimal.Decimal
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	SalesTotalBetween(from, to time.Time) (decimal.Decimal, error)
	ActiveProductCount() (int64, error)
	LowStockVariants(limit int) ([]*entity.ProductVariant, error)
	RecentSales(limit int) ([]*entity.Sale, error)
	SalesByDay(from, to time.Time) ([]DailySalesPoint, error)
}
