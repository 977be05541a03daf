package dto

import "github.com/shopspring/decimal"

// SalesChartPoint punto de la gráfica de ventas por día.
type SalesChartPoint struct {
	Date  string          `json:"date"` // YYYY-MM-DD
	Total decimal.Decimal `json:"total"`
}

// DashboardSummary resumen para la pantalla principal.
type DashboardSummary struct {
	DailySales    decimal.Decimal   `json:"daily_sales"`
	MonthlySales  decimal.Decimal   `json:"monthly_sales"`
	ProductCount  int64             `json:"product_count"`
	LowStock      []VariantResponse `json:"low_stock"`
	RecentSales   []SaleResponse    `json:"recent_sales"`
	SalesChart    []SalesChartPoint `json:"sales_chart"`
	ChartDays     int               `json:"chart_days"`
}
