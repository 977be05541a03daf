package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SalesTotalBetween suma los totales de venta en el rango [from, to].
func (r *AnalyticsRepo) SalesTotalBetween(from, to time.Time) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1 AND created_at <= $2`
	var total decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("sales total: %w", err)
	}
	return total, nil
}

// ActiveProductCount cuenta productos activos del catálogo.
func (r *AnalyticsRepo) ActiveProductCount() (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM products WHERE active = true`
	if err := r.q.QueryRow(context.Background(), query).Scan(&count); err != nil {
		return 0, fmt.Errorf("active product count: %w", err)
	}
	return count, nil
}

// LowStockVariants devuelve variantes con stock en o por debajo del mínimo.
func (r *AnalyticsRepo) LowStockVariants(limit int) ([]*entity.ProductVariant, error) {
	query := `
		SELECT ` + variantColumns + `
		FROM product_variants WHERE stock <= min_stock
		ORDER BY stock LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("low stock variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan variant: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// RecentSales devuelve las últimas ventas registradas.
func (r *AnalyticsRepo) RecentSales(limit int) ([]*entity.Sale, error) {
	query := `
		SELECT id, channel, user_id, subtotal, tax_total, total, created_at
		FROM sales ORDER BY created_at DESC LIMIT $1`
	rows, err := r.q.Query(context.Background(), query, limit)
	if err != nil {
		return nil, fmt.Errorf("recent sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// SalesByDay agrega los totales de venta por día calendario en el rango.
func (r *AnalyticsRepo) SalesByDay(from, to time.Time) ([]repository.DailySalesPoint, error) {
	query := `
		SELECT date_trunc('day', created_at) AS day, COALESCE(SUM(total), 0)
		FROM sales WHERE created_at >= $1 AND created_at <= $2
		GROUP BY day ORDER BY day`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("sales by day: %w", err)
	}
	defer rows.Close()
	var points []repository.DailySalesPoint
	for rows.Next() {
		var p repository.DailySalesPoint
		if err := rows.Scan(&p.Date, &p.Total); err != nil {
			return nil, fmt.Errorf("scan sales point: %w", err)
		}
		points = append(points, p)
	}
	return points, rows.Err()
}
