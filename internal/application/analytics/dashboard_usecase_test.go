package analytics_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de test
// ──────────────────────────────────────────────────────────────────────────────

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var testNow = time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)

// fakeAnalyticsRepo devuelve agregados fijos y cuenta las invocaciones para
// verificar el comportamiento del caché.
type fakeAnalyticsRepo struct {
	calls int
}

func (f *fakeAnalyticsRepo) SalesTotalBetween(_, _ time.Time) (decimal.Decimal, error) {
	f.calls++
	return decimal.RequireFromString("150.50"), nil
}

func (f *fakeAnalyticsRepo) ActiveProductCount() (int64, error) { return 42, nil }

func (f *fakeAnalyticsRepo) LowStockVariants(_ int) ([]*entity.ProductVariant, error) {
	return []*entity.ProductVariant{{
		ID:           "var-bajo",
		Presentation: "500 ml",
		Stock:        1,
		MinStock:     5,
		Price:        decimal.RequireFromString("10.00"),
	}}, nil
}

func (f *fakeAnalyticsRepo) RecentSales(_ int) ([]*entity.Sale, error) {
	return []*entity.Sale{{
		ID:        "sale-1",
		Channel:   entity.ChannelStore,
		UserID:    "user-1",
		Total:     decimal.RequireFromString("34.80"),
		CreatedAt: testNow,
	}}, nil
}

func (f *fakeAnalyticsRepo) SalesByDay(from, _ time.Time) ([]repository.DailySalesPoint, error) {
	return []repository.DailySalesPoint{{Date: from, Total: decimal.RequireFromString("20.00")}}, nil
}

// mapCache caché en memoria sin TTL, suficiente para los tests.
type mapCache struct {
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) {
	c.data[key] = value
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestSummary_ArmaElResumen(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	uc := analytics.NewDashboardUseCase(repo, analytics.NoopCache{}, fixedClock{now: testNow}, zerolog.Nop())

	out, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.True(t, out.DailySales.Equal(decimal.RequireFromString("150.50")))
	assert.Equal(t, int64(42), out.ProductCount)
	require.Len(t, out.LowStock, 1)
	assert.True(t, out.LowStock[0].LowStock)
	require.Len(t, out.RecentSales, 1)
	assert.Equal(t, "sale-1", out.RecentSales[0].ID)
	require.Len(t, out.SalesChart, 1)
	assert.Equal(t, "2025-06-09", out.SalesChart[0].Date, "la gráfica arranca 6 días atrás")
}

func TestSummary_SegundaLlamadaSirveDesdeCache(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	cache := newMapCache()
	uc := analytics.NewDashboardUseCase(repo, cache, fixedClock{now: testNow}, zerolog.Nop())

	first, err := uc.Summary(context.Background())
	require.NoError(t, err)
	callsAfterFirst := repo.calls

	second, err := uc.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, repo.calls, "la segunda llamada no debe tocar el repositorio")
	assert.True(t, second.DailySales.Equal(first.DailySales))
	assert.Equal(t, first.ProductCount, second.ProductCount)
}

func TestSummary_CacheCorrupto_Recalcula(t *testing.T) {
	repo := &fakeAnalyticsRepo{}
	cache := newMapCache()
	cache.data["dashboard:summary"] = []byte("{esto no es json")

	uc := analytics.NewDashboardUseCase(repo, cache, fixedClock{now: testNow}, zerolog.Nop())

	out, err := uc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), out.ProductCount)

	// La copia corrupta queda reemplazada por una válida.
	var cached dto.DashboardSummary
	require.NoError(t, json.Unmarshal(cache.data["dashboard:summary"], &cached))
	assert.Equal(t, int64(42), cached.ProductCount)
}
