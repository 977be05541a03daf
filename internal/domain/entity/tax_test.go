package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestTaxAmount_RedondeaADosDecimales(t *testing.T) {
	tax := &entity.Tax{Percentage: decimal.NewFromInt(16)}

	cases := []struct {
		amount string
		want   string
	}{
		{"30.00", "4.80"},
		{"10.05", "1.61"},  // 1.608 → 1.61
		{"0.01", "0.00"},   // 0.0016 → 0.00
		{"99.99", "16.00"}, // 15.9984 → 16.00
	}
	for _, tc := range cases {
		got := tax.TaxAmount(decimal.RequireFromString(tc.amount))
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)),
			"monto %s: esperado %s, obtenido %s", tc.amount, tc.want, got)
	}
}

func TestPriceWithTax(t *testing.T) {
	tax := &entity.Tax{Percentage: decimal.NewFromInt(19)}
	got := tax.PriceWithTax(decimal.RequireFromString("100.00"))
	assert.True(t, got.Equal(decimal.RequireFromString("119.00")), "obtenido %s", got)
}

func TestWeightLot_IsExpired(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

	sinVencimiento := &entity.WeightLot{}
	assert.False(t, sinVencimiento.IsExpired(now))

	ayer := now.AddDate(0, 0, -1)
	vencido := &entity.WeightLot{ExpiresAt: &ayer}
	assert.True(t, vencido.IsExpired(now))

	manana := now.AddDate(0, 0, 1)
	vigente := &entity.WeightLot{ExpiresAt: &manana}
	assert.False(t, vigente.IsExpired(now))
}

func TestProductVariant_FinalPrice(t *testing.T) {
	precio := decimal.RequireFromString("10.00")
	oferta := decimal.RequireFromString("8.50")

	sinOferta := &entity.ProductVariant{Price: precio}
	assert.True(t, sinOferta.FinalPrice().Equal(precio))

	conOferta := &entity.ProductVariant{Price: precio, SalePrice: &oferta}
	assert.True(t, conOferta.FinalPrice().Equal(oferta))
}
