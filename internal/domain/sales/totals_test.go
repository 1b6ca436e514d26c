package sales_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/sales"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSplitTaxInclusive_Total1190(t *testing.T) {
	got := sales.SplitTaxInclusive(d("1190"), sales.DefaultTaxRate)

	assert.True(t, got.Total.Equal(d("1190")))
	assert.True(t, got.Tax.Equal(d("190")), "IVA esperado 190, obtenido %s", got.Tax)
	assert.True(t, got.Subtotal.Equal(d("1000")))
}

func TestSplitTaxInclusive_SubtotalMasImpuestoEsTotal(t *testing.T) {
	for _, total := range []string{"8000", "2000", "999.99", "0.01", "12345.67"} {
		got := sales.SplitTaxInclusive(d(total), sales.DefaultTaxRate)
		assert.True(t, got.Subtotal.Add(got.Tax).Equal(d(total)), "total %s", total)
	}
}

func TestSplitTaxInclusive_TasaCero(t *testing.T) {
	got := sales.SplitTaxInclusive(d("500"), decimal.Zero)
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.Subtotal.Equal(d("500")))
}

func TestLineSubtotal_Granel(t *testing.T) {
	// 0,375 kg a 2.990 el kilo
	assert.True(t, sales.LineSubtotal(d("2990"), d("0.375")).Equal(d("1121.25")))
}

func TestChange(t *testing.T) {
	assert.True(t, sales.Change(d("10000"), d("8000")).Equal(d("2000")))
	assert.True(t, sales.Change(d("8000"), d("8000")).IsZero())
	assert.True(t, sales.Change(d("0"), d("8000")).IsZero())
}
