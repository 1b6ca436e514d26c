package sales_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/sales"
)

func item(qty, price string) *entity.SaleItem {
	return &entity.SaleItem{
		Quantity:         d(qty),
		OriginalQuantity: d(qty),
		UnitPrice:        d(price),
		Subtotal:         sales.LineSubtotal(d(price), d(qty)),
	}
}

func TestApplyReturn_Parcial(t *testing.T) {
	got := sales.ApplyReturn(item("3", "1000"), d("1"))

	assert.False(t, got.Delete)
	assert.True(t, got.Quantity.Equal(d("1")))
	assert.True(t, got.Remaining.Equal(d("2")))
	assert.True(t, got.NewSubtotal.Equal(d("2000")))
	assert.True(t, got.Refunded.Equal(d("1000")))
}

func TestApplyReturn_TotalEliminaLinea(t *testing.T) {
	got := sales.ApplyReturn(item("1", "5000"), d("1"))

	assert.True(t, got.Delete)
	assert.True(t, got.Remaining.IsZero())
	assert.True(t, got.Refunded.Equal(d("5000")))
}

func TestApplyReturn_ExcesoSeAcotaSinError(t *testing.T) {
	got := sales.ApplyReturn(item("2", "1000"), d("7"))

	assert.True(t, got.Delete)
	assert.True(t, got.Quantity.Equal(d("2")), "la cantidad se acota a la vigente")
	assert.True(t, got.Refunded.Equal(d("2000")))
}

func TestApplyReturn_GranelMantieneConsistencia(t *testing.T) {
	it := item("1.333", "2990")
	got := sales.ApplyReturn(it, d("0.333"))

	assert.False(t, got.Delete)
	assert.True(t, got.Remaining.Equal(d("1")))
	assert.True(t, got.NewSubtotal.Add(got.Refunded).Equal(it.Subtotal),
		"subtotal nuevo + devuelto debe ser el subtotal original")
}

func TestResolveRefund(t *testing.T) {
	partial := sales.ResolveRefund(d("8000"), d("6000"), 1)
	assert.Equal(t, entity.SaleStatusPartialRefund, partial.Status)
	assert.True(t, partial.Total.Equal(d("2000")))

	complete := sales.ResolveRefund(d("8000"), d("8000"), 0)
	assert.Equal(t, entity.SaleStatusCompleteRefund, complete.Status)
	assert.True(t, complete.Total.IsZero())

	floor := sales.ResolveRefund(d("100"), d("150"), 2)
	assert.True(t, floor.Total.IsZero(), "el total nunca queda negativo")
}
