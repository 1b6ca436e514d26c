package sales_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestCart_AddSinStockFalla(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("0")})

	_, err := f.cart.Add(context.Background(), "s1", "X")

	require.ErrorIs(t, err, domain.ErrOutOfStock)
	var se *domain.StockError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "X", se.ProductID)
}

func TestCart_AddNoSuperaElStock(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("2")})
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", "X")
	require.NoError(t, err)
	resp, err := f.cart.Add(ctx, "s1", "X")
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].Quantity.Equal(d("2")))

	_, err = f.cart.Add(ctx, "s1", "X")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)

	// El carro no cambió.
	got, err := f.cart.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, got.Lines[0].Quantity.Equal(d("2")))
}

func TestCart_AddReleeStockVigente(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("5")})
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", "X")
	require.NoError(t, err)

	// Otra caja vendió el resto.
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("1")})
	_, err = f.cart.Add(ctx, "s1", "X")
	assert.ErrorIs(t, err, domain.ErrOutOfStock)
}

func TestCart_SetQuantityAcotaAlStock(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("4")})
	ctx := context.Background()

	resp, err := f.cart.SetQuantity(ctx, "s1", "X", d("10"))
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].Quantity.Equal(d("4")))
	assert.True(t, resp.Total.Equal(d("400")))

	resp, err = f.cart.SetQuantity(ctx, "s1", "X", d("0"))
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)

	resp, err = f.cart.SetQuantity(ctx, "s1", "X", d("-3"))
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestCart_SetQuantityUnitarioRechazaFraccion(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("4"), QuantityKind: entity.QuantityKindUnit})

	_, err := f.cart.SetQuantity(context.Background(), "s1", "X", d("1.5"))

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCart_SetQuantityGranel(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "Q", Price: d("2990"), Stock: d("1.2"), QuantityKind: entity.QuantityKindBulk})

	resp, err := f.cart.SetQuantity(context.Background(), "s1", "Q", d("0.375"))

	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.True(t, resp.Lines[0].Subtotal.Equal(d("1121.25")))
	assert.True(t, resp.Subtotal.Add(resp.Tax).Equal(resp.Total))
}

func TestCart_ProductoArchivadoOInexistente(t *testing.T) {
	f := newFixture(t, false)
	f.store.PutProduct(entity.Product{ID: "X", Price: d("100"), Stock: d("4"), Archived: true})
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", "X")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.cart.Add(ctx, "s1", "nope")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCart_RemoveYClear(t *testing.T) {
	f := newFixture(t, false)
	f.seedScenario()
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", "A")
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "s1", "C")
	require.NoError(t, err)

	resp, err := f.cart.Remove(ctx, "s1", "A")
	require.NoError(t, err)
	require.Len(t, resp.Lines, 1)
	assert.Equal(t, "C", resp.Lines[0].ProductID)

	require.NoError(t, f.cart.Clear(ctx, "s1"))
	resp, err = f.cart.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, resp.Lines)
}

func TestCart_SesionesIndependientes(t *testing.T) {
	f := newFixture(t, false)
	f.seedScenario()
	ctx := context.Background()

	_, err := f.cart.Add(ctx, "s1", "A")
	require.NoError(t, err)

	other, err := f.cart.Get(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)
}
