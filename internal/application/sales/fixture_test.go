package sales_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store    *memory.Store
	carts    *memory.CartStore
	cart     *sales.CartUseCase
	finalize *sales.FinalizeSaleUseCase
	refund   *sales.RefundSaleUseCase
	query    *sales.SaleQueryUseCase
}

func newFixture(t *testing.T, strictComponents bool) *fixture {
	t.Helper()
	store := memory.NewStore(0)
	carts := memory.NewCartStore()
	ledger := sales.NewStockLedger(sales.NewBundleResolver(), strictComponents, zerolog.Nop())
	rate := domainsales.DefaultTaxRate
	return &fixture{
		store:    store,
		carts:    carts,
		cart:     sales.NewCartUseCase(carts, store.Products(), rate),
		finalize: sales.NewFinalizeSaleUseCase(carts, store, ledger, rate, zerolog.Nop()),
		refund:   sales.NewRefundSaleUseCase(store, ledger, rate, zerolog.Nop()),
		query:    sales.NewSaleQueryUseCase(store.Sales(), store.Movements()),
	}
}

// seedScenario carga A (unitario, 1000), B (pack de 2×C, 5000) y C.
func (f *fixture) seedScenario() {
	f.store.PutProduct(entity.Product{ID: "A", Name: "Producto A", Price: d("1000"), Cost: d("600"), Stock: d("10"), QuantityKind: entity.QuantityKindUnit})
	f.store.PutProduct(entity.Product{ID: "B", Name: "Pack B", Price: d("5000"), Cost: d("3000"), Stock: d("5"), QuantityKind: entity.QuantityKindUnit, IsBundle: true})
	f.store.PutProduct(entity.Product{ID: "C", Name: "Producto C", Price: d("2800"), Cost: d("1500"), Stock: d("10"), QuantityKind: entity.QuantityKindUnit})
	f.store.PutBundle("B", []entity.BundleComponent{{BundleID: "B", ComponentID: "C", Quantity: 2, Price: d("2500"), Position: 1}})
}

func (f *fixture) stock(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, ok := f.store.Product(id)
	require.True(t, ok, "producto %s", id)
	return p.Stock
}

// sellScenario vende A×3 y B×1 con débito (total 8000).
func (f *fixture) sellScenario(t *testing.T) *dto.FinalizeSaleResponse {
	t.Helper()
	ctx := context.Background()
	_, err := f.cart.SetQuantity(ctx, "s1", "A", d("3"))
	require.NoError(t, err)
	_, err = f.cart.Add(ctx, "s1", "B")
	require.NoError(t, err)
	out, err := f.finalize.Execute(ctx, "s1", "u1", dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentDebit})
	require.NoError(t, err)
	return out
}

func (f *fixture) lineID(t *testing.T, saleID, productID string) string {
	t.Helper()
	sale, err := f.query.GetByID(context.Background(), saleID)
	require.NoError(t, err)
	for _, it := range sale.Items {
		if it.ProductID == productID {
			return it.ID
		}
	}
	t.Fatalf("la venta %s no tiene línea de %s", saleID, productID)
	return ""
}

func assertTotalConsistente(t *testing.T, f *fixture, saleID string) {
	t.Helper()
	sale, err := f.query.GetByID(context.Background(), saleID)
	require.NoError(t, err)
	sum := decimal.Zero
	for _, it := range sale.Items {
		sum = sum.Add(it.Subtotal)
		require.True(t, it.Quantity.GreaterThan(decimal.Zero))
		require.True(t, it.Quantity.LessThanOrEqual(it.OriginalQuantity))
	}
	require.True(t, sale.Total.Equal(sum), "total %s != suma de líneas %s", sale.Total, sum)
	require.True(t, sale.Subtotal.Add(sale.Tax).Equal(sale.Total))
}
