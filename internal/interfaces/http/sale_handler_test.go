package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/pos-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/pos-api/pkg/jwt"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func buildSalesApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore(0)
	store.PutProduct(entity.Product{ID: "A", Name: "Producto A", Price: d("1000"), Cost: d("600"), Stock: d("10"), QuantityKind: entity.QuantityKindUnit})
	store.PutProduct(entity.Product{ID: "B", Name: "Pack B", Price: d("5000"), Stock: d("5"), QuantityKind: entity.QuantityKindUnit, IsBundle: true})
	store.PutProduct(entity.Product{ID: "C", Name: "Producto C", Price: d("2800"), Stock: d("10"), QuantityKind: entity.QuantityKindUnit})
	store.PutBundle("B", []entity.BundleComponent{{BundleID: "B", ComponentID: "C", Quantity: 2, Position: 1}})

	carts := memory.NewCartStore()
	log := zerolog.Nop()
	rate := domainsales.DefaultTaxRate
	ledger := sales.NewStockLedger(sales.NewBundleResolver(), false, log)

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		Cart:      sales.NewCartUseCase(carts, store.Products(), rate),
		Finalize:  sales.NewFinalizeSaleUseCase(carts, store, ledger, rate, log),
		Refund:    sales.NewRefundSaleUseCase(store, ledger, rate, log),
		Query:     sales.NewSaleQueryUseCase(store.Sales(), store.Movements()),
		Receipt:   sales.NewReceiptPDFUseCase(store.Sales(), pdf.NewTicketGenerator(), sales.ReceiptHeader{StoreName: "Almacén Test"}),
		JWTSecret: testJWTSecret,
		Log:       log,
	})
	return app, store
}

func bearer(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testSessionID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func TestSalesAPI_VentaYDevolucionParcial(t *testing.T) {
	app, store := buildSalesApp(t)
	cashier := bearer(t, pkgjwt.RoleCashier)

	resp, _ := call(t, app, http.MethodPut, "/api/cart/items/A", cashier, dto.SetCartQuantityRequest{Quantity: d("3")})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, raw := call(t, app, http.MethodPost, "/api/cart/items", cashier, dto.AddCartItemRequest{ProductID: "B"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cart dto.CartResponse
	require.NoError(t, json.Unmarshal(raw, &cart))
	assert.True(t, cart.Total.Equal(d("8000")))

	paid := d("10000")
	resp, raw = call(t, app, http.MethodPost, "/api/sales", cashier, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentCash, PaidAmount: &paid})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(raw))
	var sale dto.FinalizeSaleResponse
	require.NoError(t, json.Unmarshal(raw, &sale))
	assert.Equal(t, int64(1), sale.ReceiptNumber)
	assert.True(t, sale.Change.Equal(d("2000")))

	resp, raw = call(t, app, http.MethodGet, "/api/sales/"+sale.SaleID, cashier, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var detail dto.SaleResponse
	require.NoError(t, json.Unmarshal(raw, &detail))
	items := map[string]decimal.Decimal{}
	for _, it := range detail.Items {
		items[it.ID] = d("1")
	}

	// Un cajero no puede devolver.
	resp, _ = call(t, app, http.MethodPost, "/api/sales/"+sale.SaleID+"/refunds", cashier, dto.RefundRequest{Items: items})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, raw = call(t, app, http.MethodPost, "/api/sales/"+sale.SaleID+"/refunds", bearer(t, pkgjwt.RoleSupervisor), dto.RefundRequest{Items: items})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var refund dto.RefundResponse
	require.NoError(t, json.Unmarshal(raw, &refund))
	assert.True(t, refund.TotalRefunded.Equal(d("6000")))
	assert.True(t, refund.NewTotal.Equal(d("2000")))
	assert.Equal(t, entity.SaleStatusPartialRefund, refund.Status)

	c, _ := store.Product("C")
	assert.True(t, c.Stock.Equal(d("10")))

	resp, raw = call(t, app, http.MethodGet, "/api/sales/"+sale.SaleID+"/movements", cashier, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var moves []dto.StockMovementResponse
	require.NoError(t, json.Unmarshal(raw, &moves))
	assert.Len(t, moves, 6)

	resp, raw = call(t, app, http.MethodGet, "/api/sales/"+sale.SaleID+"/receipt", cashier, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestSalesAPI_SinStockIndicaProducto(t *testing.T) {
	app, store := buildSalesApp(t)
	store.PutProduct(entity.Product{ID: "Z", Name: "Agotado", Price: d("100"), Stock: d("0")})

	resp, raw := call(t, app, http.MethodPost, "/api/cart/items", bearer(t, pkgjwt.RoleCashier), dto.AddCartItemRequest{ProductID: "Z"})

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "OUT_OF_STOCK", body.Code)
	assert.Equal(t, "Z", body.ProductID)
}

func TestSalesAPI_ErroresDeValidacion(t *testing.T) {
	app, _ := buildSalesApp(t)
	cashier := bearer(t, pkgjwt.RoleCashier)
	admin := bearer(t, pkgjwt.RoleAdmin)

	resp, raw := call(t, app, http.MethodPost, "/api/sales", cashier, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentDebit})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "EMPTY_CART")

	_, _ = call(t, app, http.MethodPost, "/api/cart/items", cashier, dto.AddCartItemRequest{ProductID: "A"})
	paid := d("10")
	resp, raw = call(t, app, http.MethodPost, "/api/sales", cashier, dto.FinalizeSaleRequest{PaymentMethod: entity.PaymentCash, PaidAmount: &paid})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(raw), "INSUFFICIENT_PAYMENT")

	resp, raw = call(t, app, http.MethodPost, "/api/sales/nope/refunds", admin, dto.RefundRequest{Items: map[string]decimal.Decimal{"x": d("1")}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(raw), "SALE_NOT_FOUND")

	resp, raw = call(t, app, http.MethodPost, "/api/sales/nope/refunds", admin, dto.RefundRequest{Items: map[string]decimal.Decimal{"x": d("0")}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "NO_ITEMS_SELECTED")

	resp, _ = call(t, app, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
