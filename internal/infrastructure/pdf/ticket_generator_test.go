package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

func TestFormatAmount(t *testing.T) {
	cases := map[string]string{
		"0":       "0",
		"999":     "999",
		"25000":   "25.000",
		"1000000": "1.000.000",
		"1121.25": "1.121,25",
		"747.5":   "747,50",
		"8000.05": "8.000,05",
		"-1500":   "-1.500",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatAmount(decimal.RequireFromString(in)), in)
	}
}

func TestFormatQuantity(t *testing.T) {
	assert.Equal(t, "3", formatQuantity(&entity.SaleItem{QuantityKind: entity.QuantityKindUnit, Quantity: decimal.NewFromInt(3)}))
	assert.Equal(t, "0,375", formatQuantity(&entity.SaleItem{QuantityKind: entity.QuantityKindBulk, Quantity: decimal.RequireFromString("0.375")}))
}

func TestGenerateReceiptPDF_DevuelvePDF(t *testing.T) {
	sale := &entity.Sale{
		ID: "s1", ReceiptNumber: 42,
		Subtotal: decimal.RequireFromString("6722.69"), Tax: decimal.RequireFromString("1277.31"), Total: decimal.NewFromInt(8000),
		PaymentMethod: entity.PaymentCash, PaidAmount: decimal.NewFromInt(10000), Change: decimal.NewFromInt(2000),
		Status: entity.SaleStatusCompleted, CreatedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
	items := []*entity.SaleItem{
		{ProductName: "Producto A", QuantityKind: entity.QuantityKindUnit, Quantity: decimal.NewFromInt(3), Subtotal: decimal.NewFromInt(3000)},
		{ProductName: "Pack B", QuantityKind: entity.QuantityKindUnit, Quantity: decimal.NewFromInt(1), Subtotal: decimal.NewFromInt(5000)},
	}

	out, err := NewTicketGenerator().GenerateReceiptPDF(context.Background(), sales.ReceiptHeader{StoreName: "Almacén Test", TaxID: "900123456-7"}, sale, items)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
