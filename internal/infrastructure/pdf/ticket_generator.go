// Package pdf genera el ticket de venta (boleta) en formato de rollo térmico de 80 mm.
//
// Layout:
//
//	┌──────────────────────────────┐
//	│  Local + NIT + dirección      │
//	│  BOLETA N° / fecha / medio    │
//	│  ──────────────────────────── │
//	│  Cant | Descripción | Total   │
//	│  ──────────────────────────── │
//	│  Neto / IVA / TOTAL           │
//	│  Pagado / Vuelto              │
//	│  QR (boleta + venta + total)  │
//	└──────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

var _ sales.ReceiptPDFGenerator = (*TicketGenerator)(nil)

const (
	ticketWidth = 80.0 // mm
	baseHeight  = 120.0
	lineHeight  = 5.0
)

var paymentLabels = map[string]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentDebit:    "Débito",
	entity.PaymentCredit:   "Crédito",
	entity.PaymentTransfer: "Transferencia",
}

// TicketGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type TicketGenerator struct{}

// NewTicketGenerator construye el generador.
func NewTicketGenerator() *TicketGenerator { return &TicketGenerator{} }

// GenerateReceiptPDF genera el ticket con las líneas vigentes y devuelve sus bytes.
func (g *TicketGenerator) GenerateReceiptPDF(_ context.Context, header sales.ReceiptHeader, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, baseHeight+float64(len(items))*lineHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 7}).
		WithTitle(fmt.Sprintf("Boleta %d", sale.ReceiptNumber), true).
		WithAuthor(header.StoreName, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRows(header, sale)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))
	m.AddRows(itemHeaderRow())
	m.AddRows(itemRows(items)...)
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))
	m.AddRows(totalRows(sale)...)
	m.AddRows(qrRow(sale))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

func centered(s string, size float64, style fontstyle.Type) core.Row {
	return row.New(size*0.6).Add(col.New(12).Add(text.New(s, props.Text{
		Size: size, Style: style, Align: align.Center,
	})))
}

func headerRows(h sales.ReceiptHeader, sale *entity.Sale) []core.Row {
	rows := []core.Row{centered(h.StoreName, 10, fontstyle.Bold)}
	if h.TaxID != "" {
		rows = append(rows, centered("NIT: "+h.TaxID, 7, fontstyle.Normal))
	}
	if h.Address != "" {
		rows = append(rows, centered(h.Address, 7, fontstyle.Normal))
	}
	rows = append(rows,
		centered(fmt.Sprintf("BOLETA N° %d", sale.ReceiptNumber), 9, fontstyle.Bold),
		centered(sale.CreatedAt.Format("02/01/2006 15:04"), 7, fontstyle.Normal),
		centered("Pago: "+nonEmpty(paymentLabels[sale.PaymentMethod], sale.PaymentMethod), 7, fontstyle.Normal),
	)
	if sale.Status == entity.SaleStatusPartialRefund || sale.Status == entity.SaleStatusCompleteRefund {
		rows = append(rows, centered("CON DEVOLUCIONES", 8, fontstyle.Bold))
	}
	return rows
}

func itemHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Align: a}))
	}
	return row.New(lineHeight).Add(
		h("Cant.", 2, align.Left),
		h("Descripción", 6, align.Left),
		h("Total", 4, align.Right),
	)
}

func itemRows(items []*entity.SaleItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		out = append(out, row.New(lineHeight).Add(
			col.New(2).Add(text.New(formatQuantity(it), props.Text{Size: 7})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 7})),
			col.New(4).Add(text.New("$"+formatAmount(it.Subtotal), props.Text{Size: 7, Align: align.Right})),
		))
	}
	return out
}

func totalRows(sale *entity.Sale) []core.Row {
	pair := func(label string, v decimal.Decimal, style fontstyle.Type) core.Row {
		return row.New(lineHeight).Add(
			col.New(7).Add(text.New(label, props.Text{Size: 8, Style: style, Align: align.Right})),
			col.New(5).Add(text.New("$"+formatAmount(v), props.Text{Size: 8, Style: style, Align: align.Right})),
		)
	}
	return []core.Row{
		pair("Neto:", sale.Subtotal, fontstyle.Normal),
		pair("IVA:", sale.Tax, fontstyle.Normal),
		pair("TOTAL:", sale.Total, fontstyle.Bold),
		pair("Pagado:", sale.PaidAmount, fontstyle.Normal),
		pair("Vuelto:", sale.Change, fontstyle.Normal),
	}
}

func qrRow(sale *entity.Sale) core.Row {
	data := fmt.Sprintf("boleta=%d;venta=%s;total=%s", sale.ReceiptNumber, sale.ID, sale.Total.StringFixed(2))
	return row.New(30).Add(
		col.New(3),
		col.New(6).Add(code.NewQr(data, props.Rect{Percent: 90, Center: true})),
		col.New(3),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatQuantity muestra unidades sin decimales y granel con 3 (kg).
func formatQuantity(it *entity.SaleItem) string {
	if it.QuantityKind == entity.QuantityKindBulk {
		return strings.Replace(it.Quantity.StringFixed(3), ".", ",", 1)
	}
	return it.Quantity.StringFixed(0)
}

// formatAmount separa miles con punto y usa coma decimal solo si hay centavos.
// Ej: 25000 → "25.000", 1121.25 → "1.121,25"
func formatAmount(v decimal.Decimal) string {
	v = v.Round(2)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Abs()
	}
	intPart := v.Truncate(0)
	out := sign + formatMoney(intPart.StringFixed(0))
	if cents := v.Sub(intPart).Shift(2).IntPart(); cents != 0 {
		out += fmt.Sprintf(",%02d", cents)
	}
	return out
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
