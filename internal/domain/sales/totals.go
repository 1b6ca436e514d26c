// Package sales contiene las reglas puras del motor de ventas y devoluciones (servicios de dominio).
package sales

import "github.com/shopspring/decimal"

// DefaultTaxRate IVA del 19% incluido en el precio de venta.
var DefaultTaxRate = decimal.NewFromFloat(0.19)

// MoneyScale decimales usados para montos.
const MoneyScale = 2

// Totals desglose de un total con IVA incluido.
type Totals struct {
	Subtotal decimal.Decimal // neto
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// SplitTaxInclusive separa el IVA de un total que ya lo incluye.
// Impuesto = Total - Total/(1+tasa); Subtotal = Total - Impuesto.
func SplitTaxInclusive(total, rate decimal.Decimal) Totals {
	total = total.Round(MoneyScale)
	if rate.LessThanOrEqual(decimal.Zero) {
		return Totals{Subtotal: total, Tax: decimal.Zero, Total: total}
	}
	net := total.Div(decimal.NewFromInt(1).Add(rate))
	tax := total.Sub(net).Round(MoneyScale)
	return Totals{Subtotal: total.Sub(tax), Tax: tax, Total: total}
}

// LineSubtotal precio unitario × cantidad, redondeado a MoneyScale.
func LineSubtotal(unitPrice, quantity decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(quantity).Round(MoneyScale)
}

// Change vuelto a entregar; nunca negativo.
func Change(paid, total decimal.Decimal) decimal.Decimal {
	if paid.LessThanOrEqual(total) {
		return decimal.Zero
	}
	return paid.Sub(total)
}
