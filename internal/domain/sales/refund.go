package sales

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// ClampReturn acota la cantidad pedida a la cantidad vigente de la línea.
func ClampReturn(requested, remaining decimal.Decimal) decimal.Decimal {
	if requested.GreaterThan(remaining) {
		return remaining
	}
	return requested
}

// IsFullReturn indica si devolver qty consume toda la cantidad vigente.
func IsFullReturn(qty, remaining decimal.Decimal) bool {
	return qty.GreaterThanOrEqual(remaining)
}

// ReturnedLine resultado de aplicar una devolución a una línea.
type ReturnedLine struct {
	Quantity    decimal.Decimal // cantidad efectivamente devuelta
	Remaining   decimal.Decimal // cantidad que queda en la línea (0 => eliminar)
	NewSubtotal decimal.Decimal
	Refunded    decimal.Decimal // monto devuelto
	Delete      bool
}

// ApplyReturn calcula el efecto de devolver requested unidades de item.
// El monto devuelto es la diferencia de subtotales, de modo que el total de la venta
// sigue igual a la suma de sus líneas aun con cantidades fraccionarias.
func ApplyReturn(item *entity.SaleItem, requested decimal.Decimal) ReturnedLine {
	qty := ClampReturn(requested, item.Quantity)
	if IsFullReturn(qty, item.Quantity) {
		return ReturnedLine{
			Quantity:    item.Quantity,
			Remaining:   decimal.Zero,
			NewSubtotal: decimal.Zero,
			Refunded:    item.Subtotal,
			Delete:      true,
		}
	}
	remaining := item.Quantity.Sub(qty)
	newSubtotal := LineSubtotal(item.UnitPrice, remaining)
	return ReturnedLine{
		Quantity:    qty,
		Remaining:   remaining,
		NewSubtotal: newSubtotal,
		Refunded:    item.Subtotal.Sub(newSubtotal),
	}
}

// RefundOutcome total y estado de la venta tras una devolución.
type RefundOutcome struct {
	Total  decimal.Decimal
	Status string
}

// ResolveRefund recalcula total y estado: sin líneas vigentes la venta queda en
// complete_refund con total 0; si no, partial_refund con total = max(0, anterior - devuelto).
func ResolveRefund(previousTotal, refunded decimal.Decimal, remainingItems int) RefundOutcome {
	if remainingItems == 0 {
		return RefundOutcome{Total: decimal.Zero, Status: entity.SaleStatusCompleteRefund}
	}
	total := previousTotal.Sub(refunded)
	if total.LessThan(decimal.Zero) {
		total = decimal.Zero
	}
	return RefundOutcome{Total: total, Status: entity.SaleStatusPartialRefund}
}
