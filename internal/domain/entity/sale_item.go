package entity

import "github.com/shopspring/decimal"

// SaleItem representa una línea vigente de una venta.
// UnitPrice y UnitCost son el snapshot al momento de vender.
type SaleItem struct {
	ID               string
	SaleID           string
	ProductID        string
	ProductName      string
	QuantityKind     string
	Quantity         decimal.Decimal // cantidad vigente (descontadas devoluciones)
	OriginalQuantity decimal.Decimal
	UnitPrice        decimal.Decimal
	UnitCost         decimal.Decimal
	Subtotal         decimal.Decimal
}
