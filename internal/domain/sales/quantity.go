package sales

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// BulkScale decimales admitidos para productos a granel (gramos sobre kilos).
// Las cantidades se guardan en punto fijo, por lo que "devolución total" es una comparación exacta.
const BulkScale = 3

// NormalizeQuantity valida la cantidad según el tipo del producto.
// Unitarios: debe ser entera (no se trunca en silencio). Granel: se redondea a BulkScale.
func NormalizeQuantity(kind string, q decimal.Decimal) (decimal.Decimal, error) {
	switch kind {
	case entity.QuantityKindBulk:
		return q.Round(BulkScale), nil
	case entity.QuantityKindUnit, "":
		if !q.Equal(q.Truncate(0)) {
			return decimal.Zero, domain.ErrInvalidInput
		}
		return q.Truncate(0), nil
	}
	return decimal.Zero, domain.ErrInvalidInput
}

// ClampToStock acota q al rango [0, stock]. Un stock negativo se trata como 0.
func ClampToStock(q, stock decimal.Decimal) decimal.Decimal {
	if q.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if stock.LessThan(decimal.Zero) {
		return decimal.Zero
	}
	if q.GreaterThan(stock) {
		return stock
	}
	return q
}

// ComponentQuantity cantidad de un componente a mover para qty packs.
func ComponentQuantity(perBundle int64, qty decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(perBundle).Mul(qty)
}
