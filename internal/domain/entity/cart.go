package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine es una línea del carro de una sesión de caja.
type CartLine struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	QuantityKind string          `json:"quantity_kind"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"` // snapshot al agregar
}

// Subtotal devuelve precio × cantidad de la línea.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(l.Quantity).Round(2)
}

// Cart es el carro de una sesión. Vive en un almacén por clave (redis o memoria), nunca en estado global.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Line devuelve la línea del producto o nil.
func (c *Cart) Line(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Remove quita la línea del producto (no falla si no existe).
func (c *Cart) Remove(productID string) {
	out := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != productID {
			out = append(out, l)
		}
	}
	c.Lines = out
}

// IsEmpty indica si el carro no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total suma los subtotales de las líneas.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
