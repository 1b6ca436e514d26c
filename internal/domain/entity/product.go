package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cantidad de un producto.
const (
	QuantityKindUnit = "unit" // se vende por unidades enteras
	QuantityKindBulk = "bulk" // granel / pesable, admite fracciones
)

// Product representa un producto del catálogo tal como lo consume el núcleo de ventas.
// El CRUD del catálogo es externo; aquí solo se lee y se mueve Stock.
type Product struct {
	ID           string
	SKU          string
	Name         string
	Price        decimal.Decimal // precio de venta (IVA incluido)
	Cost         decimal.Decimal // costo unitario
	Stock        decimal.Decimal // puede quedar negativo en componentes de packs
	QuantityKind string
	IsBundle     bool // pack / oferta compuesta por otros productos
	Archived     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsBulk indica si el producto se vende por cantidad fraccionaria.
func (p *Product) IsBulk() bool {
	return p.QuantityKind == QuantityKindBulk
}
