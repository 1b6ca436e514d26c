package entity

import "github.com/shopspring/decimal"

// BundleComponent relaciona un pack con uno de sus productos y la cantidad por unidad de pack.
type BundleComponent struct {
	BundleID    string
	ComponentID string
	Quantity    int64           // unidades del componente por cada pack
	Price       decimal.Decimal // precio del componente al crear el pack
	Position    int
}
