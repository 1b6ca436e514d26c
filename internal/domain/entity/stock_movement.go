package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock generados por el núcleo de ventas.
const (
	MovementTypeSale   = "SALE"   // salida por venta
	MovementTypeRefund = "REFUND" // reingreso por devolución
)

// StockMovement registra cada cambio de stock hecho por una venta o devolución.
type StockMovement struct {
	ID        string
	SaleID    string
	ProductID string
	BundleID  string // pack de origen cuando el movimiento es de un componente
	Type      string
	Quantity  decimal.Decimal // positivo entrada, negativo salida
	CreatedAt time.Time
	CreatedBy string
}
