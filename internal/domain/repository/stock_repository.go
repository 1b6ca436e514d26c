package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockRepository es el libro de stock por producto. Cada operación es una única
// sentencia atómica; nunca leer-comparar-escribir.
type StockRepository interface {
	// DecrementIfSufficient resta qty solo si el stock resultante queda >= 0.
	// Devuelve false (sin error) cuando no alcanza; ErrProductNotFound si el producto no existe.
	DecrementIfSufficient(ctx context.Context, productID string, qty decimal.Decimal) (bool, error)
	// Decrement resta qty sin condición (el stock puede quedar negativo) y devuelve el stock resultante.
	Decrement(ctx context.Context, productID string, qty decimal.Decimal) (decimal.Decimal, error)
	// Increment suma qty al stock.
	Increment(ctx context.Context, productID string, qty decimal.Decimal) error
}
