package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")

	// Carro y venta
	ErrOutOfStock          = errors.New("producto sin stock")
	ErrProductNotFound     = errors.New("producto no encontrado")
	ErrEmptyCart           = errors.New("el carro está vacío")
	ErrInsufficientPayment = errors.New("el monto pagado es menor al total")

	// Devoluciones
	ErrSaleNotFound      = errors.New("venta no encontrada")
	ErrSaleItemNotFound  = errors.New("línea de venta no encontrada")
	ErrNoItemsSelected   = errors.New("no se seleccionaron productos para devolver")
	ErrSaleNotRefundable = errors.New("la venta no admite devoluciones")

	// ErrStorage agrupa fallas de transacción o commit. Siempre implica rollback completo y es reintentable.
	ErrStorage = errors.New("error de almacenamiento, intente nuevamente")
)

// StockError identifica el producto que provocó una falla de stock.
// Envuelve ErrOutOfStock o ErrInsufficientStock para que errors.Is siga funcionando.
type StockError struct {
	ProductID string
	Err       error
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: producto %s", e.Err.Error(), e.ProductID)
}

func (e *StockError) Unwrap() error { return e.Err }

// NewStockError construye un StockError para el producto indicado.
func NewStockError(productID string, err error) *StockError {
	return &StockError{ProductID: productID, Err: err}
}
