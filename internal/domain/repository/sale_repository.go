package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// SaleRepository define la persistencia de ventas y sus líneas.
// Los métodos Get* devuelven (nil, nil) cuando no hay registro.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetByIDForUpdate bloquea la fila de la venta hasta el fin de la transacción.
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	// ListItemsForUpdate bloquea las líneas vigentes de la venta.
	ListItemsForUpdate(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	UpdateItemQuantity(ctx context.Context, itemID string, quantity, subtotal decimal.Decimal) error
	DeleteItem(ctx context.Context, itemID string) error
	// UpdateTotals persiste subtotal, impuesto, total y estado.
	UpdateTotals(ctx context.Context, sale *entity.Sale) error
}
