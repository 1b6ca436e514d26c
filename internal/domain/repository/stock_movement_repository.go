package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// StockMovementRepository define el diario de movimientos de stock generados por ventas y devoluciones.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.StockMovement, error)
}
