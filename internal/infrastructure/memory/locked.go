package memory

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// Accesos fuera de transacción: toman el lock y delegan en los repos del estado vigente.

type lockedProducts struct{ s *Store }

func (l lockedProducts) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return productRepo{st: l.s.state}.GetByID(ctx, id)
}

func (l lockedProducts) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return productRepo{st: l.s.state}.GetByIDs(ctx, ids)
}

type lockedSales struct{ s *Store }

func (l lockedSales) with(fn func(r saleRepo) error) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return fn(saleRepo{st: l.s.state})
}

func (l lockedSales) Create(ctx context.Context, sale *entity.Sale) error {
	return l.with(func(r saleRepo) error { return r.Create(ctx, sale) })
}

func (l lockedSales) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	return l.with(func(r saleRepo) error { return r.CreateItem(ctx, item) })
}

func (l lockedSales) GetByID(ctx context.Context, id string) (sale *entity.Sale, err error) {
	err = l.with(func(r saleRepo) error { sale, err = r.GetByID(ctx, id); return err })
	return sale, err
}

func (l lockedSales) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return l.GetByID(ctx, id)
}

func (l lockedSales) ListItems(ctx context.Context, saleID string) (items []*entity.SaleItem, err error) {
	err = l.with(func(r saleRepo) error { items, err = r.ListItems(ctx, saleID); return err })
	return items, err
}

func (l lockedSales) ListItemsForUpdate(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	return l.ListItems(ctx, saleID)
}

func (l lockedSales) UpdateItemQuantity(ctx context.Context, itemID string, quantity, subtotal decimal.Decimal) error {
	return l.with(func(r saleRepo) error { return r.UpdateItemQuantity(ctx, itemID, quantity, subtotal) })
}

func (l lockedSales) DeleteItem(ctx context.Context, itemID string) error {
	return l.with(func(r saleRepo) error { return r.DeleteItem(ctx, itemID) })
}

func (l lockedSales) UpdateTotals(ctx context.Context, sale *entity.Sale) error {
	return l.with(func(r saleRepo) error { return r.UpdateTotals(ctx, sale) })
}

type lockedMovements struct{ s *Store }

func (l lockedMovements) Create(ctx context.Context, m *entity.StockMovement) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	l.s.state.movements = append(l.s.state.movements, *m)
	return nil
}

func (l lockedMovements) ListBySale(ctx context.Context, saleID string) ([]*entity.StockMovement, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return movementRepo{st: l.s.state}.ListBySale(ctx, saleID)
}
