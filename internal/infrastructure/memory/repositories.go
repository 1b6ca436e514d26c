package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

type productRepo struct{ st *state }

func (r productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.st.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r productRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.st.products[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

type bundleRepo struct{ st *state }

func (r bundleRepo) ListComponents(_ context.Context, bundleID string) ([]entity.BundleComponent, error) {
	list := append([]entity.BundleComponent(nil), r.st.bundles[bundleID]...)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Position < list[j].Position })
	return list, nil
}

type stockRepo struct{ st *state }

func (r stockRepo) DecrementIfSufficient(_ context.Context, productID string, qty decimal.Decimal) (bool, error) {
	p, ok := r.st.products[productID]
	if !ok {
		return false, domain.ErrProductNotFound
	}
	left := p.Stock.Sub(qty)
	if left.LessThan(decimal.Zero) {
		return false, nil
	}
	p.Stock = left
	r.st.products[productID] = p
	return true, nil
}

func (r stockRepo) Decrement(_ context.Context, productID string, qty decimal.Decimal) (decimal.Decimal, error) {
	p, ok := r.st.products[productID]
	if !ok {
		return decimal.Zero, domain.ErrProductNotFound
	}
	p.Stock = p.Stock.Sub(qty)
	r.st.products[productID] = p
	return p.Stock, nil
}

func (r stockRepo) Increment(_ context.Context, productID string, qty decimal.Decimal) error {
	p, ok := r.st.products[productID]
	if !ok {
		return domain.ErrProductNotFound
	}
	p.Stock = p.Stock.Add(qty)
	r.st.products[productID] = p
	return nil
}

type saleRepo struct{ st *state }

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if _, ok := r.st.sales[sale.ID]; ok {
		return domain.ErrConflict
	}
	r.st.sales[sale.ID] = *sale
	return nil
}

func (r saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	if _, ok := r.st.sales[item.SaleID]; !ok {
		return domain.ErrSaleNotFound
	}
	r.st.items[item.ID] = *item
	r.st.saleItems[item.SaleID] = append(r.st.saleItems[item.SaleID], item.ID)
	return nil
}

func (r saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	s, ok := r.st.sales[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// En memoria la transacción ya es exclusiva.
func (r saleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, id)
}

func (r saleRepo) ListItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	ids := r.st.saleItems[saleID]
	out := make([]*entity.SaleItem, 0, len(ids))
	for _, id := range ids {
		it := r.st.items[id]
		out = append(out, &it)
	}
	return out, nil
}

func (r saleRepo) ListItemsForUpdate(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	return r.ListItems(ctx, saleID)
}

func (r saleRepo) UpdateItemQuantity(_ context.Context, itemID string, quantity, subtotal decimal.Decimal) error {
	it, ok := r.st.items[itemID]
	if !ok {
		return domain.ErrSaleItemNotFound
	}
	it.Quantity = quantity
	it.Subtotal = subtotal
	r.st.items[itemID] = it
	return nil
}

func (r saleRepo) DeleteItem(_ context.Context, itemID string) error {
	it, ok := r.st.items[itemID]
	if !ok {
		return domain.ErrSaleItemNotFound
	}
	delete(r.st.items, itemID)
	ids := r.st.saleItems[it.SaleID]
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != itemID {
			kept = append(kept, id)
		}
	}
	r.st.saleItems[it.SaleID] = kept
	return nil
}

func (r saleRepo) UpdateTotals(_ context.Context, sale *entity.Sale) error {
	s, ok := r.st.sales[sale.ID]
	if !ok {
		return domain.ErrSaleNotFound
	}
	s.Subtotal = sale.Subtotal
	s.Tax = sale.Tax
	s.Total = sale.Total
	s.Status = sale.Status
	s.UpdatedAt = sale.UpdatedAt
	r.st.sales[sale.ID] = s
	return nil
}

type receiptRepo struct{ st *state }

func (r receiptRepo) Next(_ context.Context) (int64, error) {
	r.st.receiptSeq++
	return r.st.receiptSeq, nil
}

type movementRepo struct{ st *state }

func (r movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.st.movements = append(r.st.movements, *m)
	return nil
}

func (r movementRepo) ListBySale(_ context.Context, saleID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for i := range r.st.movements {
		if r.st.movements[i].SaleID == saleID {
			m := r.st.movements[i]
			out = append(out, &m)
		}
	}
	return out, nil
}
