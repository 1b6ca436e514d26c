package sales

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
)

// RefundSaleUseCase anula total o parcialmente las líneas de una venta.
type RefundSaleUseCase struct {
	tx      TxRunner
	ledger  *StockLedger
	taxRate decimal.Decimal
	log     zerolog.Logger
	now     func() time.Time
}

// NewRefundSaleUseCase construye el caso de uso.
func NewRefundSaleUseCase(tx TxRunner, ledger *StockLedger, taxRate decimal.Decimal, log zerolog.Logger) *RefundSaleUseCase {
	return &RefundSaleUseCase{tx: tx, ledger: ledger, taxRate: taxRate, log: log, now: time.Now}
}

type plannedReturn struct {
	item *entity.SaleItem
	ret  domainsales.ReturnedLine
}

// Execute devuelve las cantidades pedidas por línea (id de línea -> cantidad).
// Las cantidades <= 0 se ignoran; si no queda ninguna retorna ErrNoItemsSelected sin tocar nada.
// Una cantidad mayor a la vigente se acota a la vigente. La venta y sus líneas se leen con
// bloqueo de fila, así dos devoluciones sobre la misma venta se serializan.
func (uc *RefundSaleUseCase) Execute(ctx context.Context, saleID, userID string, in dto.RefundRequest) (*dto.RefundResponse, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	requested := make(map[string]decimal.Decimal, len(in.Items))
	for id, qty := range in.Items {
		if qty.GreaterThan(decimal.Zero) {
			requested[id] = qty
		}
	}
	if len(requested) == 0 {
		return nil, domain.ErrNoItemsSelected
	}
	ids := make([]string, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var out *dto.RefundResponse
	err := uc.tx.RunSales(ctx, func(r repository.TxRepos) error {
		sale, err := r.Sales().GetByIDForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if !sale.Refundable() {
			return domain.ErrSaleNotRefundable
		}
		items, err := r.Sales().ListItemsForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		byID := make(map[string]*entity.SaleItem, len(items))
		for _, it := range items {
			byID[it.ID] = it
		}

		// Primero se valida y calcula todo; recién después se escribe.
		plan := make([]plannedReturn, 0, len(ids))
		for _, id := range ids {
			item, ok := byID[id]
			if !ok {
				return fmt.Errorf("línea %s: %w", id, domain.ErrSaleItemNotFound)
			}
			qty, err := domainsales.NormalizeQuantity(item.QuantityKind, requested[id])
			if err != nil {
				return err
			}
			if qty.IsZero() {
				continue
			}
			plan = append(plan, plannedReturn{item: item, ret: domainsales.ApplyReturn(item, qty)})
		}
		if len(plan) == 0 {
			return domain.ErrNoItemsSelected
		}

		now := uc.now()
		refunded := decimal.Zero
		remaining := len(items)
		for _, p := range plan {
			product, err := r.Products().GetByID(ctx, p.item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.NewStockError(p.item.ProductID, domain.ErrProductNotFound)
			}
			if err := uc.ledger.Restore(ctx, r, StockChange{
				Product:  product,
				Quantity: p.ret.Quantity,
				SaleID:   sale.ID,
				UserID:   userID,
				At:       now,
			}); err != nil {
				return err
			}
			if p.ret.Delete {
				if err := r.Sales().DeleteItem(ctx, p.item.ID); err != nil {
					return err
				}
				remaining--
			} else if err := r.Sales().UpdateItemQuantity(ctx, p.item.ID, p.ret.Remaining, p.ret.NewSubtotal); err != nil {
				return err
			}
			refunded = refunded.Add(p.ret.Refunded)
		}

		outcome := domainsales.ResolveRefund(sale.Total, refunded, remaining)
		totals := domainsales.SplitTaxInclusive(outcome.Total, uc.taxRate)
		sale.Subtotal = totals.Subtotal
		sale.Tax = totals.Tax
		sale.Total = totals.Total
		sale.Status = outcome.Status
		sale.UpdatedAt = now
		if err := r.Sales().UpdateTotals(ctx, sale); err != nil {
			return err
		}

		out = &dto.RefundResponse{
			SaleID:         sale.ID,
			TotalRefunded:  refunded,
			NewTotal:       sale.Total,
			Status:         sale.Status,
			RemainingItems: remaining,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", out.SaleID).
		Str("refunded", out.TotalRefunded.String()).
		Str("new_total", out.NewTotal.String()).
		Str("status", out.Status).
		Str("user_id", userID).
		Msg("devolución registrada")
	return out, nil
}
