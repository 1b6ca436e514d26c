package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
)

// FinalizeSaleUseCase convierte el carro de una sesión en una venta persistida.
type FinalizeSaleUseCase struct {
	carts   repository.CartStore
	tx      TxRunner
	ledger  *StockLedger
	taxRate decimal.Decimal
	log     zerolog.Logger
	now     func() time.Time
}

// NewFinalizeSaleUseCase construye el caso de uso.
func NewFinalizeSaleUseCase(carts repository.CartStore, tx TxRunner, ledger *StockLedger, taxRate decimal.Decimal, log zerolog.Logger) *FinalizeSaleUseCase {
	return &FinalizeSaleUseCase{carts: carts, tx: tx, ledger: ledger, taxRate: taxRate, log: log, now: time.Now}
}

// Execute cierra la venta del carro de sessionID.
// Todas las validaciones se hacen antes de abrir la transacción. Dentro de ella se asigna el
// número de boleta, se inserta la venta con sus líneas y se descuenta el stock; cualquier error
// hace rollback completo y deja el carro intacto. El carro se vacía solo después del commit.
func (uc *FinalizeSaleUseCase) Execute(ctx context.Context, sessionID, userID string, in dto.FinalizeSaleRequest) (*dto.FinalizeSaleResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, domain.ErrEmptyCart
	}

	totals := domainsales.SplitTaxInclusive(cart.Total(), uc.taxRate)
	paid := totals.Total
	change := decimal.Zero
	if in.PaymentMethod == entity.PaymentCash {
		if in.PaidAmount == nil || in.PaidAmount.LessThan(totals.Total) {
			return nil, domain.ErrInsufficientPayment
		}
		paid = *in.PaidAmount
		change = domainsales.Change(paid, totals.Total)
	}

	now := uc.now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		PaymentMethod: in.PaymentMethod,
		PaidAmount:    paid,
		Change:        change,
		Status:        entity.SaleStatusCompleted,
		UserID:        userID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err = uc.tx.RunSales(ctx, func(r repository.TxRepos) error {
		number, err := r.Receipts().Next(ctx)
		if err != nil {
			return err
		}
		sale.ReceiptNumber = number
		if err := r.Sales().Create(ctx, sale); err != nil {
			return err
		}
		ids := make([]string, 0, len(cart.Lines))
		for _, line := range cart.Lines {
			ids = append(ids, line.ProductID)
		}
		products, err := r.Products().GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, line := range cart.Lines {
			if err := uc.sellLine(ctx, r, sale, line, products[line.ProductID]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("session_id", sessionID).Msg("venta no finalizada, rollback")
		return nil, err
	}

	if err := uc.carts.Delete(ctx, sessionID); err != nil {
		uc.log.Warn().Err(err).Str("sale_id", sale.ID).Msg("venta confirmada pero no se pudo vaciar el carro")
	}
	uc.log.Info().
		Str("sale_id", sale.ID).
		Int64("receipt_number", sale.ReceiptNumber).
		Str("total", sale.Total.String()).
		Str("payment_method", sale.PaymentMethod).
		Msg("venta finalizada")

	return &dto.FinalizeSaleResponse{
		SaleID:        sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaidAmount:    sale.PaidAmount,
		Change:        sale.Change,
		Status:        sale.Status,
	}, nil
}

// sellLine registra una línea y descuenta su stock. product es nil si ya no existe.
func (uc *FinalizeSaleUseCase) sellLine(ctx context.Context, r repository.TxRepos, sale *entity.Sale, line entity.CartLine, product *entity.Product) error {
	if product == nil || product.Archived {
		return domain.NewStockError(line.ProductID, domain.ErrProductNotFound)
	}
	qty, err := domainsales.NormalizeQuantity(product.QuantityKind, line.Quantity)
	if err != nil {
		return err
	}
	if qty.LessThanOrEqual(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	item := &entity.SaleItem{
		ID:               uuid.New().String(),
		SaleID:           sale.ID,
		ProductID:        product.ID,
		ProductName:      line.Name,
		QuantityKind:     line.QuantityKind,
		Quantity:         qty,
		OriginalQuantity: qty,
		UnitPrice:        line.UnitPrice,
		UnitCost:         product.Cost,
		Subtotal:         domainsales.LineSubtotal(line.UnitPrice, qty),
	}
	if err := r.Sales().CreateItem(ctx, item); err != nil {
		return err
	}
	return uc.ledger.Withdraw(ctx, r, StockChange{
		Product:  product,
		Quantity: qty,
		SaleID:   sale.ID,
		UserID:   sale.UserID,
		At:       sale.CreatedAt,
	})
}
