package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
)

// StockLedger aplica salidas y reingresos de stock dentro de la transacción del caller,
// propagando a los componentes de los packs y registrando cada movimiento.
type StockLedger struct {
	resolver *BundleResolver
	// strictComponents exige stock suficiente también en los componentes de un pack.
	// Por defecto los componentes pueden quedar negativos (el stock del pack se lleva aparte).
	strictComponents bool
	log              zerolog.Logger
}

// NewStockLedger construye el servicio.
func NewStockLedger(resolver *BundleResolver, strictComponents bool, log zerolog.Logger) *StockLedger {
	return &StockLedger{resolver: resolver, strictComponents: strictComponents, log: log}
}

// StockChange describe un movimiento de stock de una venta.
type StockChange struct {
	Product  *entity.Product
	Quantity decimal.Decimal
	SaleID   string
	UserID   string
	At       time.Time
}

// Withdraw descuenta el stock vendido con una actualización condicional atómica.
// Si no alcanza retorna *domain.StockError con ErrInsufficientStock; el caller hace rollback.
func (l *StockLedger) Withdraw(ctx context.Context, r repository.TxRepos, ch StockChange) error {
	ok, err := r.Stock().DecrementIfSufficient(ctx, ch.Product.ID, ch.Quantity)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewStockError(ch.Product.ID, domain.ErrInsufficientStock)
	}
	if err := l.record(ctx, r, ch, ch.Product.ID, "", ch.Quantity.Neg(), entity.MovementTypeSale); err != nil {
		return err
	}

	components, err := l.resolver.Resolve(ctx, r.Bundles(), ch.Product)
	if err != nil {
		return err
	}
	for _, c := range components {
		qty := domainsales.ComponentQuantity(c.Quantity, ch.Quantity)
		if l.strictComponents {
			ok, err := r.Stock().DecrementIfSufficient(ctx, c.ComponentID, qty)
			if err != nil {
				return err
			}
			if !ok {
				return domain.NewStockError(c.ComponentID, domain.ErrInsufficientStock)
			}
		} else {
			left, err := r.Stock().Decrement(ctx, c.ComponentID, qty)
			if err != nil {
				return err
			}
			if left.LessThan(decimal.Zero) {
				l.log.Warn().
					Str("bundle_id", ch.Product.ID).
					Str("component_id", c.ComponentID).
					Str("stock", left.String()).
					Msg("componente de pack con stock negativo")
			}
		}
		if err := l.record(ctx, r, ch, c.ComponentID, ch.Product.ID, qty.Neg(), entity.MovementTypeSale); err != nil {
			return err
		}
	}
	return nil
}

// Restore reingresa el stock devuelto, incluidos los componentes del pack.
func (l *StockLedger) Restore(ctx context.Context, r repository.TxRepos, ch StockChange) error {
	if err := r.Stock().Increment(ctx, ch.Product.ID, ch.Quantity); err != nil {
		return err
	}
	if err := l.record(ctx, r, ch, ch.Product.ID, "", ch.Quantity, entity.MovementTypeRefund); err != nil {
		return err
	}

	components, err := l.resolver.Resolve(ctx, r.Bundles(), ch.Product)
	if err != nil {
		return err
	}
	for _, c := range components {
		qty := domainsales.ComponentQuantity(c.Quantity, ch.Quantity)
		if err := r.Stock().Increment(ctx, c.ComponentID, qty); err != nil {
			return err
		}
		if err := l.record(ctx, r, ch, c.ComponentID, ch.Product.ID, qty, entity.MovementTypeRefund); err != nil {
			return err
		}
	}
	return nil
}

func (l *StockLedger) record(ctx context.Context, r repository.TxRepos, ch StockChange, productID, bundleID string, qty decimal.Decimal, movType string) error {
	return r.Movements().Create(ctx, &entity.StockMovement{
		ID:        uuid.New().String(),
		SaleID:    ch.SaleID,
		ProductID: productID,
		BundleID:  bundleID,
		Type:      movType,
		Quantity:  qty,
		CreatedAt: ch.At,
		CreatedBy: ch.UserID,
	})
}
