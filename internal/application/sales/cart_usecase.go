package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	domainsales "github.com/jhoicas/pos-api/internal/domain/sales"
)

// CartUseCase maneja el carro de una sesión de caja. Cada mutación vuelve a leer el stock vigente,
// porque otras cajas pueden haber vendido desde que el carro se mostró.
// Solo escribe en el CartStore; nunca toca stock ni ventas.
type CartUseCase struct {
	carts    repository.CartStore
	products repository.ProductRepository
	taxRate  decimal.Decimal
	now      func() time.Time
}

// NewCartUseCase construye el caso de uso.
func NewCartUseCase(carts repository.CartStore, products repository.ProductRepository, taxRate decimal.Decimal) *CartUseCase {
	return &CartUseCase{carts: carts, products: products, taxRate: taxRate, now: time.Now}
}

// Get devuelve el carro de la sesión (vacío si no existe).
func (uc *CartUseCase) Get(ctx context.Context, sessionID string) (*dto.CartResponse, error) {
	if sessionID == "" {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(cart), nil
}

// Add suma una unidad del producto. Falla con ErrOutOfStock si el stock es <= 0
// o si la cantidad del carro + 1 supera el stock.
func (uc *CartUseCase) Add(ctx context.Context, sessionID, productID string) (*dto.CartResponse, error) {
	if sessionID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.liveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart, err := uc.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	one := decimal.NewFromInt(1)
	line := cart.Line(productID)
	current := decimal.Zero
	if line != nil {
		current = line.Quantity
	}
	if product.Stock.LessThanOrEqual(decimal.Zero) || current.Add(one).GreaterThan(product.Stock) {
		return nil, domain.NewStockError(productID, domain.ErrOutOfStock)
	}

	if line == nil {
		cart.Lines = append(cart.Lines, newCartLine(product, one))
	} else {
		line.Quantity = current.Add(one)
	}
	return uc.save(ctx, cart)
}

// SetQuantity fija la cantidad de la línea acotándola a [0, stock]. Una cantidad sobre el stock
// se rebaja al stock sin error; 0 elimina la línea.
func (uc *CartUseCase) SetQuantity(ctx context.Context, sessionID, productID string, qty decimal.Decimal) (*dto.CartResponse, error) {
	if sessionID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.liveProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	qty, err = domainsales.NormalizeQuantity(product.QuantityKind, qty)
	if err != nil {
		return nil, err
	}
	stock := product.Stock
	if !product.IsBulk() {
		stock = stock.Floor()
	}
	qty = domainsales.ClampToStock(qty, stock)

	cart, err := uc.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	switch line := cart.Line(productID); {
	case qty.IsZero():
		cart.Remove(productID)
	case line == nil:
		cart.Lines = append(cart.Lines, newCartLine(product, qty))
	default:
		line.Quantity = qty
	}
	return uc.save(ctx, cart)
}

// Remove quita el producto del carro.
func (uc *CartUseCase) Remove(ctx context.Context, sessionID, productID string) (*dto.CartResponse, error) {
	if sessionID == "" || productID == "" {
		return nil, domain.ErrInvalidInput
	}
	cart, err := uc.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Remove(productID)
	return uc.save(ctx, cart)
}

// Clear vacía el carro de la sesión.
func (uc *CartUseCase) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return domain.ErrInvalidInput
	}
	return uc.carts.Delete(ctx, sessionID)
}

func (uc *CartUseCase) liveProduct(ctx context.Context, productID string) (*entity.Product, error) {
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Archived {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

func (uc *CartUseCase) save(ctx context.Context, cart *entity.Cart) (*dto.CartResponse, error) {
	cart.UpdatedAt = uc.now()
	if err := uc.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return uc.toResponse(cart), nil
}

func (uc *CartUseCase) toResponse(cart *entity.Cart) *dto.CartResponse {
	totals := domainsales.SplitTaxInclusive(cart.Total(), uc.taxRate)
	resp := &dto.CartResponse{
		Lines:    make([]dto.CartLineResponse, 0, len(cart.Lines)),
		Subtotal: totals.Subtotal,
		Tax:      totals.Tax,
		Total:    totals.Total,
	}
	for _, l := range cart.Lines {
		resp.Lines = append(resp.Lines, dto.CartLineResponse{
			ProductID:    l.ProductID,
			Name:         l.Name,
			QuantityKind: l.QuantityKind,
			Quantity:     l.Quantity,
			UnitPrice:    l.UnitPrice,
			Subtotal:     l.Subtotal(),
		})
	}
	return resp
}

func newCartLine(p *entity.Product, qty decimal.Decimal) entity.CartLine {
	kind := p.QuantityKind
	if kind == "" {
		kind = entity.QuantityKindUnit
	}
	return entity.CartLine{
		ProductID:    p.ID,
		Name:         p.Name,
		QuantityKind: kind,
		Quantity:     qty,
		UnitPrice:    p.Price,
	}
}
