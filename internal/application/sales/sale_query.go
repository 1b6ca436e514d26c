package sales

import (
	"context"
	"time"

	"github.com/jhoicas/pos-api/internal/application/dto"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// SaleQueryUseCase consultas de solo lectura sobre ventas.
type SaleQueryUseCase struct {
	sales     repository.SaleRepository
	movements repository.StockMovementRepository
}

// NewSaleQueryUseCase construye el caso de uso.
func NewSaleQueryUseCase(sales repository.SaleRepository, movements repository.StockMovementRepository) *SaleQueryUseCase {
	return &SaleQueryUseCase{sales: sales, movements: movements}
}

// GetByID devuelve la venta con sus líneas vigentes.
func (uc *SaleQueryUseCase) GetByID(ctx context.Context, saleID string) (*dto.SaleResponse, error) {
	sale, items, err := uc.load(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, items), nil
}

// ListMovements devuelve los movimientos de stock generados por la venta y sus devoluciones.
func (uc *SaleQueryUseCase) ListMovements(ctx context.Context, saleID string) ([]dto.StockMovementResponse, error) {
	if _, _, err := uc.load(ctx, saleID); err != nil {
		return nil, err
	}
	list, err := uc.movements.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:        m.ID,
			ProductID: m.ProductID,
			BundleID:  m.BundleID,
			Type:      m.Type,
			Quantity:  m.Quantity,
			CreatedAt: m.CreatedAt.Format(time.RFC3339),
		})
	}
	return out, nil
}

func (uc *SaleQueryUseCase) load(ctx context.Context, saleID string) (*entity.Sale, []*entity.SaleItem, error) {
	if saleID == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil {
		return nil, nil, domain.ErrSaleNotFound
	}
	items, err := uc.sales.ListItems(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

func toSaleResponse(sale *entity.Sale, items []*entity.SaleItem) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            sale.ID,
		ReceiptNumber: sale.ReceiptNumber,
		Subtotal:      sale.Subtotal,
		Tax:           sale.Tax,
		Total:         sale.Total,
		PaymentMethod: sale.PaymentMethod,
		PaidAmount:    sale.PaidAmount,
		Change:        sale.Change,
		Status:        sale.Status,
		CreatedAt:     sale.CreatedAt.Format(time.RFC3339),
		Items:         make([]dto.SaleItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			ProductName:      it.ProductName,
			QuantityKind:     it.QuantityKind,
			Quantity:         it.Quantity,
			OriginalQuantity: it.OriginalQuantity,
			UnitPrice:        it.UnitPrice,
			Subtotal:         it.Subtotal,
		})
	}
	return resp
}
