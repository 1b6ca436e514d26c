package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// ReceiptPDFUseCase arma el ticket imprimible de una venta.
type ReceiptPDFUseCase struct {
	sales  repository.SaleRepository
	pdf    ReceiptPDFGenerator
	header ReceiptHeader
}

// NewReceiptPDFUseCase construye el caso de uso.
func NewReceiptPDFUseCase(sales repository.SaleRepository, pdf ReceiptPDFGenerator, header ReceiptHeader) *ReceiptPDFUseCase {
	return &ReceiptPDFUseCase{sales: sales, pdf: pdf, header: header}
}

// Generate devuelve el PDF del ticket con las líneas vigentes de la venta.
func (uc *ReceiptPDFUseCase) Generate(ctx context.Context, saleID string) ([]byte, error) {
	if saleID == "" {
		return nil, domain.ErrInvalidInput
	}
	sale, err := uc.sales.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	items, err := uc.sales.ListItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateReceiptPDF(ctx, uc.header, sale, items)
}
