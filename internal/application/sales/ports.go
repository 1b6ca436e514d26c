package sales

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una única transacción serializable con repositorios atados a ella.
// Si fn retorna error se hace rollback completo; las fallas de almacenamiento se devuelven envueltas en domain.ErrStorage.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(r repository.TxRepos) error) error
}

// ReceiptPDFGenerator genera el ticket PDF de una venta.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, header ReceiptHeader, sale *entity.Sale, items []*entity.SaleItem) ([]byte, error)
}

// ReceiptHeader datos del local impresos en el ticket.
type ReceiptHeader struct {
	StoreName string
	TaxID     string
	Address   string
}
