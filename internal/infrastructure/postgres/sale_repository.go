package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, receipt_number, subtotal, tax, total, payment_method, paid_amount, change_amount, status, user_id, created_at, updated_at`

const saleItemColumns = `id, sale_id, product_id, product_name, quantity_kind, quantity, original_quantity, unit_price, unit_cost, subtotal`

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.ReceiptNumber, s.Subtotal, s.Tax, s.Total, s.PaymentMethod,
		s.PaidAmount, s.Change, s.Status, nullable(s.UserID), s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `INSERT INTO sale_items (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SaleID, it.ProductID, it.ProductName, it.QuantityKind,
		it.Quantity, it.OriginalQuantity, it.UnitPrice, it.UnitCost, it.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta. Devuelve (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getSale(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id)
}

// GetByIDForUpdate obtiene la venta bloqueando su fila (SELECT FOR UPDATE).
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	return r.getSale(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1 FOR UPDATE`, id)
}

func (r *SaleRepo) getSale(ctx context.Context, query, id string) (*entity.Sale, error) {
	var s entity.Sale
	var userID *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.ReceiptNumber, &s.Subtotal, &s.Tax, &s.Total, &s.PaymentMethod,
		&s.PaidAmount, &s.Change, &s.Status, &userID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	if userID != nil {
		s.UserID = *userID
	}
	return &s, nil
}

// ListItems devuelve las líneas vigentes de la venta.
func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	return r.listItems(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY position`, saleID)
}

// ListItemsForUpdate devuelve las líneas vigentes bloqueándolas.
func (r *SaleRepo) ListItemsForUpdate(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	return r.listItems(ctx, `SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY position FOR UPDATE`, saleID)
}

func (r *SaleRepo) listItems(ctx context.Context, query, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(
			&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.QuantityKind,
			&it.Quantity, &it.OriginalQuantity, &it.UnitPrice, &it.UnitCost, &it.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateItemQuantity reescribe cantidad y subtotal de una línea tras una devolución parcial.
func (r *SaleRepo) UpdateItemQuantity(ctx context.Context, itemID string, quantity, subtotal decimal.Decimal) error {
	query := `UPDATE sale_items SET quantity = $2, subtotal = $3 WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, itemID, quantity, subtotal)
	if err != nil {
		return fmt.Errorf("update sale item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleItemNotFound
	}
	return nil
}

// DeleteItem elimina una línea devuelta por completo.
func (r *SaleRepo) DeleteItem(ctx context.Context, itemID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM sale_items WHERE id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("delete sale item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleItemNotFound
	}
	return nil
}

// UpdateTotals persiste subtotal, impuesto, total y estado.
func (r *SaleRepo) UpdateTotals(ctx context.Context, s *entity.Sale) error {
	query := `
		UPDATE sales SET subtotal = $2, tax = $3, total = $4, status = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Subtotal, s.Tax, s.Total, s.Status, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}
	return nil
}
