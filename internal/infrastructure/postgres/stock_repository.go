package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
// Cada operación es un único UPDATE; la condición de stock suficiente va en el WHERE.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// DecrementIfSufficient resta qty solo si el stock alcanza.
func (r *StockRepo) DecrementIfSufficient(ctx context.Context, productID string, qty decimal.Decimal) (bool, error) {
	query := `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1 AND stock >= $2`
	tag, err := r.q.Exec(ctx, query, productID, qty)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}
	exists, err := r.exists(ctx, productID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrProductNotFound
	}
	return false, nil
}

// Decrement resta qty sin condición y devuelve el stock resultante.
func (r *StockRepo) Decrement(ctx context.Context, productID string, qty decimal.Decimal) (decimal.Decimal, error) {
	query := `
		UPDATE products SET stock = stock - $2, updated_at = now()
		WHERE id = $1
		RETURNING stock`
	var left decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, qty).Scan(&left); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, domain.ErrProductNotFound
		}
		return decimal.Zero, fmt.Errorf("decrement stock: %w", err)
	}
	return left, nil
}

// Increment suma qty al stock.
func (r *StockRepo) Increment(ctx context.Context, productID string, qty decimal.Decimal) error {
	query := `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, productID, qty)
	if err != nil {
		return fmt.Errorf("increment stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *StockRepo) exists(ctx context.Context, productID string) (bool, error) {
	var ok bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, productID).Scan(&ok); err != nil {
		return false, fmt.Errorf("check product: %w", err)
	}
	return ok, nil
}
