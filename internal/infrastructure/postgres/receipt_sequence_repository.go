package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.ReceiptSequenceRepository = (*ReceiptSequenceRepo)(nil)

// ReceiptSequenceRepo correlativo de boletas sobre una única fila contador.
// El UPDATE toma el lock de la fila, así dos ventas concurrentes nunca obtienen el mismo número.
type ReceiptSequenceRepo struct {
	q Querier
}

// NewReceiptSequenceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReceiptSequenceRepository(q Querier) *ReceiptSequenceRepo {
	return &ReceiptSequenceRepo{q: q}
}

// Next incrementa el contador y devuelve el nuevo valor.
func (r *ReceiptSequenceRepo) Next(ctx context.Context) (int64, error) {
	query := `UPDATE receipt_sequence SET last_value = last_value + 1 WHERE id = 1 RETURNING last_value`
	var n int64
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("receipt_sequence sin fila inicial")
		}
		return 0, fmt.Errorf("next receipt number: %w", err)
	}
	return n, nil
}
