package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ repository.BundleRepository = (*BundleRepo)(nil)

// BundleRepo lee la composición de los packs.
type BundleRepo struct {
	q Querier
}

// NewBundleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBundleRepository(q Querier) *BundleRepo {
	return &BundleRepo{q: q}
}

// ListComponents devuelve los componentes del pack ordenados por posición.
func (r *BundleRepo) ListComponents(ctx context.Context, bundleID string) ([]entity.BundleComponent, error) {
	query := `
		SELECT bundle_id, component_id, quantity, price, position
		FROM bundle_components WHERE bundle_id = $1
		ORDER BY position, component_id`
	rows, err := r.q.Query(ctx, query, bundleID)
	if err != nil {
		return nil, fmt.Errorf("list bundle components: %w", err)
	}
	defer rows.Close()

	var list []entity.BundleComponent
	for rows.Next() {
		var c entity.BundleComponent
		if err := rows.Scan(&c.BundleID, &c.ComponentID, &c.Quantity, &c.Price, &c.Position); err != nil {
			return nil, fmt.Errorf("scan bundle component: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}
