package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// BundleResolver descompone un pack en sus componentes.
type BundleResolver struct{}

// NewBundleResolver construye el resolver.
func NewBundleResolver() *BundleResolver { return &BundleResolver{} }

// Resolve devuelve los componentes (en orden) del producto si es pack, o nil si no lo es.
// Un componente con cantidad <= 0 se considera dato corrupto del catálogo.
func (b *BundleResolver) Resolve(ctx context.Context, bundles repository.BundleRepository, product *entity.Product) ([]entity.BundleComponent, error) {
	if product == nil || !product.IsBundle {
		return nil, nil
	}
	components, err := bundles.ListComponents(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	for _, c := range components {
		if c.Quantity <= 0 || c.ComponentID == "" || c.ComponentID == product.ID {
			return nil, fmt.Errorf("pack %s con componente inválido %q: %w", product.ID, c.ComponentID, domain.ErrInvalidInput)
		}
	}
	return components, nil
}
