package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// BundleRepository expone la composición de los packs (solo lectura).
type BundleRepository interface {
	// ListComponents devuelve los componentes del pack ordenados por posición.
	ListComponents(ctx context.Context, bundleID string) ([]entity.BundleComponent, error)
}
