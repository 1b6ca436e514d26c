package repository

import (
	"context"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CartStore guarda el carro de cada sesión de caja bajo su clave.
// Get devuelve un carro vacío si la sesión no tiene uno.
type CartStore interface {
	Get(ctx context.Context, sessionID string) (*entity.Cart, error)
	Save(ctx context.Context, cart *entity.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
