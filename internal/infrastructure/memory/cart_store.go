package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-api/internal/domain/entity"
)

// CartStore guarda los carros por sesión en memoria del proceso.
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]entity.Cart
}

// NewCartStore crea el almacén.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]entity.Cart)}
}

func (c *CartStore) Get(_ context.Context, sessionID string) (*entity.Cart, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cart, ok := c.carts[sessionID]
	if !ok {
		return &entity.Cart{SessionID: sessionID}, nil
	}
	cart.Lines = append([]entity.CartLine(nil), cart.Lines...)
	return &cart, nil
}

func (c *CartStore) Save(_ context.Context, cart *entity.Cart) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *cart
	cp.Lines = append([]entity.CartLine(nil), cart.Lines...)
	c.carts[cart.SessionID] = cp
	return nil
}

func (c *CartStore) Delete(_ context.Context, sessionID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.carts, sessionID)
	return nil
}
