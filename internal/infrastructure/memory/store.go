// Package memory implementa los repositorios del núcleo de ventas en memoria.
// Se usa en desarrollo cuando no hay DATABASE_URL y en los tests de los casos de uso.
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Store guarda productos, packs, ventas y movimientos.
// RunSales trabaja sobre una copia del estado y la publica solo si fn no falla,
// con lo que un error deja el estado exactamente como estaba.
type Store struct {
	mu        sync.Mutex
	state     *state
	txTimeout time.Duration
}

type state struct {
	products   map[string]entity.Product
	bundles    map[string][]entity.BundleComponent
	sales      map[string]entity.Sale
	items      map[string]entity.SaleItem
	saleItems  map[string][]string // saleID -> ids de línea en orden de inserción
	receiptSeq int64
	movements  []entity.StockMovement
}

// NewStore crea un store vacío. txTimeout <= 0 deja solo el deadline del ctx del caller.
func NewStore(txTimeout time.Duration) *Store {
	return &Store{txTimeout: txTimeout, state: &state{
		products:  make(map[string]entity.Product),
		bundles:   make(map[string][]entity.BundleComponent),
		sales:     make(map[string]entity.Sale),
		items:     make(map[string]entity.SaleItem),
		saleItems: make(map[string][]string),
	}}
}

func (st *state) clone() *state {
	c := &state{
		products:   make(map[string]entity.Product, len(st.products)),
		bundles:    make(map[string][]entity.BundleComponent, len(st.bundles)),
		sales:      make(map[string]entity.Sale, len(st.sales)),
		items:      make(map[string]entity.SaleItem, len(st.items)),
		saleItems:  make(map[string][]string, len(st.saleItems)),
		receiptSeq: st.receiptSeq,
		movements:  append([]entity.StockMovement(nil), st.movements...),
	}
	for k, v := range st.products {
		c.products[k] = v
	}
	for k, v := range st.bundles {
		c.bundles[k] = append([]entity.BundleComponent(nil), v...)
	}
	for k, v := range st.sales {
		c.sales[k] = v
	}
	for k, v := range st.items {
		c.items[k] = v
	}
	for k, v := range st.saleItems {
		c.saleItems[k] = append([]string(nil), v...)
	}
	return c
}

// RunSales ejecuta fn de forma serializada sobre una copia del estado.
// El timeout corre desde antes de tomar el lock, igual que una tx que espera conexión.
// Si vence antes del final de fn, el resultado se descarta como domain.ErrStorage.
func (s *Store) RunSales(ctx context.Context, fn func(r repository.TxRepos) error) error {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("begin transaction: %w: %w", domain.ErrStorage, err)
	}
	work := s.state.clone()
	if err := fn(txRepos{st: work}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("commit transaction: timeout de transacción: %w: %w", domain.ErrStorage, err)
	}
	s.state = work
	return nil
}

// PutProduct crea o reemplaza un producto (carga de catálogo y tests).
func (s *Store) PutProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.products[p.ID] = p
}

// PutBundle define los componentes de un pack.
func (s *Store) PutBundle(bundleID string, components []entity.BundleComponent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.bundles[bundleID] = append([]entity.BundleComponent(nil), components...)
}

// Product devuelve una copia del producto.
func (s *Store) Product(id string) (entity.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.products[id]
	return p, ok
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() repository.ProductRepository { return lockedProducts{s: s} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() repository.SaleRepository { return lockedSales{s: s} }

// Movements diario de movimientos fuera de transacción.
func (s *Store) Movements() repository.StockMovementRepository { return lockedMovements{s: s} }

type txRepos struct{ st *state }

func (t txRepos) Products() repository.ProductRepository         { return productRepo{st: t.st} }
func (t txRepos) Bundles() repository.BundleRepository           { return bundleRepo{st: t.st} }
func (t txRepos) Stock() repository.StockRepository              { return stockRepo{st: t.st} }
func (t txRepos) Sales() repository.SaleRepository               { return saleRepo{st: t.st} }
func (t txRepos) Receipts() repository.ReceiptSequenceRepository { return receiptRepo{st: t.st} }
func (t txRepos) Movements() repository.StockMovementRepository  { return movementRepo{st: t.st} }
