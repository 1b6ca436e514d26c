package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL serializable con timeout.
type TxRunner struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

// NewTxRunner construye el runner con el pool. timeout <= 0 deja solo el deadline del ctx del caller.
func NewTxRunner(pool *pgxpool.Pool, timeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, timeout: timeout}
}

// RunSales inicia una transacción serializable, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// Un vencimiento del timeout cancela la tx (rollback automático) y se devuelve como domain.ErrStorage.
func (r *TxRunner) RunSales(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return storageError("begin transaction", err)
	}
	defer func() { _ = tx.Rollback(context.WithoutCancel(ctx)) }()

	if err := fn(NewTxRepos(tx)); err != nil {
		return storageError("sales transaction", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return storageError("commit transaction", err)
	}
	return nil
}

// TxRepos repositorios del núcleo de ventas sobre un mismo Querier.
type TxRepos struct {
	products  *ProductRepo
	bundles   *BundleRepo
	stock     *StockRepo
	sales     *SaleRepo
	receipts  *ReceiptSequenceRepo
	movements *StockMovementRepo
}

// NewTxRepos arma los repositorios sobre q (pool o tx).
func NewTxRepos(q Querier) *TxRepos {
	return &TxRepos{
		products:  NewProductRepository(q),
		bundles:   NewBundleRepository(q),
		stock:     NewStockRepository(q),
		sales:     NewSaleRepository(q),
		receipts:  NewReceiptSequenceRepository(q),
		movements: NewStockMovementRepository(q),
	}
}

func (t *TxRepos) Products() repository.ProductRepository         { return t.products }
func (t *TxRepos) Bundles() repository.BundleRepository           { return t.bundles }
func (t *TxRepos) Stock() repository.StockRepository              { return t.stock }
func (t *TxRepos) Sales() repository.SaleRepository               { return t.sales }
func (t *TxRepos) Receipts() repository.ReceiptSequenceRepository { return t.receipts }
func (t *TxRepos) Movements() repository.StockMovementRepository  { return t.movements }
