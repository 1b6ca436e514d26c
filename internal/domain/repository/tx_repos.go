package repository

// TxRepos agrupa los repositorios atados a una misma transacción.
type TxRepos interface {
	Products() ProductRepository
	Bundles() BundleRepository
	Stock() StockRepository
	Sales() SaleRepository
	Receipts() ReceiptSequenceRepository
	Movements() StockMovementRepository
}
