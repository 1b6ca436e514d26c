package repository

import "context"

// ReceiptSequenceRepository entrega el correlativo de boletas.
// Next incrementa atómicamente una única fila contador (nunca max()+1).
type ReceiptSequenceRepository interface {
	Next(ctx context.Context) (int64, error)
}
