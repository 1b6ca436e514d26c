package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/pos-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isSerializationFailure detecta conflictos de transacciones serializables (40001) y deadlocks (40P01).
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}

var domainErrors = []error{
	domain.ErrInvalidInput,
	domain.ErrConflict,
	domain.ErrInsufficientStock,
	domain.ErrOutOfStock,
	domain.ErrProductNotFound,
	domain.ErrEmptyCart,
	domain.ErrInsufficientPayment,
	domain.ErrSaleNotFound,
	domain.ErrSaleItemNotFound,
	domain.ErrNoItemsSelected,
	domain.ErrSaleNotRefundable,
	domain.ErrStorage,
}

// storageError deja pasar los errores de negocio y envuelve todo lo demás en domain.ErrStorage
// (conflictos de serialización, timeouts, conexiones caídas), que el caller puede reintentar.
func storageError(op string, err error) error {
	for _, de := range domainErrors {
		if errors.Is(err, de) {
			return err
		}
	}
	switch {
	case isSerializationFailure(err):
		return fmt.Errorf("%s: conflicto de serialización: %w: %w", op, domain.ErrStorage, err)
	case errors.Is(err, context.DeadlineExceeded), pgconn.Timeout(err):
		return fmt.Errorf("%s: timeout de transacción: %w: %w", op, domain.ErrStorage, err)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
