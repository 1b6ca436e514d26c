package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain"
)

func TestStorageError_ErroresDeNegocioPasanSinEnvolver(t *testing.T) {
	se := domain.NewStockError("p1", domain.ErrInsufficientStock)

	err := storageError("sales transaction", se)

	assert.Same(t, se, err)
	assert.False(t, errors.Is(err, domain.ErrStorage))
}

func TestStorageError_ConflictoDeSerializacion(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}

	err := storageError("commit transaction", fmt.Errorf("insert sale: %w", pgErr))

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.True(t, isSerializationFailure(err))
}

func TestStorageError_Timeout(t *testing.T) {
	err := storageError("sales transaction", fmt.Errorf("decrement stock: %w", context.DeadlineExceeded))

	assert.ErrorIs(t, err, domain.ErrStorage)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Contains(t, err.Error(), "timeout")
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestNullable(t *testing.T) {
	assert.Nil(t, nullable(""))
	assert.Equal(t, "x", *nullable("x"))
}
