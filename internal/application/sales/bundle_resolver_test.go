package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/domain"
	"github.com/jhoicas/pos-api/internal/domain/entity"
)

type mockBundleRepo struct{ mock.Mock }

func (m *mockBundleRepo) ListComponents(ctx context.Context, bundleID string) ([]entity.BundleComponent, error) {
	args := m.Called(ctx, bundleID)
	list, _ := args.Get(0).([]entity.BundleComponent)
	return list, args.Error(1)
}

func TestBundleResolver_ProductoSimpleNoConsulta(t *testing.T) {
	repo := new(mockBundleRepo)

	got, err := sales.NewBundleResolver().Resolve(context.Background(), repo, &entity.Product{ID: "A"})

	require.NoError(t, err)
	assert.Nil(t, got)
	repo.AssertNotCalled(t, "ListComponents", mock.Anything, mock.Anything)
}

func TestBundleResolver_DevuelveComponentes(t *testing.T) {
	repo := new(mockBundleRepo)
	components := []entity.BundleComponent{
		{BundleID: "B", ComponentID: "C", Quantity: 2, Position: 1},
		{BundleID: "B", ComponentID: "D", Quantity: 1, Position: 2},
	}
	repo.On("ListComponents", mock.Anything, "B").Return(components, nil)

	got, err := sales.NewBundleResolver().Resolve(context.Background(), repo, &entity.Product{ID: "B", IsBundle: true})

	require.NoError(t, err)
	assert.Equal(t, components, got)
	repo.AssertExpectations(t)
}

func TestBundleResolver_ComponenteInvalido(t *testing.T) {
	for name, c := range map[string]entity.BundleComponent{
		"cantidad cero":   {ComponentID: "C", Quantity: 0},
		"sin componente":  {ComponentID: "", Quantity: 1},
		"se contiene a sí": {ComponentID: "B", Quantity: 1},
	} {
		t.Run(name, func(t *testing.T) {
			repo := new(mockBundleRepo)
			repo.On("ListComponents", mock.Anything, "B").Return([]entity.BundleComponent{c}, nil)

			_, err := sales.NewBundleResolver().Resolve(context.Background(), repo, &entity.Product{ID: "B", IsBundle: true})

			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}
