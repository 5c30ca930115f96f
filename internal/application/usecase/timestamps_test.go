package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Los instantes devueltos al crear tienen que ser los mismos que se leen después:
// UTC y a microsegundos, como los guarda TIMESTAMPTZ.
func assertStoredInstant(t *testing.T, created, read time.Time) {
	t.Helper()
	assert.Equal(t, created, read)
	assert.Equal(t, time.UTC, created.Location())
	assert.Equal(t, created, created.Truncate(time.Microsecond))
}

func TestCustomerUseCase_CreateCoincideConGetByID(t *testing.T) {
	store := memory.NewStore()
	uc := NewCustomerUseCase(store.Customers())

	created, err := uc.Create(context.Background(), "user-1", dto.CreateCustomerRequest{Name: "Lucía Gómez", Email: "lucia@example.com"})
	require.NoError(t, err)
	read, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, read)

	assert.Equal(t, created.Email, read.Email)
	assertStoredInstant(t, created.CreatedAt, read.CreatedAt)
	assertStoredInstant(t, created.UpdatedAt, read.UpdatedAt)
}

func TestProductUseCase_CreateCoincideConGetByID(t *testing.T) {
	store := memory.NewStore()
	uc := NewProductUseCase(store.Products())

	created, err := uc.Create(context.Background(), "user-1", dto.CreateProductRequest{
		Name: "Crema hidratante", SKU: "CR-01", Price: decimal.RequireFromString("45000"), Stock: 3,
		Images: []string{"https://cdn.example.com/cr-01.png"},
	})
	require.NoError(t, err)
	read, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, read)

	assert.Equal(t, created.SKU, read.SKU)
	assert.Equal(t, created.Images, read.Images)
	assertStoredInstant(t, created.CreatedAt, read.CreatedAt)
	assertStoredInstant(t, created.UpdatedAt, read.UpdatedAt)
}

func TestLeadUseCase_CreateCoincideConGetByID(t *testing.T) {
	store := memory.NewStore()
	uc := NewLeadUseCase(store.Leads())

	created, err := uc.Create(context.Background(), "user-1", dto.CreateLeadRequest{Name: "Pedro Ruiz", Email: "pedro@example.com"})
	require.NoError(t, err)
	read, err := uc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, read)

	assert.Equal(t, created.Status, read.Status)
	assertStoredInstant(t, created.CreatedAt, read.CreatedAt)
	assertStoredInstant(t, created.UpdatedAt, read.UpdatedAt)
}
