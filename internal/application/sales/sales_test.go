package sales_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/sales"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/jhoicas/crm-api/pkg/validate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type fakeIdem struct {
	mu       sync.Mutex
	keys     map[string]bool
	released []string
	err      error
}

func newFakeIdem() *fakeIdem { return &fakeIdem{keys: map[string]bool{}} }

func (f *fakeIdem) Acquire(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return false, f.err
	}
	if f.keys[key] {
		return false, nil
	}
	f.keys[key] = true
	return true, nil
}

func (f *fakeIdem) Release(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.keys, key)
	f.released = append(f.released, key)
	return nil
}

type fixture struct {
	store    *memory.Store
	customer *entity.Customer
	shirt    *entity.Product
	hat      *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	now := time.Now()
	c := &entity.Customer{ID: uuid.NewString(), Name: "Carlos Gómez", Email: "carlos@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Customers().Create(ctx, c))
	shirt := &entity.Product{ID: uuid.NewString(), Name: "Camiseta", Price: decimal.RequireFromString("45000"), Stock: 10, Active: true, CreatedAt: now, UpdatedAt: now}
	hat := &entity.Product{ID: uuid.NewString(), Name: "Gorra", Price: decimal.RequireFromString("25000.50"), Stock: 2, Active: true, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Products().Create(ctx, shirt))
	require.NoError(t, store.Products().Create(ctx, hat))
	return &fixture{store: store, customer: c, shirt: shirt, hat: hat}
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.Stock
}

func (f *fixture) request(lines ...dto.OrderItemRequest) dto.CreateOrderRequest {
	return dto.CreateOrderRequest{CustomerID: f.customer.ID, Items: lines}
}

// ── CreateOrder ──────────────────────────────────────────────────────────────

func TestCreateOrder_CalculaTotalYDescuentaStock(t *testing.T) {
	f := newFixture(t)
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil)

	res, err := uc.Execute(context.Background(), "user-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 2, UnitPrice: decimal.RequireFromString("40000")},
		dto.OrderItemRequest{ProductID: f.hat.ID, Quantity: 1},
	))
	require.NoError(t, err)

	assert.Regexp(t, `^ORD-\d{8}-[0-9A-F]{8}$`, res.Number)
	assert.Equal(t, entity.OrderStatusPending, res.Status)
	assert.Equal(t, entity.PaymentStatusPending, res.PaymentStatus)
	require.Len(t, res.Items, 2)
	assert.True(t, res.Items[1].UnitPrice.Equal(decimal.RequireFromString("25000.50")), "precio cero toma el del producto")
	assert.True(t, res.TotalAmount.Equal(decimal.RequireFromString("105000.50")))
	assert.Equal(t, 8, f.stock(t, f.shirt.ID))
	assert.Equal(t, 1, f.stock(t, f.hat.ID))

	c, err := f.store.Customers().GetByID(context.Background(), f.customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, c.TotalOrders)
	assert.True(t, c.TotalSpent.Equal(res.TotalAmount))
}

func TestCreateOrder_StockInsuficienteNoEscribeNada(t *testing.T) {
	f := newFixture(t)
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil)

	_, err := uc.Execute(context.Background(), "user-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 3},
		dto.OrderItemRequest{ProductID: f.hat.ID, Quantity: 5},
	))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Gorra")

	assert.Equal(t, 10, f.stock(t, f.shirt.ID), "el descuento de la primera línea se revierte")
	assert.Equal(t, 2, f.stock(t, f.hat.ID))
	list, err := f.store.Orders().List(context.Background(), repository.OrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateOrder_FalloAlGuardarLineaRevierteStock(t *testing.T) {
	f := newFixture(t)
	f.store.Fail("orders.CreateItem", errors.New("disk full"))
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil)

	_, err := uc.Execute(context.Background(), "user-1", "", f.request(
		dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1},
	))
	require.Error(t, err)
	assert.Equal(t, 10, f.stock(t, f.shirt.ID))
}

func TestCreateOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil)
	ctx := context.Background()

	t.Run("sin líneas", func(t *testing.T) {
		_, err := uc.Execute(ctx, "user-1", "", f.request())
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "items")
	})

	t.Run("cantidad cero", func(t *testing.T) {
		_, err := uc.Execute(ctx, "user-1", "", f.request(dto.OrderItemRequest{ProductID: f.shirt.ID}))
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "items[0].quantity")
	})

	t.Run("precio negativo", func(t *testing.T) {
		_, err := uc.Execute(ctx, "user-1", "", f.request(dto.OrderItemRequest{
			ProductID: f.shirt.ID, Quantity: 1, UnitPrice: decimal.NewFromInt(-1),
		}))
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "items[0].unit_price")
	})

	t.Run("cliente inexistente", func(t *testing.T) {
		in := f.request(dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1})
		in.CustomerID = uuid.NewString()
		_, err := uc.Execute(ctx, "user-1", "", in)
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "customer_id")
	})

	t.Run("producto inexistente", func(t *testing.T) {
		_, err := uc.Execute(ctx, "user-1", "", f.request(dto.OrderItemRequest{ProductID: uuid.NewString(), Quantity: 1}))
		var verrs validate.Errors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "items[0].product_id")
	})

	assert.Equal(t, 0, f.store.Calls("orders.Create"))
	assert.Equal(t, 10, f.stock(t, f.shirt.ID))
}

func TestCreateOrder_ProductoInactivo(t *testing.T) {
	f := newFixture(t)
	f.shirt.Active = false
	require.NoError(t, f.store.Products().Update(context.Background(), f.shirt))
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil)

	_, err := uc.Execute(context.Background(), "user-1", "", f.request(dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1}))
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "producto inactivo", verrs["items[0].product_id"])
}

func TestCreateOrder_Idempotencia(t *testing.T) {
	f := newFixture(t)
	idem := newFakeIdem()
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, idem, nil)
	in := f.request(dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1})

	_, err := uc.Execute(context.Background(), "user-1", "abc", in)
	require.NoError(t, err)
	_, err = uc.Execute(context.Background(), "user-1", "abc", in)
	require.ErrorIs(t, err, domain.ErrIdempotentReplay)
	assert.Equal(t, 9, f.stock(t, f.shirt.ID), "la repetición no descuenta stock")

	// La misma clave de otro usuario es independiente.
	_, err = uc.Execute(context.Background(), "user-2", "abc", in)
	require.NoError(t, err)
}

func TestCreateOrder_LiberaLaClaveSiFalla(t *testing.T) {
	f := newFixture(t)
	idem := newFakeIdem()
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, idem, nil)

	_, err := uc.Execute(context.Background(), "user-1", "k1", f.request(dto.OrderItemRequest{ProductID: f.hat.ID, Quantity: 50}))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, []string{"idem:orders:user-1:k1"}, idem.released)

	// Reintento con stock válido usando la misma clave.
	_, err = uc.Execute(context.Background(), "user-1", "k1", f.request(dto.OrderItemRequest{ProductID: f.hat.ID, Quantity: 1}))
	require.NoError(t, err)
}

func TestCreateOrder_IdempotenciaNoDisponibleNoBloquea(t *testing.T) {
	f := newFixture(t)
	idem := newFakeIdem()
	idem.err = errors.New("redis: connection refused")
	uc := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, idem, nil)

	_, err := uc.Execute(context.Background(), "user-1", "k1", f.request(dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1}))
	require.NoError(t, err)
	assert.Empty(t, idem.released)
}

// ── OrderUseCase ─────────────────────────────────────────────────────────────

func TestOrderUseCase_GetUpdateDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil).
		Execute(ctx, "user-1", "", f.request(
			dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 4},
			dto.OrderItemRequest{ProductID: f.hat.ID, Quantity: 2},
		))
	require.NoError(t, err)
	uc := sales.NewOrderUseCase(f.store.Orders(), f.store)

	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Items, 2)
	assert.Equal(t, f.shirt.ID, got.Items[0].ProductID, "las líneas conservan el orden de alta")

	shipped := entity.OrderStatusShipped
	paid := entity.PaymentStatusPaid
	upd, err := uc.Update(ctx, created.ID, dto.UpdateOrderRequest{Status: &shipped, PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, shipped, upd.Status)
	assert.Equal(t, paid, upd.PaymentStatus)
	assert.True(t, upd.TotalAmount.Equal(created.TotalAmount))
	assert.Equal(t, 6, f.stock(t, f.shirt.ID), "cambiar el estado no toca el stock")

	bad := "lost"
	_, err = uc.Update(ctx, created.ID, dto.UpdateOrderRequest{Status: &bad})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.Equal(t, 10, f.stock(t, f.shirt.ID))
	assert.Equal(t, 2, f.stock(t, f.hat.ID))

	got, err = uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)
}

func TestOrderUseCase_UpdateInexistente(t *testing.T) {
	f := newFixture(t)
	uc := sales.NewOrderUseCase(f.store.Orders(), f.store)
	notes := "x"
	res, err := uc.Update(context.Background(), uuid.NewString(), dto.UpdateOrderRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestOrderUseCase_ListFiltraPorEstado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	create := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil)
	in := f.request(dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1})
	_, err := create.Execute(ctx, "user-1", "", in)
	require.NoError(t, err)
	in.Status = entity.OrderStatusDelivered
	_, err = create.Execute(ctx, "user-1", "", in)
	require.NoError(t, err)

	uc := sales.NewOrderUseCase(f.store.Orders(), f.store)
	res, err := uc.List(ctx, dto.OrderListRequest{Status: entity.OrderStatusDelivered})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, entity.OrderStatusDelivered, res.Items[0].Status)
	assert.Equal(t, 20, res.Page.Limit)

	_, err = uc.List(ctx, dto.OrderListRequest{Status: "nope"})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
}

// ── OrderPDFUseCase ──────────────────────────────────────────────────────────

type fakePDF struct {
	order    *entity.Order
	customer *entity.Customer
}

func (g *fakePDF) GenerateOrderPDF(_ context.Context, o *entity.Order, c *entity.Customer) ([]byte, error) {
	g.order, g.customer = o, c
	return []byte("%PDF-1.4"), nil
}

func TestOrderPDF_Download(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := sales.NewCreateOrderUseCase(f.store.Customers(), f.store, nil, nil).
		Execute(ctx, "user-1", "", f.request(dto.OrderItemRequest{ProductID: f.shirt.ID, Quantity: 1}))
	require.NoError(t, err)

	gen := &fakePDF{}
	uc := sales.NewOrderPDFUseCase(f.store.Orders(), f.store.Customers(), gen)
	data, name, err := uc.Download(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4"), data)
	assert.Equal(t, "pedido_"+created.Number+".pdf", name)
	require.Len(t, gen.order.Items, 1)
	assert.Equal(t, f.customer.Name, gen.customer.Name)

	_, _, err = uc.Download(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
