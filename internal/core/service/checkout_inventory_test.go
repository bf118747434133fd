package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcommerce/backend/internal/core/domain"
	"github.com/xcommerce/backend/internal/core/port"
	"github.com/xcommerce/backend/internal/core/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// memRepository reproduces the repository's checkout transaction semantics in
// memory: per-checkout mutual exclusion stands in for row locks, and stock
// changes are staged so a failing item leaves nothing behind.
type memRepository struct {
	port.Repository

	mu        sync.Mutex
	products  map[uint64]*domain.Product
	addresses map[uint64]*domain.Address
	orders    []*domain.Order
	nextID    uint64
}

func newMemRepository() *memRepository {
	return &memRepository{
		products:  make(map[uint64]*domain.Product),
		addresses: make(map[uint64]*domain.Address),
		nextID:    1,
	}
}

func (r *memRepository) ReadAddress(_ context.Context, addressID uint64) (*domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	address, ok := r.addresses[addressID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	copied := *address
	return &copied, nil
}

func (r *memRepository) CreateOrder(_ context.Context, order *domain.Order, reserveFn port.ReserveStockFn) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order.ID = r.nextID
	r.nextID++

	staged := make(map[uint64]uint64)
	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID

		product, ok := r.products[item.ProductID]
		if !ok {
			return nil, domain.ErrDataNotFound
		}
		snapshot := *product
		snapshot.Stock -= staged[item.ProductID]

		if err := reserveFn(item, &snapshot); err != nil {
			return nil, err
		}
		staged[item.ProductID] += item.Quantity
		item.Product = &snapshot
	}

	for productID, qty := range staged {
		r.products[productID].Stock -= qty
	}
	r.orders = append(r.orders, order)

	return order, nil
}

func (r *memRepository) ListOrdersByUser(_ context.Context, userID uint64) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]*domain.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			list = append(list, order)
		}
	}
	return list, nil
}

func (r *memRepository) stock(productID uint64) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Stock
}

type noopPublisher struct{}

func (noopPublisher) PublishOrderPlaced(context.Context, *domain.Order) error { return nil }

func newInventoryService(t *testing.T, repo *memRepository) *service.Service {
	t.Helper()
	logger := zap.NewNop()
	s, err := service.NewService(repo, nil, noopPublisher{}, logger)
	require.NoError(t, err)
	return s
}

func seedInventory(repo *memRepository) {
	repo.addresses[2] = &domain.Address{ID: 2, UserID: 1}
	repo.products[1] = &domain.Product{ID: 1, Name: "A", Price: decimal.MustParse("10.00"), Stock: 5}
	repo.products[2] = &domain.Product{ID: 2, Name: "B", Price: decimal.MustParse("4.00"), Stock: 2}
}

func TestCheckout_DecrementsStock(t *testing.T) {
	repo := newMemRepository()
	seedInventory(repo)
	s := newInventoryService(t, repo)

	order, err := s.Checkout(context.Background(), &domain.CheckoutRequest{
		UserID: 1, AddressID: 2,
		Items: []domain.CheckoutItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 2},
		},
	})

	require.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, uint64(2), repo.stock(1))
	assert.Equal(t, uint64(0), repo.stock(2))
	assert.Equal(t, "30.00", order.Items[0].LineTotal.String())
	assert.Equal(t, "8.00", order.Items[1].LineTotal.String())
}

func TestCheckout_OutOfStockLeavesNothingBehind(t *testing.T) {
	repo := newMemRepository()
	seedInventory(repo)
	s := newInventoryService(t, repo)

	req := &domain.CheckoutRequest{
		UserID: 1, AddressID: 2,
		Items: []domain.CheckoutItem{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 5},
		},
	}

	order, err := s.Checkout(context.Background(), req)
	assert.Nil(t, order)

	var oos *domain.OutOfStockError
	require.True(t, errors.As(err, &oos))
	assert.Equal(t, uint64(2), oos.ProductID)

	// stock untouched, no order persisted
	assert.Equal(t, uint64(5), repo.stock(1))
	assert.Equal(t, uint64(2), repo.stock(2))
	orders, err := s.GetOrdersByUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, orders)

	// failing twice yields the same failure with unchanged stock
	_, err = s.Checkout(context.Background(), req)
	require.True(t, errors.As(err, &oos))
	assert.Equal(t, uint64(2), oos.ProductID)
	assert.Equal(t, uint64(5), repo.stock(1))
	assert.Equal(t, uint64(2), repo.stock(2))
}

func TestCheckout_QuantityEqualToStock(t *testing.T) {
	repo := newMemRepository()
	seedInventory(repo)
	s := newInventoryService(t, repo)

	order, err := s.Checkout(context.Background(), &domain.CheckoutRequest{
		UserID: 1, AddressID: 2,
		Items:  []domain.CheckoutItem{{ProductID: 1, Quantity: 5}},
	})

	require.NoError(t, err)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, uint64(0), repo.stock(1))
}

func TestCheckout_ConcurrentOverSell(t *testing.T) {
	repo := newMemRepository()
	repo.addresses[2] = &domain.Address{ID: 2, UserID: 1}
	repo.products[1] = &domain.Product{ID: 1, Name: "A", Price: decimal.MustParse("1.00"), Stock: 100}
	s := newInventoryService(t, repo)

	results := make([]error, 2)
	var g errgroup.Group
	for i := 0; i < 2; i++ {
		i := i
		g.Go(func() error {
			_, err := s.Checkout(context.Background(), &domain.CheckoutRequest{
				UserID: 1, AddressID: 2,
				Items: []domain.CheckoutItem{{ProductID: 1, Quantity: 60}},
			})
			results[i] = err
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded, failed := 0, 0
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, domain.ErrProductOutOfStock)
		failed++
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, uint64(40), repo.stock(1))
}
