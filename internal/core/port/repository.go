package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/xcommerce/backend/internal/core/domain"
)

//go:generate mockgen -source=repository.go -destination=mock/repository.go -package=mock
type Repository interface {
	// User
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)

	// Catalog
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	ReadProduct(ctx context.Context, productID uint64) (*domain.Product, error)

	// Country
	ListCountries(ctx context.Context) ([]*domain.Country, error)

	// Address
	CreateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	ReadAddress(ctx context.Context, addressID uint64) (*domain.Address, error)
	UpdateAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, addressID uint64) error
	ListAddressesByUser(ctx context.Context, userID uint64) ([]*domain.Address, error)

	// Order
	CreateOrder(ctx context.Context, order *domain.Order, reserveFn ReserveStockFn) (*domain.Order, error)
	ReadOrderByUUID(ctx context.Context, orderUUID uuid.UUID) (*domain.Order, error)
	ListOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
}

// ReserveStockFn is invoked once per order item, in request order, with the
// product row locked for the rest of the checkout transaction. Returning an
// error rolls back the whole order aggregate.
type ReserveStockFn func(item *domain.OrderItem, product *domain.Product) error
