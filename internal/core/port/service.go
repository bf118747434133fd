package port

import (
	"context"

	"github.com/google/uuid"
	"github.com/xcommerce/backend/internal/core/domain"
)

//go:generate mockgen -source=service.go -destination=mock/service.go -package=mock
type Service interface {
	RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error)
	LoginUser(ctx context.Context, username string, password string) (string, error)

	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, productID uint64) (*domain.Product, error)

	ListCountries(ctx context.Context) ([]*domain.Country, error)

	ListAddresses(ctx context.Context, userID uint64) ([]*domain.Address, error)
	AddAddress(ctx context.Context, address *domain.Address) (*domain.Address, error)
	UpdateAddress(ctx context.Context, userID uint64, address *domain.Address) (*domain.Address, error)
	DeleteAddress(ctx context.Context, userID uint64, addressID uint64) error

	Checkout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Order, error)
	GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error)
	GetOrder(ctx context.Context, userID uint64, orderUUID uuid.UUID) (*domain.Order, error)
}
