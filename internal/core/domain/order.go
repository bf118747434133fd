package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
)

// Order is an immutable purchase aggregate. The header and all items are
// created in one transaction; an order with zero items is never persisted.
type Order struct {
	ID        uint64
	UUID      uuid.UUID
	UserID    uint64
	AddressID uint64
	Total     decimal.Decimal
	Tax       decimal.Decimal
	CreatedAt time.Time
	Items     []OrderItem
	User      *User
}

type OrderItem struct {
	ID        uint64
	OrderID   uint64
	ProductID uint64
	Quantity  uint64
	LineTotal decimal.Decimal
	Product   *Product
}

// CheckoutRequest carries a validated-by-nobody client request into the
// checkout processor. Total and tax come from the client; line totals are
// always recomputed from the stored unit price.
type CheckoutRequest struct {
	UserID    uint64
	AddressID uint64
	Total     decimal.Decimal
	Tax       decimal.Decimal
	Items     []CheckoutItem
}

type CheckoutItem struct {
	ProductID uint64
	Quantity  uint64
}
