package port

import (
	"context"

	"github.com/xcommerce/backend/internal/core/domain"
)

//go:generate mockgen -source=events.go -destination=mock/events.go -package=mock
type EventPublisher interface {
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error
}
