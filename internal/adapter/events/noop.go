package events

import (
	"context"

	"github.com/xcommerce/backend/internal/core/domain"
)

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

func (p *NoopPublisher) PublishOrderPlaced(_ context.Context, _ *domain.Order) error {
	return nil
}
