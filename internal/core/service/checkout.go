package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/govalues/decimal"
	"github.com/xcommerce/backend/internal/core/domain"
	"go.uber.org/zap"
)

// Checkout converts a requested item list into a committed order while
// reserving inventory. The whole aggregate is written in one repository
// transaction: either the header, every line item and every stock decrement
// become visible together, or nothing does. The first under-stocked item,
// in request order, aborts the checkout and is named in the returned error.
func (s *Service) Checkout(ctx context.Context, req *domain.CheckoutRequest) (*domain.Order, error) {
	if len(req.Items) == 0 {
		return nil, domain.ErrEmptyOrder
	}
	for _, item := range req.Items {
		if item.Quantity == 0 {
			return nil, domain.ErrInvalidQuantity
		}
	}

	// address ownership check, before any transaction is opened
	address, err := s.repo.ReadAddress(ctx, req.AddressID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read address", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if address.UserID != req.UserID {
		return nil, domain.ErrForbidden
	}

	order := &domain.Order{
		UUID:      uuid.New(),
		UserID:    req.UserID,
		AddressID: req.AddressID,
		Total:     req.Total,
		Tax:       req.Tax,
		CreatedAt: time.Now(),
		Items:     make([]domain.OrderItem, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	created, err := s.repo.CreateOrder(ctx, order,
		func(item *domain.OrderItem, product *domain.Product) error {
			if product.Stock < item.Quantity {
				return &domain.OutOfStockError{ProductID: product.ID}
			}

			qty, err := decimal.New(int64(item.Quantity), 0)
			if err != nil {
				return fmt.Errorf("math error:%w", err)
			}
			lineTotal, err := product.Price.Mul(qty)
			if err != nil {
				return fmt.Errorf("math error:%w", err)
			}
			item.LineTotal = lineTotal

			return nil
		})
	if err != nil {
		var oos *domain.OutOfStockError
		switch {
		case errors.As(err, &oos):
			return nil, oos
		case errors.Is(err, domain.ErrProductOutOfStock):
			return nil, domain.ErrProductOutOfStock
		case errors.Is(err, domain.ErrDataNotFound):
			// unknown product reference
			return nil, domain.ErrDataNotFound
		default:
			s.logger.Error("Create order", zap.Error(err))
			return nil, domain.ErrInternal
		}
	}

	if err := s.events.PublishOrderPlaced(ctx, created); err != nil {
		// the order is committed; event delivery is best effort
		s.logger.Warn("Publish order placed", zap.Error(err),
			zap.String("order", created.UUID.String()))
	}

	return created, nil
}

func (s *Service) GetOrdersByUser(ctx context.Context, userID uint64) ([]*domain.Order, error) {
	list, err := s.repo.ListOrdersByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Get orders for user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	return list, nil
}

func (s *Service) GetOrder(ctx context.Context, userID uint64, orderUUID uuid.UUID) (*domain.Order, error) {
	order, err := s.repo.ReadOrderByUUID(ctx, orderUUID)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return nil, domain.ErrDataNotFound
		}
		s.logger.Error("Read order", zap.Error(err))
		return nil, domain.ErrInternal
	}

	// existence of other users' orders is not leaked
	if order.UserID != userID {
		return nil, domain.ErrDataNotFound
	}

	return order, nil
}
