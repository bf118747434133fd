package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/xcommerce/backend/internal/adapter/config"
	"github.com/xcommerce/backend/internal/core/domain"
	"go.uber.org/zap"
)

const (
	OrderPlacedQueue      = "order_placed_queue"
	OrderPlacedRoutingKey = "order.placed"
)

// Publisher sends order lifecycle events to a RabbitMQ topic exchange.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewPublisher(conf *config.Broker, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(conf.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		conf.Exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", conf.Exchange, err)
	}

	q, err := channel.QueueDeclare(
		OrderPlacedQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", OrderPlacedQueue, err)
	}

	err = channel.QueueBind(q.Name, OrderPlacedRoutingKey, conf.Exchange, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue %s: %w", OrderPlacedQueue, err)
	}

	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: conf.Exchange,
		logger:   logger,
	}, nil
}

type orderPlacedEvent struct {
	OrderUUID string    `json:"order_uuid"`
	UserID    uint64    `json:"user_id"`
	Total     string    `json:"total"`
	Items     int       `json:"items"`
	CreatedAt time.Time `json:"created_at"`
}

func (p *Publisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	event := orderPlacedEvent{
		OrderUUID: order.UUID.String(),
		UserID:    order.UserID,
		Total:     order.Total.String(),
		Items:     len(order.Items),
		CreatedAt: order.CreatedAt,
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		OrderPlacedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", OrderPlacedRoutingKey, err)
	}

	p.logger.Debug("published event",
		zap.String("routing_key", OrderPlacedRoutingKey),
		zap.String("order", event.OrderUUID))
	return nil
}

func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			return err
		}
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
