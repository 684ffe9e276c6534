package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"order-fulfillment/internal/orders"

	amqp "github.com/rabbitmq/amqp091-go"
)

const contentTypeJSON = "application/json"

// RabbitNotifier implements orders.Notifier by publishing notification events
// to a durable queue; the notifications service consumes them and delivers the
// customer message.
type RabbitNotifier struct {
	channel *amqp.Channel
	queue   string
}

func NewRabbitNotifier(conn *amqp.Connection, queue string) (*RabbitNotifier, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("declare queue %q: %w", queue, err)
	}

	return &RabbitNotifier{
		channel: ch,
		queue:   queue,
	}, nil
}

func (n *RabbitNotifier) SendDelayNotification(ctx context.Context, leadTimeDays int, productName string) error {
	return n.publish(ctx, orders.NotificationEvent{
		Type:         orders.NotificationDelay,
		ProductName:  productName,
		LeadTimeDays: leadTimeDays,
		Timestamp:    time.Now().UTC(),
	})
}

func (n *RabbitNotifier) SendOutOfStockNotification(ctx context.Context, productName string) error {
	return n.publish(ctx, orders.NotificationEvent{
		Type:        orders.NotificationOutOfStock,
		ProductName: productName,
		Timestamp:   time.Now().UTC(),
	})
}

func (n *RabbitNotifier) SendExpirationNotification(ctx context.Context, productName string, expiryDate time.Time) error {
	return n.publish(ctx, orders.NotificationEvent{
		Type:        orders.NotificationExpiration,
		ProductName: productName,
		ExpiryDate:  &expiryDate,
		Timestamp:   time.Now().UTC(),
	})
}

func (n *RabbitNotifier) publish(ctx context.Context, event orders.NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if err := n.channel.PublishWithContext(
		ctx,
		"",
		n.queue,
		false,
		false,
		amqp.Publishing{
			ContentType: contentTypeJSON,
			Body:        payload,
		},
	); err != nil {
		return fmt.Errorf("publish to %q: %w", n.queue, err)
	}

	return nil
}

func (n *RabbitNotifier) Close() error {
	return n.channel.Close()
}
