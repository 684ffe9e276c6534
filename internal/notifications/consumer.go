// Package notifications delivers customer messages for fulfillment events
// published by the order service.
package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"order-fulfillment/internal/orders"

	amqp "github.com/rabbitmq/amqp091-go"
)

const consumerTag = "notifications-service"

type Consumer struct {
	channel *amqp.Channel
	queue   string
	logger  *slog.Logger
}

func NewConsumer(conn *amqp.Connection, queue string, logger *slog.Logger) (*Consumer, error) {
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

	return &Consumer{
		channel: ch,
		queue:   queue,
		logger:  logger,
	}, nil
}

func (c *Consumer) Listen(ctx context.Context) error {
	msgs, err := c.channel.Consume(
		c.queue,
		consumerTag,
		false, // manual ack
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume queue %q: %w", c.queue, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			if err := c.handleMessage(&msg); err != nil {
				c.logger.Error("handle message failed", "error", err)
				_ = msg.Nack(false, true)
				continue
			}

			_ = msg.Ack(false)
		}
	}
}

func (c *Consumer) handleMessage(msg *amqp.Delivery) error {
	var event orders.NotificationEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("unmarshal event: %w", err)
	}

	message, err := customerMessage(event)
	if err != nil {
		return err
	}

	c.logger.Info("customer notification sent",
		"type", event.Type,
		"product_name", event.ProductName,
		"message", message,
		"timestamp", event.Timestamp,
	)

	return nil
}

func customerMessage(event orders.NotificationEvent) (string, error) {
	switch event.Type {
	case orders.NotificationDelay:
		return fmt.Sprintf("Your order of %q is delayed; restock expected in %d days.", event.ProductName, event.LeadTimeDays), nil
	case orders.NotificationOutOfStock:
		return fmt.Sprintf("The product %q is out of stock.", event.ProductName), nil
	case orders.NotificationExpiration:
		if event.ExpiryDate == nil {
			return "", fmt.Errorf("expiration event for %q has no expiry date", event.ProductName)
		}
		return fmt.Sprintf("The product %q expired on %s.", event.ProductName, event.ExpiryDate.Format("2006-01-02")), nil
	default:
		return "", fmt.Errorf("unknown notification type %q", event.Type)
	}
}

func (c *Consumer) Close() error {
	return c.channel.Close()
}
