package broker

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shegacafe/cafe-app/services"
)

type amqpPublisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// RabbitPublisher publishes order events to a durable topic exchange.
// The routing key is the event type, e.g. "order.status_changed".
type RabbitPublisher struct {
	conn     *amqp.Connection
	ch       amqpPublisher
	exchange string
}

func DialRabbit(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq: declare exchange %s: %w", exchange, err)
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Notify(ctx context.Context, ev services.OrderEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, string(ev.Type), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    ev.At,
		ContentType:  "application/json",
		Type:         string(ev.Type),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq: publish %s: %w", ev.Type, err)
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Close()
}
