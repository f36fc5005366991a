// Package amqp publishes domain events to a RabbitMQ topic exchange.
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/core/ports"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// channel is the subset of *amqp091.Channel the publisher needs.
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Publisher sends every event to the exchange with the event type as routing key,
// so consumers can bind to e.g. "goal.*".
type Publisher struct {
	conn     *amqp091.Connection
	mu       sync.Mutex
	channel  channel
	exchange string
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(url, exchange string) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

func newPublisher(ch channel, exchange string) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{channel: ch, exchange: exchange}, nil
}

// Publish sends the event as a persistent JSON message.
func (p *Publisher) Publish(ctx context.Context, event ports.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,         // exchange
		string(event.Type), // routing key
		false,              // mandatory
		false,              // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.OccurredAt,
			MessageId:    event.ResourceID,
			Body:         body,
		},
	)
	p.mu.Unlock()
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	slog.DebugContext(ctx, "Published event",
		slog.String("type", string(event.Type)),
		slog.String("exchange", p.exchange))
	return nil
}

// Close releases the channel and the connection.
func (p *Publisher) Close() error {
	err := p.channel.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
