// Package amqp publishes JSON messages to a durable RabbitMQ queue.
package amqp

//go:generate go run go.uber.org/mock/mockgen -source=./amqp.go -destination=./mocks/amqp_mock.go -package=mocks

import (
	"context"
	"dinebook/config"
	"dinebook/shared/constant"
	"dinebook/shared/timezone"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	amqpGo "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

var ErrClosed = errors.New("amqp publisher is closed")

type Publisher interface {
	Publish(ctx context.Context, routingKey string, value any) error
	Close() error
}

type publisherImpl struct {
	url   string
	queue string

	mu      sync.Mutex
	conn    *amqpGo.Connection
	channel *amqpGo.Channel
	closed  bool
}

// New declares nothing until the first Publish, so a broker outage at boot
// does not stop the service.
func New(config *config.Config) Publisher {
	return &publisherImpl{
		url:   config.AMQP.URL,
		queue: config.AMQP.Queue,
	}
}

// channelLocked (re)opens the connection and channel and declares the queue.
func (p *publisherImpl) channelLocked() (*amqpGo.Channel, error) {
	if p.closed {
		return nil, ErrClosed
	}

	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqpGo.Dial(p.url)
		if err != nil {
			return nil, fmt.Errorf("failed to dial amqp broker: %w", err)
		}

		p.conn = conn
	}

	channel, err := p.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open amqp channel: %w", err)
	}

	_, err = channel.QueueDeclare(p.queue, true, false, false, false, nil)
	if err != nil {
		_ = channel.Close()

		return nil, fmt.Errorf("failed to declare amqp queue %s: %w", p.queue, err)
	}

	p.channel = channel

	log.Info().Str("queue", p.queue).Msg("AMQP channel opened")

	return channel, nil
}

// Publish sends value as a persistent JSON message on the default exchange.
// routingKey is carried as the message type; the queue is fixed.
func (p *publisherImpl) Publish(ctx context.Context, routingKey string, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal amqp message: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	channel, err := p.channelLocked()
	if err != nil {
		return err
	}

	err = channel.PublishWithContext(ctx, "", p.queue, false, false, amqpGo.Publishing{
		ContentType:  constant.ContentTypeJSON,
		DeliveryMode: amqpGo.Persistent,
		Timestamp:    timezone.Now(),
		Type:         routingKey,
		Body:         body,
	})
	if err != nil {
		p.channel = nil

		return fmt.Errorf("failed to publish amqp message: %w", err)
	}

	return nil
}

func (p *publisherImpl) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.closed = true

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil && !errors.Is(err, amqpGo.ErrClosed) {
			return fmt.Errorf("failed to close amqp connection: %w", err)
		}

		p.conn = nil
	}

	return nil
}
