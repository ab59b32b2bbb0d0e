package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

const exchangeType = "topic"

// AMQPPublisher публикует события в topic exchange rabbitmq
type AMQPPublisher struct {
	conn     *amqp.Connection
	exchange string
	log      Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewAMQPPublisher подключается к брокеру и объявляет exchange
func NewAMQPPublisher(url, exchange string, log Logger) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %v", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		exchange,     // name
		exchangeType, // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %v", ErrConnect, exchange, err)
	}

	log.Info("AMQPPublisher: connected, exchange=%s", exchange)

	return &AMQPPublisher{
		conn:     conn,
		exchange: exchange,
		log:      log,
		ch:       ch,
	}, nil
}

// Publish отправляет событие, routing key = тип события
func (p *AMQPPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrPublish, event.Type, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx,
		p.exchange, // exchange
		event.Type, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         event.Type,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPublish, event.Type, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.log.Warn("AMQPPublisher: close channel: %v", err)
	}
	return p.conn.Close()
}

// NopPublisher используется, когда брокер не настроен
type NopPublisher struct{}

// Publish ничего не делает
func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
