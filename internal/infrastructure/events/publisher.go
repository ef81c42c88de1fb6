// Package events publica en RabbitMQ las entregas registradas para consumidores externos
// (liquidación, notificaciones). Sin AMQP_URL se usa un publicador no-op.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/Lecheria-api/internal/application/collection"
	"github.com/jhoicas/Lecheria-api/pkg/logger"
)

// RoutingKeyEntryRecorded clave de ruteo de las entregas registradas.
const RoutingKeyEntryRecorded = "milk.entry.recorded"

const publishTimeout = 5 * time.Second

var (
	_ collection.EventPublisher = (*AMQPPublisher)(nil)
	_ collection.EventPublisher = Noop{}
)

// AMQPPublisher publica eventos en un exchange direct durable.
type AMQPPublisher struct {
	mu       sync.Mutex // amqp091.Channel no es seguro para publicar concurrentemente
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	log      *logger.Logger
}

// NewAMQPPublisher conecta al broker y declara el exchange.
func NewAMQPPublisher(url, exchange string, log *logger.Logger) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPPublisher{conn: conn, channel: channel, exchange: exchange, log: log}, nil
}

// PublishEntryRecorded publica el evento como JSON persistente.
func (p *AMQPPublisher) PublishEntryRecorded(ctx context.Context, evt collection.EntryRecordedEvent) error {
	body, err := encodeEvent(evt)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,              // exchange
		RoutingKeyEntryRecorded, // routing key
		false,                   // mandatory
		false,                   // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    evt.ID,
			Timestamp:    evt.RecordedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	p.log.Debug().
		Str("id", evt.ID).
		Str("account_no", evt.AccountNo).
		Str("exchange", p.exchange).
		Msg("entrega publicada")
	return nil
}

// Close cierra canal y conexión.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func encodeEvent(evt collection.EntryRecordedEvent) ([]byte, error) {
	body, err := json.Marshal(evt)
	if err != nil {
		return nil, fmt.Errorf("marshal message: %w", err)
	}
	return body, nil
}

// Noop descarta los eventos (AMQP deshabilitado).
type Noop struct{}

// PublishEntryRecorded no hace nada.
func (Noop) PublishEntryRecorded(context.Context, collection.EntryRecordedEvent) error { return nil }
