package invalidate

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

// AMQPInvalidator publishes invalidated keys to a fanout exchange so
// every cache-holding consumer drops its copy.
type AMQPInvalidator struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      *zerolog.Logger
}

type invalidationMessage struct {
	Keys []string  `json:"keys"`
	At   time.Time `json:"at"`
}

// NewAMQP connects to the broker and declares the fanout exchange.
func NewAMQP(url, exchange string, log *zerolog.Logger) (*AMQPInvalidator, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Error().Err(err).Msg("failed to connect to RabbitMQ")
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		log.Error().Err(err).Msg("failed to open RabbitMQ channel")
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"fanout",
		true,
		false,
		false,
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		log.Error().Err(err).Msg("failed to declare invalidation exchange")
		return nil, err
	}

	log.Info().Str("exchange", exchange).Msg("cache invalidation bus connected")
	return &AMQPInvalidator{conn: conn, channel: ch, exchange: exchange, log: log}, nil
}

// Invalidate publishes the keys. Errors are logged and dropped: staleness
// is tolerated, failing the admin's write is not.
func (a *AMQPInvalidator) Invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}

	body, _ := json.Marshal(invalidationMessage{Keys: keys, At: time.Now().UTC()})
	err := a.channel.PublishWithContext(ctx,
		a.exchange,
		"",
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	)
	if err != nil {
		a.log.Error().Err(err).Strs("keys", keys).Msg("failed to publish cache invalidation")
		return
	}
	a.log.Debug().Strs("keys", keys).Msg("cache invalidation published")
}

func (a *AMQPInvalidator) Close() {
	if a.channel != nil {
		_ = a.channel.Close()
	}
	if a.conn != nil {
		_ = a.conn.Close()
	}
}
