package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"hbl-card-payment/domain/entities"
)

const exchangeKind = "topic"

type options struct {
	Uri      string
	Exchange string
	Durable  bool
	NoWait   bool
}

func NewOptions() *options {
	return &options{Durable: true}
}

func (o *options) WithUri(uri string) *options {
	o.Uri = uri
	return o
}

func (o *options) WithExchange(exchange string) *options {
	o.Exchange = exchange
	return o
}

func (o *options) WithDurable(durable bool) *options {
	o.Durable = durable
	return o
}

type RabbiMQ struct {
	Connection *amqp.Connection
	options
	*zap.Logger
}

// NewRabbiMQ dials the broker and declares the topic exchange events are
// published to.
func NewRabbiMQ(o options, log *zap.Logger) (*RabbiMQ, error) {
	conn, err := amqp.Dial(o.Uri)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	defer ch.Close()

	err = ch.ExchangeDeclare(
		o.Exchange,   // name
		exchangeKind, // kind
		o.Durable,    // durable
		false,        // delete when unused
		false,        // internal
		o.NoWait,     // no-wait
		nil,          // arguments
	)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &RabbiMQ{
		Connection: conn,
		options:    o,
		Logger:     log,
	}, nil
}

// RoutingKey is "<exchange>.<event type>", so consumers can bind to
// "<exchange>.#" or to a single event type.
func (r *RabbiMQ) RoutingKey(event entities.PaymentEvent) string {
	return r.Exchange + "." + string(event.Type)
}

func (r *RabbiMQ) Publish(ctx context.Context, event entities.PaymentEvent) error {
	ch, err := r.Connection.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	sendData, err := json.Marshal(event)
	if err != nil {
		return err
	}

	err = ch.Publish(
		r.Exchange,          // exchange
		r.RoutingKey(event), // routing key
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.EventID,
			Timestamp:    time.Unix(event.CreatedAt, 0),
			Body:         sendData,
		})
	if err != nil {
		r.Logger.With(zap.Error(err), zap.String("exchange", r.Exchange)).Error("RABBITMQ_PUBLISH")
	}

	return err
}

func (r *RabbiMQ) Close() error {
	return r.Connection.Close()
}
