package events

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"hbl-card-payment/domain/entities"
	"hbl-card-payment/domain/repositories"
	"hbl-card-payment/infrastructure/kafka"
	"hbl-card-payment/infrastructure/mqtt"
	"hbl-card-payment/infrastructure/rabbitmq"
	"hbl-card-payment/utils/configs"
)

const (
	SinkNone     = ""
	SinkLog      = "log"
	SinkKafka    = "kafka"
	SinkRabbitMQ = "rabbitmq"
	SinkMQTT     = "mqtt"
)

// NewSink connects the payment event sink selected by conf.Sink.
func NewSink(conf configs.EventsConfig, logger *zap.Logger) (repositories.IPaymentEvent, error) {
	switch conf.Sink {
	case SinkNone, SinkLog:
		return NewLogSink(logger), nil
	case SinkKafka:
		storage, err := kafka.NewConnection(conf.KafkaBrokers, conf.Topic, logger)
		if err != nil {
			return nil, err
		}
		return storage, nil
	case SinkRabbitMQ:
		opts := rabbitmq.NewOptions().WithUri(conf.QueueUri).WithExchange(conf.Topic)
		queue, err := rabbitmq.NewRabbiMQ(*opts, logger)
		if err != nil {
			return nil, err
		}
		return queue, nil
	case SinkMQTT:
		client, err := mqtt.Connection(conf.MQTTUri, conf.MQTTUsername, conf.MQTTPassword)
		if err != nil {
			return nil, err
		}
		return mqtt.NewMQTTRepositoryImpl(client, conf.Topic, logger), nil
	default:
		return nil, fmt.Errorf("unknown event sink %q", conf.Sink)
	}
}

type logSink struct {
	logger *zap.Logger
}

// NewLogSink writes events to the log only.
func NewLogSink(logger *zap.Logger) *logSink {
	return &logSink{logger: logger}
}

func (s *logSink) Publish(ctx context.Context, event entities.PaymentEvent) error {
	s.logger.With(
		zap.String("event_id", event.EventID),
		zap.String("type", string(event.Type)),
		zap.String("order_no", event.OrderNo),
		zap.String("phase", event.Phase),
	).Info("payment_event")
	return nil
}

func (s *logSink) Close() error {
	return nil
}
