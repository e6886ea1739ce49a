package kafka

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/Shopify/sarama"
	"go.uber.org/zap"

	"hbl-card-payment/domain/entities"
)

type Storage struct {
	sarama.SyncProducer
	Topic  string
	Logger *zap.Logger
}

func producerConfig() *sarama.Config {
	conf := sarama.NewConfig()
	conf.Producer.Return.Successes = true
	conf.Producer.RequiredAcks = sarama.WaitForAll
	return conf
}

// NewConnection dials the comma separated broker list and returns a sink
// publishing payment events to topic.
func NewConnection(brokers, topic string, logger *zap.Logger) (*Storage, error) {
	producer, err := sarama.NewSyncProducer(strings.Split(brokers, ","), producerConfig())
	if err != nil {
		return nil, err
	}

	return NewStorage(producer, topic, logger), nil
}

func NewStorage(producer sarama.SyncProducer, topic string, logger *zap.Logger) *Storage {
	return &Storage{
		SyncProducer: producer,
		Topic:        topic,
		Logger:       logger,
	}
}

// Publish sends the event keyed by order number, so events of one order keep
// their order within a partition.
func (s *Storage) Publish(ctx context.Context, event entities.PaymentEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	partition, offset, err := s.SendMessage(&sarama.ProducerMessage{
		Topic: s.Topic,
		Key:   sarama.StringEncoder(event.OrderNo),
		Value: sarama.ByteEncoder(body),
	})
	if err != nil {
		s.Logger.With(zap.Error(err), zap.String("topic", s.Topic)).Error("KAFKA_PUBLISH")
		return err
	}

	s.Logger.With(
		zap.String("event_id", event.EventID),
		zap.Int32("partition", partition),
		zap.Int64("offset", offset),
	).Debug("kafka_published")
	return nil
}

func (s *Storage) Close() error {
	return s.SyncProducer.Close()
}
