package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"hbl-card-payment/domain/entities"
)

const (
	qos             = byte(1)
	disconnectQuiet = 250
)

func Connection(uri, user, password string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().AddBroker(uri)
	opts.SetUsername(user)
	opts.SetPassword(password)
	opts.SetClientID(fmt.Sprintf("hbl-card-payment-%d", time.Now().UnixNano()))

	clientMqtt := mqtt.NewClient(opts)

	if token := clientMqtt.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}

	return clientMqtt, nil
}

type repositoryImpl struct {
	client mqtt.Client
	prefix string
	zap.Logger
}

func NewMQTTRepositoryImpl(client mqtt.Client, prefix string, logger *zap.Logger) *repositoryImpl {
	return &repositoryImpl{client, prefix, *logger}
}

// Topic is "<prefix>/topic/<order no>/".
func (r repositoryImpl) Topic(event entities.PaymentEvent) string {
	return r.prefix + "/topic/" + event.OrderNo + "/"
}

func (r repositoryImpl) Publish(ctx context.Context, event entities.PaymentEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := r.Topic(event)
	publish := r.client.Publish(topic, qos, false, message)
	select {
	case <-publish.Done():
	case <-ctx.Done():
		r.Logger.With(zap.String("event_id", event.EventID)).
			With(zap.String("topic", topic)).
			With(zap.Error(ctx.Err())).
			Error("MQTT_PUBLISH")
		return ctx.Err()
	}
	if publish.Error() != nil {
		r.Logger.With(zap.String("event_id", event.EventID)).
			With(zap.String("topic", topic)).
			With(zap.Error(publish.Error())).
			Error("MQTT_PUBLISH")
		return publish.Error()
	}

	return nil
}

func (r repositoryImpl) Close() error {
	r.client.Disconnect(disconnectQuiet)
	return nil
}
