package repositories

import (
	"context"

	"hbl-card-payment/domain/entities"
)

type PacoGatewayRepository interface {
	PrePaymentUI(ctx context.Context, envelope string) (string, error)
}

type IPaymentEvent interface {
	Publish(ctx context.Context, event entities.PaymentEvent) error
	Close() error
}

type IAlert interface {
	SendAlert(message string) error
}
