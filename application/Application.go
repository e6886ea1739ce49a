package application

import (
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"hbl-card-payment/domain/constants"
	"hbl-card-payment/domain/repositories"
	"hbl-card-payment/domain/value_objects"
	"hbl-card-payment/infrastructure/events"
	"hbl-card-payment/infrastructure/service/paco_service"
	"hbl-card-payment/utils/configs"
	"hbl-card-payment/utils/crypt"
	gwErrors "hbl-card-payment/utils/errors"
	"hbl-card-payment/utils/gpooling"
	"hbl-card-payment/utils/telegram"
)

type PaymentApplication struct {
	Config         *configs.Config
	Logger         *zap.Logger
	Keys           value_objects.KeyPairSet
	PacoRepository repositories.PacoGatewayRepository
	IPaymentEvent  repositories.IPaymentEvent
	IAlert         repositories.IAlert
	IPool          gpooling.IPool

	builder atomic.Pointer[RequestBuilder]
}

// NewPaymentApplication validates config, parses the four keys once and
// connects the gateway transport, the event sink and the alert channel.
func NewPaymentApplication(config *configs.Config, logger *zap.Logger, pool gpooling.IPool) (*PaymentApplication, error) {
	if err := config.Paco.Validate(); err != nil {
		return nil, gwErrors.NewGatewayError(gwErrors.PhaseConfig, gwErrors.ErrConfig, err)
	}

	keys, err := crypt.LoadKeyPairSet(config.Paco.Keys)
	if err != nil {
		return nil, gwErrors.NewGatewayError(gwErrors.PhaseConfig, gwErrors.ErrKeyFormat, err)
	}

	sink, err := events.NewSink(config.Events, logger)
	if err != nil {
		return nil, fmt.Errorf("event sink: %w", err)
	}

	var alert repositories.IAlert = noAlert{}
	if config.Telegram.BotToken != "" {
		alert = telegram.NewRepoImpl(config.Telegram.BotToken, config.Telegram.ChannelId, telegram.DefaultTimeout)
	}

	transport := paco_service.NewRepoImpl(constants.PacoPrePaymentUIURL, config.Paco.ApiKey, config.Paco.Timeout(), logger)

	return NewPaymentApplicationWith(config, logger, pool, keys, transport, sink, alert), nil
}

// NewPaymentApplicationWith assembles an application from already built
// dependencies.
func NewPaymentApplicationWith(config *configs.Config, logger *zap.Logger, pool gpooling.IPool,
	keys value_objects.KeyPairSet, repo repositories.PacoGatewayRepository,
	sink repositories.IPaymentEvent, alert repositories.IAlert) *PaymentApplication {
	application := &PaymentApplication{
		Config:         config,
		Logger:         logger,
		Keys:           keys,
		PacoRepository: repo,
		IPaymentEvent:  sink,
		IAlert:         alert,
		IPool:          pool,
	}
	application.builder.Store(NewRequestBuilder(config.Paco.MerchantID, config.Paco.CallbackURL))

	return application
}

// Builder returns the request builder currently in use.
func (us *PaymentApplication) Builder() *RequestBuilder {
	return us.builder.Load()
}

// SetBuilder replaces the request builder, e.g. to inject a clock.
func (us *PaymentApplication) SetBuilder(b *RequestBuilder) {
	us.builder.Store(b)
}

func (us *PaymentApplication) tokenLifetime() time.Duration {
	return constants.PacoTokenLifetimeSec * time.Second
}

// Close releases the event sink only. Use Shutdown to drain the pool first.
func (us *PaymentApplication) Close() error {
	return us.IPaymentEvent.Close()
}

// Shutdown waits up to timeout for queued event publications, then releases
// the pool and closes the event sink.
func (us *PaymentApplication) Shutdown(timeout time.Duration) error {
	if !us.IPool.Wait(timeout) {
		us.Logger.With(zap.Int("pending", us.IPool.Pending())).Warn("payment_events_pending_at_shutdown")
	}
	us.IPool.Release()
	return us.Close()
}

type noAlert struct{}

func (noAlert) SendAlert(string) error { return nil }
