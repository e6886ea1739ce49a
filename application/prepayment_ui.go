package application

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hbl-card-payment/domain/constants"
	"hbl-card-payment/domain/entities"
	pacoEntities "hbl-card-payment/domain/entities/paco_gateway"
	"hbl-card-payment/utils/amount"
	"hbl-card-payment/utils/crypt"
	gwErrors "hbl-card-payment/utils/errors"
)

// RequestOption adjusts the builder for a single Submit.
type RequestOption func(*RequestBuilder) *RequestBuilder

// Override sets a top-level request field for one Submit only.
func Override(key string, value interface{}) RequestOption {
	return func(b *RequestBuilder) *RequestBuilder {
		return b.WithOverride(key, value)
	}
}

// SetOverride adds key=value to every later request. Safe to call while
// other goroutines Submit.
func (us *PaymentApplication) SetOverride(key string, value interface{}) {
	for {
		current := us.builder.Load()
		if us.builder.CompareAndSwap(current, current.WithOverride(key, value)) {
			return
		}
	}
}

// Submit sends one prePaymentUi request and returns the verified claims of
// the gateway's answer. There is no retry.
func (us *PaymentApplication) Submit(ctx context.Context, orderNo, productDescription string, value decimal.Decimal, opts ...RequestOption) (*pacoEntities.PaymentClaims, error) {
	builder := us.builder.Load()
	for _, opt := range opts {
		builder = opt(builder)
	}

	logs := us.Logger.With(zap.String("order_no", orderNo), zap.String("amount", amount.Display(value)))

	now := builder.Now()
	request, err := builder.BuildAt(now, orderNo, productDescription, value)
	if err != nil {
		return nil, us.submitFailed(ctx, logs, orderNo, "", value, err)
	}
	requestID := request.ApiRequest.RequestMessageID
	logs = logs.With(zap.String("request_message_id", requestID))

	claims := pacoEntities.NewPaymentClaims(request, us.Config.Paco.ApiKey, constants.PacoAudience,
		us.Config.Paco.ApiKey, now, us.tokenLifetime())

	envelope, err := crypt.Seal(claims, us.Keys.MerchantSigningKey, us.Keys.PacoEncryptionKey, us.Config.Paco.EncryptionKeyID)
	if err != nil {
		return nil, us.submitFailed(ctx, logs, orderNo, requestID, value, err)
	}

	answer, err := us.PacoRepository.PrePaymentUI(ctx, envelope)
	if err != nil {
		return nil, us.submitFailed(ctx, logs, orderNo, requestID, value, gwErrors.Wrap(gwErrors.PhaseTransport, gwErrors.ErrTransport, err))
	}

	result, err := us.open(answer)
	if err != nil {
		return nil, us.submitFailed(ctx, logs, orderNo, requestID, value, err)
	}

	event := us.newEvent(constants.EventPaymentInitiated, orderNo, requestID, value)
	if result.Response != nil {
		event.PaymentPageURL = result.Response.PaymentPageURL()
		event.ResponseCode = result.Response.ApiResponse.ResponseCode
	}
	us.dispatch(ctx, event)

	logs.With(zap.String("payment_page_url", event.PaymentPageURL), zap.String("response_code", event.ResponseCode)).
		Info("paco_prepayment_ui")

	return result, nil
}

// open decrypts and verifies a token issued by the gateway for this merchant.
func (us *PaymentApplication) open(envelope string) (*pacoEntities.PaymentClaims, error) {
	return crypt.Open(envelope, us.Keys.MerchantDecryptionKey, us.Keys.PacoSigningKey,
		us.Config.Paco.ApiKey, constants.PacoIssuer)
}

func (us *PaymentApplication) submitFailed(ctx context.Context, logs *zap.Logger, orderNo, requestID string, value decimal.Decimal, err error) error {
	logs.With(zap.Error(err), zap.String("phase", string(gwErrors.PhaseOf(err)))).Error("paco_prepayment_ui_failed")

	eventType := constants.EventPaymentFailed
	if gwErrors.IsSecurityEvent(err) {
		eventType = constants.EventEnvelopeRejected
	}
	event := us.newEvent(eventType, orderNo, requestID, value)
	event.Phase = string(gwErrors.PhaseOf(err))
	event.Reason = err.Error()
	us.dispatch(ctx, event)

	return err
}

func (us *PaymentApplication) newEvent(eventType constants.PaymentEventType, orderNo, requestID string, value decimal.Decimal) entities.PaymentEvent {
	event := entities.PaymentEvent{
		EventID:          us.Builder().newID(),
		Type:             eventType,
		OrderNo:          orderNo,
		RequestMessageID: requestID,
		CreatedAt:        us.Builder().Now().Unix(),
	}
	if !value.IsZero() {
		event.Amount = amount.DecimalString(value)
	}
	return event
}
