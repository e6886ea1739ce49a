package application

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"hbl-card-payment/domain/constants"
	"hbl-card-payment/domain/entities"
	pacoEntities "hbl-card-payment/domain/entities/paco_gateway"
	"hbl-card-payment/utils/amount"
	gwErrors "hbl-card-payment/utils/errors"
)

// dispatchTimeout bounds one event publication and its alert.
const dispatchTimeout = 5 * time.Second

// HandleNotification opens a backend notification posted by the gateway to
// backendURL. It is held to the same checks as a prePaymentUi answer.
func (us *PaymentApplication) HandleNotification(ctx context.Context, envelope string) (*pacoEntities.PaymentClaims, error) {
	claims, err := us.open(envelope)
	if err != nil {
		us.Logger.With(zap.Error(err), zap.String("phase", string(gwErrors.PhaseOf(err)))).Error("paco_notification_rejected")

		event := us.newEvent(constants.EventEnvelopeRejected, "", "", decimal.Zero)
		event.Phase = string(gwErrors.PhaseOf(err))
		event.Reason = err.Error()
		us.dispatch(ctx, event)
		return nil, err
	}

	event := us.newEvent(constants.EventPaymentNotification, "", "", decimal.Zero)
	if response := claims.Response; response != nil {
		event.OrderNo = response.OrderNo
		event.ResponseCode = response.ApiResponse.ResponseCode
		if response.TransactionAmount != nil {
			event.Amount = response.TransactionAmount.Amount
		}
	}
	us.dispatch(ctx, event)

	us.Logger.With(zap.String("order_no", event.OrderNo), zap.String("response_code", event.ResponseCode)).
		Info("paco_notification")

	return claims, nil
}

// dispatch publishes event on the worker pool. Rejected envelopes also raise
// an alert. Neither can fail or delay the caller: the task keeps ctx values but
// not its cancellation, and is dropped when every worker is busy.
func (us *PaymentApplication) dispatch(ctx context.Context, event entities.PaymentEvent) {
	base := context.WithoutCancel(ctx)
	us.IPool.Submit(func() {
		ctx, cancel := context.WithTimeout(base, dispatchTimeout)
		defer cancel()

		if err := us.IPaymentEvent.Publish(ctx, event); err != nil {
			us.Logger.With(zap.Error(err), zap.String("event_id", event.EventID)).Warn("payment_event_publish_failed")
		}

		if event.Type != constants.EventEnvelopeRejected {
			return
		}
		if err := us.IAlert.SendAlert(alertMessage(event)); err != nil {
			us.Logger.With(zap.Error(err), zap.String("event_id", event.EventID)).Warn("security_alert_failed")
		}
	})
}

func alertMessage(event entities.PaymentEvent) string {
	msg := fmt.Sprintf("[HBL PACO] envelope rejected at %s", event.Phase)
	if event.OrderNo != "" {
		msg += fmt.Sprintf("\norder: %s", event.OrderNo)
	}
	if event.Amount != "" {
		if d, err := decimal.NewFromString(event.Amount); err == nil {
			msg += fmt.Sprintf("\namount: %s", amount.Display(d))
		}
	}
	if event.RequestMessageID != "" {
		msg += fmt.Sprintf("\nrequest: %s", event.RequestMessageID)
	}
	return msg
}
