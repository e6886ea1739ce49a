package application

import (
	"time"

	"github.com/shopspring/decimal"

	"hbl-card-payment/domain/constants"
	entities "hbl-card-payment/domain/entities/paco_gateway"
	"hbl-card-payment/utils/amount"
	gwErrors "hbl-card-payment/utils/errors"
	"hbl-card-payment/utils/helpers"
)

const notifyQueryKey = "payment"

// RequestBuilder produces prePaymentUi request documents. It is immutable:
// WithOverride and friends return a new builder, so one value may be shared
// between goroutines.
type RequestBuilder struct {
	merchantID  string
	callbackURL string
	overrides   map[string]interface{}
	now         func() time.Time
	newID       func() string
}

func NewRequestBuilder(merchantID, callbackURL string) *RequestBuilder {
	return &RequestBuilder{
		merchantID:  merchantID,
		callbackURL: callbackURL,
		overrides:   map[string]interface{}{},
		now:         time.Now,
		newID:       helpers.GetUUId,
	}
}

func (b *RequestBuilder) clone() *RequestBuilder {
	next := *b
	next.overrides = make(map[string]interface{}, len(b.overrides)+1)
	for k, v := range b.overrides {
		next.overrides[k] = v
	}
	return &next
}

// WithOverride returns a builder that also sets the top-level field key to
// value in every document it builds. Keys are not validated.
func (b *RequestBuilder) WithOverride(key string, value interface{}) *RequestBuilder {
	next := b.clone()
	next.overrides[key] = value
	return next
}

func (b *RequestBuilder) WithClock(now func() time.Time) *RequestBuilder {
	next := b.clone()
	next.now = now
	return next
}

func (b *RequestBuilder) WithIDGenerator(newID func() string) *RequestBuilder {
	next := b.clone()
	next.newID = newID
	return next
}

// Overrides returns a copy of the overrides set so far.
func (b *RequestBuilder) Overrides() map[string]interface{} {
	return b.clone().overrides
}

func (b *RequestBuilder) Now() time.Time {
	return b.now()
}

func (b *RequestBuilder) Build(orderNo, productDescription string, value decimal.Decimal) (entities.PaymentRequest, error) {
	return b.BuildAt(b.now(), orderNo, productDescription, value)
}

// BuildAt builds a request stamped with now and a fresh request message id.
func (b *RequestBuilder) BuildAt(now time.Time, orderNo, productDescription string, value decimal.Decimal) (entities.PaymentRequest, error) {
	amountText, err := amount.FormatMinorUnits(value)
	if err != nil {
		return entities.PaymentRequest{}, gwErrors.Wrap(gwErrors.PhaseBuild, gwErrors.ErrInvalidAmount, err)
	}

	request := entities.PaymentRequest{
		OfficeID:           b.merchantID,
		OrderNo:            orderNo,
		ProductDescription: productDescription,
		PaymentType:        constants.PacoPaymentTypeCreditCard,
		PaymentCategory:    constants.PacoPaymentCategoryECOM,
		StoreCardDetails: entities.StoreCardDetails{
			StoreCardFlag:      constants.FlagNo,
			StoredCardUniqueID: constants.PacoStoredCardUniqueID,
		},
		InstallmentPaymentDetails: entities.InstallmentPaymentDetails{
			IPPFlag:           constants.FlagNo,
			InstallmentPeriod: 0,
		},
		MCPFlag:        constants.FlagNo,
		Request3dsFlag: constants.FlagYes,
		TransactionAmount: entities.TransactionAmount{
			AmountText:    amountText,
			CurrencyCode:  constants.PacoCurrencyCode,
			DecimalPlaces: constants.PacoDecimalPlaces,
			Amount:        amount.DecimalString(value),
		},
		NotificationURLs: entities.NotificationURLs{
			ConfirmationURL: b.notificationURL(constants.NotifySuccess),
			FailedURL:       b.notificationURL(constants.NotifyFailed),
			CancellationURL: b.notificationURL(constants.NotifyCancel),
			BackendURL:      b.notificationURL(constants.NotifyBackend),
		},
		PurchaseItems:   []entities.PurchaseItem{},
		CustomFieldList: []entities.CustomField{},
		ApiRequest: entities.ApiRequest{
			RequestMessageID: b.newID(),
			RequestDateTime:  helpers.FormatRequestDateTime(now),
			Language:         constants.PacoLanguage,
		},
	}

	if len(b.overrides) > 0 {
		request.Extensions = b.Overrides()
	}

	return request, nil
}

func (b *RequestBuilder) notificationURL(result string) string {
	return helpers.WithQueryParam(b.callbackURL, notifyQueryKey, result)
}
