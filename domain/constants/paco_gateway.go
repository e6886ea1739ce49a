package constants

// 2C2P PACO protocol values.
const (
	PacoPrePaymentUIURL = "https://core.paco.2c2p.com/api/1.0/Payment/prePaymentUi"
	PacoAudience        = "PacoAudience"
	PacoIssuer          = "PacoIssuer"

	PacoContentType  = "application/jose; charset=utf-8"
	PacoAccept       = "application/jose"
	PacoApiKeyHeader = "CompanyApiKey"

	PacoSigningAlgorithm = "PS256"
	PacoTokenType        = "JWT"
	PacoTokenLifetimeSec = 3600
)

const (
	PacoPaymentTypeCreditCard = "CC"
	PacoPaymentCategoryECOM   = "ECOM"
	PacoCurrencyCode          = "NPR"
	PacoDecimalPlaces         = 2
	PacoLanguage              = "en-US"
	PacoStoredCardUniqueID    = "{{guid}}"

	FlagYes = "Y"
	FlagNo  = "N"
)

// Query values appended to the callback base URL, one per notification URL.
const (
	NotifySuccess = "success"
	NotifyFailed  = "failed"
	NotifyCancel  = "cancel"
	NotifyBackend = "backend"
)

type PaymentEventType string

const (
	EventPaymentInitiated    PaymentEventType = "PAYMENT_INITIATED"
	EventPaymentFailed       PaymentEventType = "PAYMENT_FAILED"
	EventPaymentNotification PaymentEventType = "PAYMENT_NOTIFICATION"
	EventEnvelopeRejected    PaymentEventType = "ENVELOPE_REJECTED"
)

func (t PaymentEventType) IsFailure() bool {
	return t == EventPaymentFailed || t == EventEnvelopeRejected
}
