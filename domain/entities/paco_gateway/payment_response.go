package entities

// PaymentResponse is the "response" claim of a token issued by PACO, both for
// prePaymentUi answers and backend notifications. Unknown fields are ignored.
type PaymentResponse struct {
	ApiResponse       ApiResponse        `json:"apiResponse"`
	OfficeID          string             `json:"officeId,omitempty"`
	OrderNo           string             `json:"orderNo,omitempty"`
	PaymentPage       *PaymentPage       `json:"paymentPage,omitempty"`
	PaymentStatusInfo *PaymentStatusInfo `json:"paymentStatusInfo,omitempty"`
	TransactionAmount *TransactionAmount `json:"transactionAmount,omitempty"`
}

type ApiResponse struct {
	ResponseMessageID   string `json:"responseMessageID,omitempty"`
	EventType           string `json:"eventType,omitempty"`
	ResponseCode        string `json:"responseCode,omitempty"`
	ResponseDescription string `json:"responseDescription,omitempty"`
	ResponseDateTime    string `json:"responseDateTime,omitempty"`
}

type PaymentPage struct {
	PaymentPageURL string `json:"paymentPageURL"`
	ValidTillUTC   string `json:"validTillUTC,omitempty"`
}

type PaymentStatusInfo struct {
	PaymentStatus     string `json:"paymentStatus,omitempty"`
	PaymentStep       string `json:"paymentStep,omitempty"`
	AuthorizationCode string `json:"authCode,omitempty"`
}

// PaymentPageURL returns the hosted payment page, if the response has one.
func (r *PaymentResponse) PaymentPageURL() string {
	if r == nil || r.PaymentPage == nil {
		return ""
	}
	return r.PaymentPage.PaymentPageURL
}
