package entities

import (
	"encoding/json"
	"reflect"
	"strings"
)

// PaymentRequest is the prePaymentUi request document sent inside the
// "request" claim.
type PaymentRequest struct {
	OfficeID                  string                    `json:"officeId"`
	OrderNo                   string                    `json:"orderNo"`
	ProductDescription        string                    `json:"productDescription"`
	PaymentType               string                    `json:"paymentType"`
	PaymentCategory           string                    `json:"paymentCategory"`
	StoreCardDetails          StoreCardDetails          `json:"storeCardDetails"`
	InstallmentPaymentDetails InstallmentPaymentDetails `json:"installmentPaymentDetails"`
	MCPFlag                   string                    `json:"mcpFlag"`
	Request3dsFlag            string                    `json:"request3dsFlag"`
	TransactionAmount         TransactionAmount         `json:"transactionAmount"`
	NotificationURLs          NotificationURLs          `json:"notificationURLs"`
	PurchaseItems             []PurchaseItem            `json:"purchaseItems"`
	CustomFieldList           []CustomField             `json:"customFieldList"`
	ApiRequest                ApiRequest                `json:"apiRequest"`

	// Extensions are extra top-level fields merged over the document when it
	// is serialised. A key that collides with a field above replaces it.
	Extensions map[string]interface{} `json:"-"`
}

type ApiRequest struct {
	RequestMessageID string `json:"requestMessageID"`
	RequestDateTime  string `json:"requestDateTime"`
	Language         string `json:"language"`
}

type StoreCardDetails struct {
	StoreCardFlag      string `json:"storeCardFlag"`
	StoredCardUniqueID string `json:"storedCardUniqueID"`
}

type InstallmentPaymentDetails struct {
	IPPFlag           string  `json:"ippFlag"`
	InstallmentPeriod int     `json:"installmentPeriod"`
	InterestType      *string `json:"interestType"`
}

type TransactionAmount struct {
	AmountText    string `json:"amountText"`
	CurrencyCode  string `json:"currencyCode"`
	DecimalPlaces int    `json:"decimalPlaces"`
	Amount        string `json:"amount"`
}

type NotificationURLs struct {
	ConfirmationURL string `json:"confirmationURL"`
	FailedURL       string `json:"failedURL"`
	CancellationURL string `json:"cancellationURL"`
	BackendURL      string `json:"backendURL"`
}

type PurchaseItem struct {
	PurchaseItemType        string             `json:"purchaseItemType,omitempty"`
	ReferenceNo             string             `json:"referenceNo,omitempty"`
	PurchaseItemDescription string             `json:"purchaseItemDescription,omitempty"`
	PurchaseItemPrice       *TransactionAmount `json:"purchaseItemPrice,omitempty"`
	SubMerchantID           string             `json:"subMerchantID,omitempty"`
}

type CustomField struct {
	FieldName  string `json:"fieldName"`
	FieldValue string `json:"fieldValue"`
}

// requestFields lists the json names owned by PaymentRequest's own fields.
var requestFields = func() map[string]bool {
	fields := map[string]bool{}
	t := reflect.TypeOf(PaymentRequest{})
	for i := 0; i < t.NumField(); i++ {
		name := strings.Split(t.Field(i).Tag.Get("json"), ",")[0]
		if name != "" && name != "-" {
			fields[name] = true
		}
	}
	return fields
}()

func (r PaymentRequest) MarshalJSON() ([]byte, error) {
	type document PaymentRequest
	doc := document(r)
	if doc.PurchaseItems == nil {
		doc.PurchaseItems = []PurchaseItem{}
	}
	if doc.CustomFieldList == nil {
		doc.CustomFieldList = []CustomField{}
	}

	b, err := json.Marshal(doc)
	if err != nil || len(r.Extensions) == 0 {
		return b, err
	}

	fields := map[string]json.RawMessage{}
	if err = json.Unmarshal(b, &fields); err != nil {
		return nil, err
	}
	for key, value := range r.Extensions {
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = raw
	}

	return json.Marshal(fields)
}

func (r *PaymentRequest) UnmarshalJSON(data []byte) error {
	type document PaymentRequest
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	for key, raw := range fields {
		if requestFields[key] {
			continue
		}
		var value interface{}
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		if doc.Extensions == nil {
			doc.Extensions = map[string]interface{}{}
		}
		doc.Extensions[key] = value
	}

	*r = PaymentRequest(doc)
	return nil
}
