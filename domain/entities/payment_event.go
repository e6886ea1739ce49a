package entities

import "hbl-card-payment/domain/constants"

// PaymentEvent is published after every gateway exchange and notification.
type PaymentEvent struct {
	EventID          string                     `json:"event_id"`
	Type             constants.PaymentEventType `json:"type"`
	OrderNo          string                     `json:"order_no,omitempty"`
	RequestMessageID string                     `json:"request_message_id,omitempty"`
	Amount           string                     `json:"amount,omitempty"`
	PaymentPageURL   string                     `json:"payment_page_url,omitempty"`
	ResponseCode     string                     `json:"response_code,omitempty"`
	Phase            string                     `json:"phase,omitempty"`
	Reason           string                     `json:"reason,omitempty"`
	CreatedAt        int64                      `json:"created_at"`
}
