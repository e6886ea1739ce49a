package entities

import (
	"encoding/json"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PaymentClaims is the claim set of a PACO token. Outbound tokens carry
// Request, tokens issued by the gateway carry Response.
type PaymentClaims struct {
	Request       *PaymentRequest  `json:"request,omitempty"`
	Response      *PaymentResponse `json:"response,omitempty"`
	Issuer        string           `json:"iss"`
	Audience      Audience         `json:"aud,omitempty"`
	CompanyApiKey string           `json:"CompanyApiKey,omitempty"`
	IssuedAt      int64            `json:"iat"`
	NotBefore     int64            `json:"nbf"`
	ExpiresAt     int64            `json:"exp"`
}

// NewPaymentClaims stamps iat and nbf with now and exp one lifetime later.
func NewPaymentClaims(request PaymentRequest, issuer, audience, apiKey string, now time.Time, lifetime time.Duration) PaymentClaims {
	return PaymentClaims{
		Request:       &request,
		Issuer:        issuer,
		Audience:      Audience{audience},
		CompanyApiKey: apiKey,
		IssuedAt:      now.Unix(),
		NotBefore:     now.Unix(),
		ExpiresAt:     now.Add(lifetime).Unix(),
	}
}

func (c PaymentClaims) GetExpirationTime() (*jwt.NumericDate, error) {
	return numericDate(c.ExpiresAt), nil
}

func (c PaymentClaims) GetIssuedAt() (*jwt.NumericDate, error) {
	return numericDate(c.IssuedAt), nil
}

func (c PaymentClaims) GetNotBefore() (*jwt.NumericDate, error) {
	return numericDate(c.NotBefore), nil
}

func (c PaymentClaims) GetIssuer() (string, error) {
	return c.Issuer, nil
}

func (c PaymentClaims) GetSubject() (string, error) {
	return "", nil
}

func (c PaymentClaims) GetAudience() (jwt.ClaimStrings, error) {
	return jwt.ClaimStrings(c.Audience), nil
}

func numericDate(sec int64) *jwt.NumericDate {
	if sec == 0 {
		return nil
	}
	return jwt.NewNumericDate(time.Unix(sec, 0))
}

// Audience is written as a plain string when it has a single value, which is
// what the gateway sends and expects, and read from either form.
type Audience []string

func (a Audience) MarshalJSON() ([]byte, error) {
	if len(a) == 1 {
		return json.Marshal(a[0])
	}
	return json.Marshal([]string(a))
}

func (a *Audience) UnmarshalJSON(data []byte) error {
	var values jwt.ClaimStrings
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	*a = Audience(values)
	return nil
}
