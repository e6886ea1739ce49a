package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Phase names the step of a gateway exchange that failed.
type Phase string

const (
	PhaseConfig    Phase = "config"
	PhaseBuild     Phase = "build"
	PhaseSign      Phase = "sign"
	PhaseEncrypt   Phase = "encrypt"
	PhaseTransport Phase = "transport"
	PhaseDecrypt   Phase = "decrypt"
	PhaseVerify    Phase = "verify"
)

var (
	ErrConfig          = errors.New("invalid configuration")
	ErrKeyFormat       = errors.New("malformed key material")
	ErrInvalidAmount   = errors.New("amount out of representable range")
	ErrEnvelope        = errors.New("envelope construction failed")
	ErrTransport       = errors.New("gateway transport failure")
	ErrDecryption      = errors.New("envelope decryption failed")
	ErrSignature       = errors.New("token signature invalid")
	ErrClaimValidation = errors.New("token claims rejected")
)

// GatewayError is returned by every gateway operation. Kind is one of the
// sentinels above, Err the underlying cause.
type GatewayError struct {
	Phase      Phase
	Kind       error
	StatusCode int
	Err        error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Phase, e.Kind)
	if e.Err != nil && errors.Is(e.Err, e.Kind) {
		msg = fmt.Sprintf("%s: %v", e.Phase, e.Err)
	} else if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	return msg
}

func (e *GatewayError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func NewGatewayError(phase Phase, kind, err error) *GatewayError {
	return &GatewayError{Phase: phase, Kind: kind, Err: err}
}

// Wrap tags err with phase. Errors that already carry a phase keep it; an
// untyped cause is classified as fallback.
func Wrap(phase Phase, fallback, err error) error {
	if err == nil {
		return nil
	}
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr
	}
	return NewGatewayError(phase, KindOf(err, fallback), err)
}

// KindOf returns the sentinel err matches, or fallback.
func KindOf(err, fallback error) error {
	for _, kind := range []error{ErrConfig, ErrKeyFormat, ErrInvalidAmount, ErrEnvelope, ErrTransport, ErrDecryption, ErrSignature, ErrClaimValidation} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return fallback
}

// IsSecurityEvent reports whether err is an inbound envelope rejection.
func IsSecurityEvent(err error) bool {
	return errors.Is(err, ErrDecryption) || errors.Is(err, ErrSignature) || errors.Is(err, ErrClaimValidation)
}

func PhaseOf(err error) Phase {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Phase
	}
	return ""
}

// HTTPStatus maps an error to the status the API answers with.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, ErrTransport), IsSecurityEvent(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RecoveryError converts a recovered panic value into an error.
func RecoveryError(p interface{}) error {
	if err, ok := p.(error); ok {
		return err
	}
	return fmt.Errorf("%v", p)
}
