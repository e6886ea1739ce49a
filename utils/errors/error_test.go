package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGatewayError(t *testing.T) {
	cause := fmt.Errorf("%w: tag mismatch", ErrDecryption)
	err := Wrap(PhaseDecrypt, ErrSignature, cause)

	var gwErr *GatewayError
	assert.True(t, errors.As(err, &gwErr))
	assert.Equal(t, PhaseDecrypt, gwErr.Phase)
	assert.ErrorIs(t, err, ErrDecryption)
	assert.NotErrorIs(t, err, ErrSignature)
	assert.Equal(t, "decrypt: envelope decryption failed: tag mismatch", err.Error())
}

func TestGatewayError_StatusCode(t *testing.T) {
	err := &GatewayError{Phase: PhaseTransport, Kind: ErrTransport, StatusCode: 503, Err: errors.New("unexpected status 503")}
	assert.Equal(t, "transport: gateway transport failure: unexpected status 503 (status 503)", err.Error())
	assert.ErrorIs(t, err, ErrTransport)
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(PhaseBuild, ErrInvalidAmount, nil))

	inner := NewGatewayError(PhaseTransport, ErrTransport, errors.New("refused"))
	assert.Same(t, inner, Wrap(PhaseVerify, ErrSignature, fmt.Errorf("outer: %w", inner)))

	untyped := Wrap(PhaseEncrypt, ErrEnvelope, errors.New("boom"))
	assert.ErrorIs(t, untyped, ErrEnvelope)
	assert.Equal(t, PhaseEncrypt, PhaseOf(untyped))
}

func TestIsSecurityEvent(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "decryption", err: Wrap(PhaseDecrypt, ErrDecryption, ErrDecryption), want: true},
		{name: "signature", err: Wrap(PhaseVerify, ErrSignature, ErrSignature), want: true},
		{name: "claims", err: Wrap(PhaseVerify, ErrSignature, ErrClaimValidation), want: true},
		{name: "transport", err: Wrap(PhaseTransport, ErrTransport, errors.New("timeout")), want: false},
		{name: "amount", err: ErrInvalidAmount, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSecurityEvent(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "amount", err: Wrap(PhaseBuild, ErrInvalidAmount, ErrInvalidAmount), want: http.StatusBadRequest},
		{name: "transport", err: Wrap(PhaseTransport, ErrTransport, errors.New("refused")), want: http.StatusBadGateway},
		{name: "claims", err: Wrap(PhaseVerify, ErrSignature, ErrClaimValidation), want: http.StatusBadGateway},
		{name: "key_format", err: Wrap(PhaseSign, ErrEnvelope, ErrKeyFormat), want: http.StatusInternalServerError},
		{name: "config", err: NewGatewayError(PhaseConfig, ErrConfig, errors.New("missing")), want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestRecoveryError(t *testing.T) {
	cause := errors.New("nil map")
	assert.Same(t, cause, RecoveryError(cause))
	assert.EqualError(t, RecoveryError("boom"), "boom")
}
