package test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hbl-card-payment/application"
	"hbl-card-payment/domain/constants"
	"hbl-card-payment/infrastructure/service/paco_service"
	gwErrors "hbl-card-payment/utils/errors"
)

func newHTTPApplication(th *MockService, url string) *application.PaymentApplication {
	transport := paco_service.NewRepoImpl(url, th.Config.Paco.ApiKey, time.Second, zap.NewNop())
	return application.NewPaymentApplicationWith(th.Config, zap.NewNop(), th.PaymentApplication.IPool,
		th.Keys.KeyPairSet(), transport, th.Events, th.Alert)
}

func TestSubmit_OverHTTP(t *testing.T) {
	th := NewTestPaymentApplication()
	gateway := NewFakeGateway(th)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(constants.PacoApiKeyHeader) != th.Config.Paco.ApiKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", constants.PacoContentType)
		_, _ = io.WriteString(w, gateway.Answer(r.Context(), string(body)))
	}))
	defer server.Close()

	app := newHTTPApplication(th, server.URL)
	claims, err := app.Submit(context.Background(), "ORD123", "Test Item", decimal.RequireFromString("1234.56"))
	require.NoError(t, err)

	assert.Equal(t, "https://paco.example/page/abc", claims.Response.PaymentPageURL())
	assert.Equal(t, "000000123456", gateway.LastRequest().Request.TransactionAmount.AmountText)
	assert.Equal(t, "1234.56", gateway.LastRequest().Request.TransactionAmount.Amount)
}

func TestSubmit_OverHTTP_GatewayError(t *testing.T) {
	th := NewTestPaymentApplication()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "not an envelope")
	}))
	defer server.Close()

	app := newHTTPApplication(th, server.URL)
	_, err := app.Submit(context.Background(), "ORD123", "Test Item", decimal.NewFromInt(100))

	require.ErrorIs(t, err, gwErrors.ErrTransport)
	assert.NotErrorIs(t, err, gwErrors.ErrDecryption)

	var gwErr *gwErrors.GatewayError
	require.ErrorAs(t, err, &gwErr)
	assert.Equal(t, http.StatusInternalServerError, gwErr.StatusCode)
}
