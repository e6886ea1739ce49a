package paco_service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hbl-card-payment/domain/constants"
	gwErrors "hbl-card-payment/utils/errors"
)

func Test_repoImpl_PrePaymentUI(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		want       string
		wantStatus int
		wantErr    bool
	}{
		{
			name:   "happy_case",
			status: http.StatusOK,
			body:   "a.b.c.d.e\n",
			want:   "a.b.c.d.e",
		},
		{
			name:       "gateway_error_not_decrypted",
			status:     http.StatusServiceUnavailable,
			body:       "not an envelope",
			wantStatus: http.StatusServiceUnavailable,
			wantErr:    true,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			wantStatus: http.StatusUnauthorized,
			wantErr:    true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, constants.PacoAccept, r.Header.Get("Accept"))
				assert.Equal(t, constants.PacoContentType, r.Header.Get("Content-Type"))
				assert.Equal(t, "api-key", r.Header.Get(constants.PacoApiKeyHeader))

				body, err := io.ReadAll(r.Body)
				assert.NoError(t, err)
				assert.Equal(t, "outbound.envelope", string(body))

				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			r := NewRepoImpl(server.URL, "api-key", time.Second, zap.NewNop())
			got, err := r.PrePaymentUI(context.Background(), "outbound.envelope")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.ErrorIs(t, err, gwErrors.ErrTransport)
			var gwErr *gwErrors.GatewayError
			require.ErrorAs(t, err, &gwErr)
			assert.Equal(t, tt.wantStatus, gwErr.StatusCode)
			assert.Equal(t, gwErrors.PhaseTransport, gwErr.Phase)
			assert.Empty(t, got)
		})
	}
}

func Test_repoImpl_PrePaymentUI_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	r := NewRepoImpl(server.URL, "api-key", 50*time.Millisecond, zap.NewNop())
	_, err := r.PrePaymentUI(context.Background(), "outbound.envelope")

	require.ErrorIs(t, err, gwErrors.ErrTransport)
	assert.Equal(t, gwErrors.PhaseTransport, gwErrors.PhaseOf(err))
}

func Test_repoImpl_PrePaymentUI_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRepoImpl("http://127.0.0.1:1", "api-key", time.Second, zap.NewNop())
	_, err := r.PrePaymentUI(ctx, "outbound.envelope")

	assert.ErrorIs(t, err, gwErrors.ErrTransport)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRepoImpl_DefaultTimeout(t *testing.T) {
	r := NewRepoImpl(constants.PacoPrePaymentUIURL, "api-key", 0, zap.NewNop())
	assert.Equal(t, 100*time.Second, r.client.GetClient().Timeout)
}
