package paco_service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"hbl-card-payment/domain/constants"
	gwErrors "hbl-card-payment/utils/errors"
)

const timeout = 100 * time.Second

type repoImpl struct {
	Uri    string
	ApiKey string
	Logger *zap.Logger
	client *resty.Client
}

// PrePaymentUI posts an encrypted envelope to the prePaymentUi endpoint and
// returns the encrypted envelope the gateway answers with.
func (r repoImpl) PrePaymentUI(ctx context.Context, envelope string) (string, error) {
	return r.httpRequest(ctx, struct {
		Uri  string
		Body string
	}{
		Uri:  r.Uri,
		Body: envelope,
	})
}

func (r repoImpl) httpRequest(ctx context.Context, request struct {
	Uri  string
	Body string
}) (string, error) {
	logs := r.Logger.With(zap.String("uri", request.Uri), zap.Int("request_length", len(request.Body)))
	logs.Info("paco_request")

	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("Accept", constants.PacoAccept).
		SetHeader("Content-Type", constants.PacoContentType).
		SetHeader(constants.PacoApiKeyHeader, r.ApiKey).
		SetBody(request.Body).
		Post(request.Uri)
	if err != nil {
		logs.With(zap.Error(err)).Error("paco_request_failed")
		return "", &gwErrors.GatewayError{Phase: gwErrors.PhaseTransport, Kind: gwErrors.ErrTransport, Err: err}
	}

	logs = logs.With(
		zap.Int("status", resp.StatusCode()),
		zap.Int("response_length", len(resp.Body())),
		zap.Duration("duration", resp.Time()),
	)

	if !resp.IsSuccess() {
		logs.Error("PACO GATEWAY ERROR: " + http.StatusText(resp.StatusCode()))
		return "", &gwErrors.GatewayError{
			Phase:      gwErrors.PhaseTransport,
			Kind:       gwErrors.ErrTransport,
			StatusCode: resp.StatusCode(),
			Err:        fmt.Errorf("unexpected status %s", resp.Status()),
		}
	}

	logs.Info("http_request_data")

	return strings.TrimSpace(resp.String()), nil
}

// NewRepoImpl builds the transport for uri. A non-positive timeout falls back
// to 100 seconds.
func NewRepoImpl(uri, apiKey string, requestTimeout time.Duration, logger *zap.Logger) *repoImpl {
	if requestTimeout <= 0 {
		requestTimeout = timeout
	}

	return &repoImpl{
		Uri:    uri,
		ApiKey: apiKey,
		Logger: logger,
		client: resty.New().SetTimeout(requestTimeout),
	}
}
