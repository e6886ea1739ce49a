package telegram

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stalledTransport never answers; it returns only once the request is cancelled.
type stalledTransport struct{}

func (stalledTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	<-req.Context().Done()
	return nil, req.Context().Err()
}

func TestSendAlert_StalledApiIsBounded(t *testing.T) {
	alert := NewRepoImplWithClient("token", 42, &http.Client{
		Transport: stalledTransport{},
		Timeout:   50 * time.Millisecond,
	})

	done := make(chan error, 1)
	go func() { done <- alert.SendAlert("envelope rejected") }()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("SendAlert did not honour the client timeout")
	}
}

func TestNewRepoImpl(t *testing.T) {
	alert := NewRepoImpl("token", 42, DefaultTimeout)

	assert.Equal(t, "token", alert.BotToken)
	assert.Equal(t, int64(42), alert.ChannelId)
	assert.Equal(t, DefaultTimeout, alert.client.Timeout)
}
