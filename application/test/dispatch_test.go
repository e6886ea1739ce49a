package test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"hbl-card-payment/application"
	"hbl-card-payment/domain/repositories/mocks"
	"hbl-card-payment/utils/gpooling"
)

type traceKey struct{}

func newAppWithSink(t *testing.T, th *MockService, poolSize int, sink *mocks.IPaymentEvent) *application.PaymentApplication {
	pool, err := gpooling.NewPooling(poolSize, zap.NewNop())
	require.NoError(t, err)
	return application.NewPaymentApplicationWith(th.Config, zap.NewNop(), pool,
		th.Keys.KeyPairSet(), th.PacoRepository, sink, th.Alert)
}

func TestPaymentApplication_StalledSinkDoesNotDelaySubmit(t *testing.T) {
	th := NewTestPaymentApplication()
	gateway := NewFakeGateway(th)
	th.PacoRepository.On("PrePaymentUI", mock.Anything, mock.Anything).Return(gateway.Answer, nil)

	release := make(chan struct{})
	started := make(chan struct{}, 1)
	sink := new(mocks.IPaymentEvent)
	sink.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		started <- struct{}{}
		<-release
	}).Return(nil)
	sink.On("Close").Return(nil)

	app := newAppWithSink(t, th, 1, sink)

	_, err := app.Submit(context.Background(), "ORD1", "item", decimal.NewFromInt(1))
	require.NoError(t, err)
	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("first event was never published")
	}

	done := make(chan error, 1)
	go func() {
		_, err := app.Submit(context.Background(), "ORD2", "item", decimal.NewFromInt(1))
		done <- err
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		close(release)
		t.Fatal("Submit waited for a stalled event sink")
	}

	close(release)
	require.NoError(t, app.Shutdown(2*time.Second))
	sink.AssertNumberOfCalls(t, "Publish", 1)
}

func TestPaymentApplication_ShutdownDrainsBeforeClose(t *testing.T) {
	th := NewTestPaymentApplication()
	gateway := NewFakeGateway(th)

	var published, publishedBeforeClose int32
	sink := new(mocks.IPaymentEvent)
	sink.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		time.Sleep(100 * time.Millisecond)
		atomic.StoreInt32(&published, 1)
	}).Return(nil)
	sink.On("Close").Run(func(args mock.Arguments) {
		atomic.StoreInt32(&publishedBeforeClose, atomic.LoadInt32(&published))
	}).Return(nil)

	app := newAppWithSink(t, th, 2, sink)

	_, err := app.HandleNotification(context.Background(), gateway.Notification("ORD123"))
	require.NoError(t, err)

	require.NoError(t, app.Shutdown(2*time.Second))
	assert.Equal(t, int32(1), atomic.LoadInt32(&publishedBeforeClose))
	sink.AssertCalled(t, "Close")
}

func TestPaymentApplication_DispatchKeepsCallerValues(t *testing.T) {
	th := NewTestPaymentApplication()
	gateway := NewFakeGateway(th)

	seen := make(chan context.Context, 1)
	sink := new(mocks.IPaymentEvent)
	sink.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		seen <- args.Get(0).(context.Context)
	}).Return(nil)
	sink.On("Close").Return(nil)

	app := newAppWithSink(t, th, 2, sink)

	// The request context is usually gone by the time the event is published.
	ctx, cancel := context.WithCancel(context.WithValue(context.Background(), traceKey{}, "trace-1"))
	cancel()

	_, err := app.HandleNotification(ctx, gateway.Notification("ORD123"))
	require.NoError(t, err)

	select {
	case got := <-seen:
		assert.Equal(t, "trace-1", got.Value(traceKey{}))
		assert.NoError(t, got.Err())
		deadline, ok := got.Deadline()
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, 5*time.Second)
	case <-time.After(2 * time.Second):
		t.Fatal("event was never published")
	}

	require.NoError(t, app.Shutdown(time.Second))
}
