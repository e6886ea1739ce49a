package context_http

import (
	"context"
	"time"

	"hbl-card-payment/utils/helpers"
)

const TraceHeader = "X-Request-Id"

type traceKey struct{}

type CtxHTTP struct {
	context.Context
	TraceId string
	Name    string
	Started time.Time
	Elapsed time.Duration
}

// StartSpan stamps the context with a trace id, reusing traceID when the
// caller sent one.
func (c *CtxHTTP) StartSpan(name, traceID string) {
	if traceID == "" {
		traceID = helpers.GetUUId()
	}
	c.TraceId = traceID
	c.Name = name
	c.Started = time.Now()
	c.Context = context.WithValue(c.Context, traceKey{}, traceID)
}

func (c *CtxHTTP) Duration() time.Duration {
	c.Elapsed = time.Since(c.Started)
	return c.Elapsed
}

// TraceID returns the trace id StartSpan put on ctx, if any.
func TraceID(ctx context.Context) string {
	id, _ := ctx.Value(traceKey{}).(string)
	return id
}

func NewContextHTTP(ctx context.Context) *CtxHTTP {
	return &CtxHTTP{Context: ctx}
}
