package application

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hbl-card-payment/utils/context_http"
)

// WrapperLoggingHTTP puts a trace id on the request context and logs every
// request with its status and duration. Bodies are not logged; they carry
// envelopes.
func (us *PaymentApplication) WrapperLoggingHTTP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context_http.NewContextHTTP(c.Request.Context())
		ctx.StartSpan(c.Request.Method+" "+c.FullPath(), c.GetHeader(context_http.TraceHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(context_http.TraceHeader, ctx.TraceId)

		c.Next()

		logs := us.Logger.With(
			zap.String("trace-id", ctx.TraceId),
			zap.String("method", ctx.Name),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", ctx.Duration()),
		)
		if len(c.Errors) > 0 {
			logs.With(zap.String("error-context", c.Errors.String())).Error("response-error")
			return
		}
		logs.Info("response-success")
	}
}
