package presenters

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"hbl-card-payment/application"
	entities "hbl-card-payment/domain/entities/paco_gateway"
	"hbl-card-payment/utils/amount"
	gwErrors "hbl-card-payment/utils/errors"
)

const maxNotificationBytes = 1 << 20

type PaymentService interface {
	Submit(ctx context.Context, orderNo, productDescription string, value decimal.Decimal, opts ...application.RequestOption) (*entities.PaymentClaims, error)
	HandleNotification(ctx context.Context, envelope string) (*entities.PaymentClaims, error)
}

type SubmitRequest struct {
	OrderNo            string                 `json:"order_no" binding:"required"`
	ProductDescription string                 `json:"product_description" binding:"required"`
	Amount             interface{}            `json:"amount" binding:"required"`
	Overrides          map[string]interface{} `json:"overrides"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Phase string `json:"phase,omitempty"`
}

type PaymentHTTP struct {
	Service PaymentService
	Logger  *zap.Logger
}

func NewPaymentHTTP(service PaymentService, logger *zap.Logger) *PaymentHTTP {
	return &PaymentHTTP{Service: service, Logger: logger}
}

// NewRouter wires the payment routes behind recovery and the given
// middlewares.
func NewRouter(service PaymentService, logger *zap.Logger, middlewares ...gin.HandlerFunc) *gin.Engine {
	p := NewPaymentHTTP(service, logger)

	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		err := gwErrors.RecoveryError(recovered)
		logger.With(zap.Error(err)).Error("error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}))
	router.Use(middlewares...)

	router.GET("/healthz", p.Health)

	v1 := router.Group("/api/v1/payments")
	v1.POST("", p.Submit)
	v1.POST("/notify", p.Notify)

	return router
}

func (p *PaymentHTTP) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (p *PaymentHTTP) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	value, err := parseAmount(req.Amount)
	if err != nil {
		p.fail(c, err)
		return
	}

	opts := make([]application.RequestOption, 0, len(req.Overrides))
	for key, v := range req.Overrides {
		opts = append(opts, application.Override(key, v))
	}

	claims, err := p.Service.Submit(c.Request.Context(), req.OrderNo, req.ProductDescription, value, opts...)
	if err != nil {
		p.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

// Notify receives the gateway's backend notification, a raw JOSE body.
func (p *PaymentHTTP) Notify(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxNotificationBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "notification body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable body"})
		return
	}

	claims, err := p.Service.HandleNotification(c.Request.Context(), strings.TrimSpace(string(body)))
	if err != nil {
		p.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

func (p *PaymentHTTP) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(gwErrors.HTTPStatus(err), ErrorResponse{
		Error: err.Error(),
		Phase: string(gwErrors.PhaseOf(err)),
	})
}

// parseAmount accepts the amount as a JSON string or number.
func parseAmount(raw interface{}) (decimal.Decimal, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return decimal.Zero, gwErrors.NewGatewayError(gwErrors.PhaseBuild, gwErrors.ErrInvalidAmount, err)
	}
	value, err := amount.ParseAmount(s)
	if err != nil {
		return decimal.Zero, gwErrors.Wrap(gwErrors.PhaseBuild, gwErrors.ErrInvalidAmount, err)
	}
	return value, nil
}
