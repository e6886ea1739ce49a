package test

import (
	"context"
	"crypto/rsa"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"hbl-card-payment/application"
	"hbl-card-payment/domain/constants"
	"hbl-card-payment/domain/entities"
	pacoEntities "hbl-card-payment/domain/entities/paco_gateway"
	"hbl-card-payment/domain/repositories/mocks"
	"hbl-card-payment/utils/configs"
	"hbl-card-payment/utils/crypt"
	"hbl-card-payment/utils/crypt/testkeys"
	"hbl-card-payment/utils/gpooling"
)

type MockService struct {
	Config             *configs.Config
	Keys               *testkeys.Keys
	PacoRepository     *mocks.PacoGatewayRepository
	Events             *mocks.IPaymentEvent
	Alert              *mocks.IAlert
	PaymentApplication *application.PaymentApplication

	Published chan entities.PaymentEvent
	Alerts    chan string
}

func NewTestPaymentApplication() *MockService {
	config, err := configs.LoadTestConfig("../../")
	if err != nil {
		panic(err)
	}

	pool, err := gpooling.NewPooling(config.MaxPoolSize, zap.NewNop())
	if err != nil {
		panic(err)
	}

	th := &MockService{
		Config:         config,
		Keys:           testkeys.Get(),
		PacoRepository: new(mocks.PacoGatewayRepository),
		Events:         new(mocks.IPaymentEvent),
		Alert:          new(mocks.IAlert),
		Published:      make(chan entities.PaymentEvent, 16),
		Alerts:         make(chan string, 16),
	}

	th.Events.On("Publish", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		th.Published <- args.Get(1).(entities.PaymentEvent)
	}).Return(nil)
	th.Alert.On("SendAlert", mock.Anything).Run(func(args mock.Arguments) {
		th.Alerts <- args.String(0)
	}).Return(nil)

	th.PaymentApplication = application.NewPaymentApplicationWith(config, zap.NewNop(), pool,
		th.Keys.KeyPairSet(), th.PacoRepository, th.Events, th.Alert)

	return th
}

// NextEvent waits for the next published payment event.
func (th *MockService) NextEvent() (entities.PaymentEvent, bool) {
	select {
	case event := <-th.Published:
		return event, true
	case <-time.After(2 * time.Second):
		return entities.PaymentEvent{}, false
	}
}

// NextAlert waits briefly for a security alert.
func (th *MockService) NextAlert(wait time.Duration) (string, bool) {
	select {
	case msg := <-th.Alerts:
		return msg, true
	case <-time.After(wait):
		return "", false
	}
}

// FakeGateway plays the PACO side of an exchange: it opens the merchant's
// envelope and answers with a sealed response.
type FakeGateway struct {
	Keys     *testkeys.Keys
	ApiKey   string
	Response pacoEntities.PaymentResponse

	// Adjust changes the answer's claims before they are sealed.
	Adjust func(*pacoEntities.PaymentClaims)
	// SigningKey replaces PACO's signing key when set.
	SigningKey *rsa.PrivateKey

	mu       sync.Mutex
	Received []*pacoEntities.PaymentClaims
}

func (g *FakeGateway) Open(envelope string) (*pacoEntities.PaymentClaims, error) {
	return crypt.Open(envelope, g.Keys.PacoEncryption, &g.Keys.MerchantSigning.PublicKey, constants.PacoAudience, g.ApiKey)
}

// Answer returns the sealed response envelope for an outbound envelope.
func (g *FakeGateway) Answer(ctx context.Context, envelope string) string {
	request, err := g.Open(envelope)
	if err != nil {
		panic(err)
	}
	g.mu.Lock()
	g.Received = append(g.Received, request)
	g.mu.Unlock()

	return g.Notification(request.Request.OrderNo)
}

// Notification seals the configured response for orderNo as the gateway
// would for a backend notification.
func (g *FakeGateway) Notification(orderNo string) string {
	now := time.Now()
	response := g.Response
	response.OrderNo = orderNo

	claims := pacoEntities.PaymentClaims{
		Response:  &response,
		Issuer:    constants.PacoIssuer,
		Audience:  pacoEntities.Audience{g.ApiKey},
		IssuedAt:  now.Unix(),
		NotBefore: now.Unix(),
		ExpiresAt: now.Add(time.Hour).Unix(),
	}
	if g.Adjust != nil {
		g.Adjust(&claims)
	}

	signingKey := g.Keys.PacoSigning
	if g.SigningKey != nil {
		signingKey = g.SigningKey
	}
	envelope, err := crypt.Seal(claims, signingKey, &g.Keys.MerchantDecryption.PublicKey, "merchant-kid")
	if err != nil {
		panic(err)
	}
	return envelope
}

func (g *FakeGateway) LastRequest() *pacoEntities.PaymentClaims {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.Received) == 0 {
		return nil
	}
	return g.Received[len(g.Received)-1]
}

func NewFakeGateway(th *MockService) *FakeGateway {
	return &FakeGateway{
		Keys:   th.Keys,
		ApiKey: th.Config.Paco.ApiKey,
		Response: pacoEntities.PaymentResponse{
			ApiResponse: pacoEntities.ApiResponse{
				ResponseCode:        "PC-B050000",
				ResponseDescription: "Success",
			},
			OfficeID:    th.Config.Paco.MerchantID,
			PaymentPage: &pacoEntities.PaymentPage{PaymentPageURL: "https://paco.example/page/abc"},
		},
	}
}
