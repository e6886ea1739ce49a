package telegram

import (
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

const DefaultTimeout = 5 * time.Second

type repoImpl struct {
	BotToken  string
	ChannelId int64
	client    *http.Client
}

// SendAlert posts message to the configured channel. Every API call made on
// the way is bounded by the client timeout.
func (r repoImpl) SendAlert(message string) error {
	bot, err := tgbotapi.NewBotAPIWithClient(r.BotToken, r.client)
	if err != nil {
		return err
	}

	_, err = bot.Send(tgbotapi.NewMessage(r.ChannelId, message))
	return err
}

func NewRepoImpl(botToken string, channelId int64, timeout time.Duration) *repoImpl {
	return NewRepoImplWithClient(botToken, channelId, &http.Client{Timeout: timeout})
}

func NewRepoImplWithClient(botToken string, channelId int64, client *http.Client) *repoImpl {
	return &repoImpl{
		BotToken:  botToken,
		ChannelId: channelId,
		client:    client,
	}
}
