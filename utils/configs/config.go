package configs

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string         `json:"port" mapstructure:"port"`
	ENV         string         `json:"env" mapstructure:"env"`
	MaxPoolSize int            `json:"max_pool_size" mapstructure:"max_pool_size"`
	Paco        PacoConfig     `json:"paco" mapstructure:"paco"`
	Events      EventsConfig   `json:"events" mapstructure:"events"`
	Telegram    TelegramConfig `json:"telegram" mapstructure:"telegram"`
}

type PacoConfig struct {
	MerchantID      string   `json:"merchant_id" mapstructure:"merchant_id"`
	ApiKey          string   `json:"api_key" mapstructure:"api_key"`
	EncryptionKeyID string   `json:"encryption_key_id" mapstructure:"encryption_key_id"`
	CallbackURL     string   `json:"callback_url" mapstructure:"callback_url"`
	TimeoutSeconds  int      `json:"timeout_seconds" mapstructure:"timeout_seconds"`
	Keys            PacoKeys `json:"keys" mapstructure:"keys"`
}

// PacoKeys holds the four raw key bodies (base64 DER without PEM armour).
type PacoKeys struct {
	MerchantSigningPrivateKey    string `json:"merchant_signing_private_key" mapstructure:"merchant_signing_private_key"`
	PacoEncryptionPublicKey      string `json:"paco_encryption_public_key" mapstructure:"paco_encryption_public_key"`
	MerchantDecryptionPrivateKey string `json:"merchant_decryption_private_key" mapstructure:"merchant_decryption_private_key"`
	PacoSigningPublicKey         string `json:"paco_signing_public_key" mapstructure:"paco_signing_public_key"`
}

// EventsConfig selects where payment events go. Sink is one of "kafka",
// "rabbitmq", "mqtt" or empty for none.
type EventsConfig struct {
	Sink         string `json:"sink" mapstructure:"sink"`
	Topic        string `json:"topic" mapstructure:"topic"`
	KafkaBrokers string `json:"kafka_brokers" mapstructure:"kafka_brokers"`
	QueueUri     string `json:"queue_uri" mapstructure:"queue_uri"`
	MQTTUri      string `json:"mqtt_uri" mapstructure:"mqtt_uri"`
	MQTTUsername string `json:"mqtt_username" mapstructure:"mqtt_username"`
	MQTTPassword string `json:"mqtt_password" mapstructure:"mqtt_password"`
}

type TelegramConfig struct {
	BotToken  string `json:"bot_token" mapstructure:"bot_token"`
	ChannelId int64  `json:"channel_id" mapstructure:"channel_id"`
}

// Timeout is the per-request deadline towards the gateway.
func (c PacoConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 100 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c PacoConfig) Validate() error {
	missing := []string{}
	for name, value := range map[string]string{
		"paco.merchant_id":       c.MerchantID,
		"paco.api_key":           c.ApiKey,
		"paco.encryption_key_id": c.EncryptionKeyID,
		"paco.callback_url":      c.CallbackURL,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("missing config: %s", strings.Join(missing, ", "))
	}
	return nil
}

var defaults = map[string]interface{}{
	"port":                                      "8080",
	"env":                                       "development",
	"max_pool_size":                             100,
	"paco.merchant_id":                          "",
	"paco.api_key":                              "",
	"paco.encryption_key_id":                    "",
	"paco.callback_url":                         "",
	"paco.timeout_seconds":                      100,
	"paco.keys.merchant_signing_private_key":    "",
	"paco.keys.paco_encryption_public_key":      "",
	"paco.keys.merchant_decryption_private_key": "",
	"paco.keys.paco_signing_public_key":         "",
	"events.sink":                               "",
	"events.topic":                              "paco.payment",
	"events.kafka_brokers":                      "",
	"events.queue_uri":                          "",
	"events.mqtt_uri":                           "",
	"events.mqtt_username":                      "",
	"events.mqtt_password":                      "",
	"telegram.bot_token":                        "",
	"telegram.channel_id":                       0,
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvPrefix("HBL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("json")
	return v
}

func load(v *viper.Viper) (*Config, error) {
	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	result := &Config{}
	err = v.Unmarshal(result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// LoadConfig reads ./config.json, environment variables prefixed with HBL_
// override file values (HBL_PACO_API_KEY, HBL_PACO_KEYS_PACO_SIGNING_PUBLIC_KEY...).
func LoadConfig() (*Config, error) {
	v := newViper()
	v.AddConfigPath("./")
	v.SetConfigName("config")
	return load(v)
}

// LoadConfigFile reads the config at an explicit path.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	return load(v)
}

// LoadTestConfig load config for running tests
func LoadTestConfig(configPath string) (*Config, error) {
	v := newViper()
	v.AddConfigPath(configPath)
	v.SetConfigName("config_test")
	return load(v)
}
