package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTestConfig(t *testing.T) {
	config, err := LoadTestConfig("../../")
	require.NoError(t, err)

	assert.Equal(t, "9104137120", config.Paco.MerchantID)
	assert.Equal(t, "test-company-api-key", config.Paco.ApiKey)
	assert.Equal(t, 5*time.Second, config.Paco.Timeout())
	assert.Equal(t, "log", config.Events.Sink)
	assert.NoError(t, config.Paco.Validate())
}

func TestLoadConfigFile_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paco.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"paco": {"merchant_id": "from-file", "api_key": "file-key"}}`), 0o600))

	t.Setenv("HBL_PACO_API_KEY", "env-key")
	t.Setenv("HBL_TELEGRAM_CHANNEL_ID", "-1001234")

	config, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "from-file", config.Paco.MerchantID)
	assert.Equal(t, "env-key", config.Paco.ApiKey)
	assert.Equal(t, int64(-1001234), config.Telegram.ChannelId)
	assert.Equal(t, "8080", config.Port)
	assert.Equal(t, 100*time.Second, config.Paco.Timeout())
	assert.Equal(t, "paco.payment", config.Events.Topic)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestPacoConfig_Validate(t *testing.T) {
	err := PacoConfig{MerchantID: "M1", CallbackURL: " "}.Validate()
	require.Error(t, err)
	assert.Equal(t, "missing config: paco.api_key, paco.callback_url, paco.encryption_key_id", err.Error())
}
