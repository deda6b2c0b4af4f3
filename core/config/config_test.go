package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"

	require.NoError(t, Normalize(cfg))
	require.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	require.Equal(t, 6, cfg.Menu.PerPage)
	require.Equal(t, "No Category", cfg.Menu.NoCategory)
	require.Equal(t, "No Documentation", cfg.Menu.NoDocs)
	require.Equal(t, 180, cfg.View.TimeoutSeconds)
	require.Equal(t, 32, cfg.View.ClickQueueSize)
	require.Equal(t, 3*time.Minute, cfg.ViewTimeout())
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = "polling"

	require.NoError(t, Normalize(cfg))
	require.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeRejectsMissingToken(t *testing.T) {
	require.Error(t, Normalize(&Config{}))
	require.Error(t, Normalize(nil))
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.RunMode = RunModeWebhook
	require.Error(t, Normalize(cfg))

	cfg.Webhook.URL = "https://bot.example.com/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	require.NoError(t, Normalize(cfg))
	require.Equal(t, 8443, cfg.Webhook.Port)
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
telegram:
  token: "123:abc"
  admin_id: 42
logging:
  level: debug
  format: kv
menu:
  per_page: 4
view:
  timeout_seconds: 60
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.EqualValues(t, 42, cfg.Telegram.AdminID)
	require.Equal(t, 4, cfg.Menu.PerPage)
	require.Equal(t, 60*time.Second, cfg.ViewTimeout())
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
