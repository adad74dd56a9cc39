package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://35.178.201.94:80/", c.APIBaseURL)
	assert.Equal(t, "data/locator.db", c.DBPath)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 100, c.PageLimit)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	for _, name := range []string{"API_BASE_URL", "DB_PATH", "LOG_LEVEL", "REQUEST_TIMEOUT", "PAGE_LIMIT"} {
		t.Setenv(EnvPrefix+name, "")
		os.Unsetenv(EnvPrefix + name)
	}

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "http://35.178.201.94:80/", cfg.APIBaseURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, "", "", map[string]any{
		"api_base_url": "http://json/",
		"db_path":      "json.db",
		"log_level":    "warn",
	})
	t.Setenv("LOCATOR_DB_PATH", "env.db")
	t.Setenv("LOCATOR_LOG_LEVEL", "error")

	os.Args = []string{"testbin", "-c", path, "-l", "debug"}

	cfg := LoadConfig()

	assert.Equal(t, "http://json/", cfg.APIBaseURL, "json over defaults")
	assert.Equal(t, "env.db", cfg.DBPath, "env over json")
	assert.Equal(t, "debug", cfg.LogLevel, "flags over env")
	assert.Equal(t, 100, cfg.PageLimit)
}
