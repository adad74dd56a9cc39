package config

import (
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config holds runtime settings for the locator console.
//
// The env tags name variables without the LOCATOR_ prefix, which parseEnv
// adds. "overwrite" lets a set variable replace a value from the JSON file.
type Config struct {
	APIBaseURL     string        `env:"API_BASE_URL, overwrite"`
	DBPath         string        `env:"DB_PATH, overwrite"`
	LogLevel       string        `env:"LOG_LEVEL, overwrite"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT, overwrite"`
	PageLimit      int           `env:"PAGE_LIMIT, overwrite"`
}

// EnvPrefix is prepended to every variable name read by parseEnv.
const EnvPrefix = "LOCATOR_"

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://35.178.201.94:80/"
	c.DBPath = "data/locator.db"
	c.LogLevel = "info"
	c.RequestTimeout = 10 * time.Second
	c.PageLimit = 100
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	if err := parseEnv(cfg, envconfig.OsLookuper()); err != nil {
		panic(err)
	}
	parseFlags(cfg)
	return cfg
}
