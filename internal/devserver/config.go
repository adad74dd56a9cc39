package devserver

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config is read from DEVSERVER_* environment variables.
type Config struct {
	Addr         string        `env:"DEVSERVER_ADDR, default=127.0.0.1:8080"`
	JWTSecret    string        `env:"DEVSERVER_JWT_SECRET, default=locator-dev-secret"`
	TokenTTL     time.Duration `env:"DEVSERVER_TOKEN_TTL, default=24h"`
	LogLevel     string        `env:"DEVSERVER_LOG_LEVEL, default=info"`
	LogPretty    bool          `env:"DEVSERVER_LOG_PRETTY, default=false"`
	RootEmail    string        `env:"DEVSERVER_ROOT_EMAIL, default=root@locator.local"`
	RootPassword string        `env:"DEVSERVER_ROOT_PASSWORD, default=root"`
	BcryptCost   int           `env:"DEVSERVER_BCRYPT_COST, default=10"`
}

// LoadConfig resolves the configuration through l; pass
// envconfig.OsLookuper() for the process environment.
func LoadConfig(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("devserver: failed to load configuration: %w", err)
	}
	return &cfg, nil
}
