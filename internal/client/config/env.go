package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// parseEnv overlays cfg with LOCATOR_* variables found through l.
func parseEnv(cfg *Config, l envconfig.Lookuper) error {
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   cfg,
		Lookuper: envconfig.PrefixLookuper(EnvPrefix, l),
	})
	if err != nil {
		return fmt.Errorf("config: failed to read environment: %w", err)
	}
	return nil
}
