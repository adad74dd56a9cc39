package devserver

import "time"

// TestConfig is a Config suited to tests: cheap hashing and a fixed root
// account (root@locator.local / root).
func TestConfig() *Config {
	return &Config{
		Addr:         "127.0.0.1:0",
		JWTSecret:    "test-secret",
		TokenTTL:     time.Hour,
		LogLevel:     "error",
		RootEmail:    "root@locator.local",
		RootPassword: "root",
		BcryptCost:   4,
	}
}
