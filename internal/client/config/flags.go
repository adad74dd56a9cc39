package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/locator/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-d string   path of the local sqlite database
//	-l string   log level (debug, info, warn, error)
//	-t int      request timeout in seconds
//
// Only these flags are taken from os.Args, so other components may define
// their own.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "API base URL")
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "local database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
