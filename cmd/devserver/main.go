package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/locator/internal/buildinfo"
	"github.com/dmitrijs2005/locator/internal/devserver"
	"github.com/dmitrijs2005/locator/internal/logging"
	"github.com/sethvargo/go-envconfig"
)

const shutdownTimeout = 5 * time.Second

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := devserver.LoadConfig(ctx, envconfig.OsLookuper())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logging.NewZerologLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel), cfg.LogPretty)

	srv, err := devserver.New(cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build server", "error", err)
		os.Exit(1)
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	select {
	case err := <-errc:
		if err != nil {
			log.Error(ctx, "server stopped", "error", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error(shutdownCtx, "shutdown failed", "error", err)
		}
	}
}
