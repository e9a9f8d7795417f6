package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jdcasey/myshift/internal/cli"
	"github.com/jdcasey/myshift/internal/config"
	"github.com/jdcasey/myshift/internal/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Config errors are deferred into the command layer: `myshift
	// config --print` and `--help` must work in an empty environment.
	cfg, cfgErr := config.Load()

	level := cfg.LogLevel
	if level == "" {
		level = "warn"
	}
	log, lvl, err := logger.New(level)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		return 2
	}
	// Ensure logger flush; ignore sync error (common on some platforms).
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx, cli.NewDeps(cfg, cfgErr, log, lvl))
}
