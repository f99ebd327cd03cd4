package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"SparqlScanner/internal/app"
	"SparqlScanner/internal/config"
	"SparqlScanner/internal/logging"
)

func main() {
	flags := config.RegisterFlags(flag.CommandLine)
	flag.Parse()

	cfg := config.Load(flags.ConfigPath)
	flags.Apply(flag.CommandLine, &cfg)
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, logger)

	if err := application.Run(ctx); err != nil {
		logger.Error("application stopped", "error", err)
		stop()
		os.Exit(1)
	}
}
