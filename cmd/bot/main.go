package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/Christopher22/larry/internal/app"
	"github.com/Christopher22/larry/internal/config"
	"github.com/Christopher22/larry/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// No logger yet; report and exit.
		_, _ = os.Stderr.WriteString("config error: " + err.Error() + "\n")
		os.Exit(2)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		_, _ = os.Stderr.WriteString("logger init error: " + err.Error() + "\n")
		os.Exit(2)
	}
	// Sync can fail on stderr; nothing useful to do with that.
	defer func() { _ = log.Sync() }()

	application, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("app init failed", zap.Error(err))
	}

	if err := application.Run(context.Background()); err != nil {
		log.Fatal("app run failed", zap.Error(err))
	}
}
