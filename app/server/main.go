package main

import (
	"context"
	"os"

	"socialmedia/app/server/setup"

	"go.uber.org/zap"
)

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "development"

func main() {
	cfg := setup.MustLoadConfig()
	logger := setup.MustInitLogger(cfg)
	defer logger.Sync()

	app, err := setup.Build(context.Background(), cfg, Version)
	if err != nil {
		zap.L().Fatal("Error initializing server", zap.Error(err))
	}

	if err := setup.StartServer(app); err != nil {
		zap.L().Error("Server stopped", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}
