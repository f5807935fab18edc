package main

import (
	"context"
	"errors"
	"os"

	"github.com/cineniche/cinectl/internal/services"
	"github.com/cineniche/cinectl/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	guard := services.NewRedirectGuard(func() {
		logger.Warn("session rejected by the backend, sign in with `cinectl auth login`")
	})
	api := services.NewCineNicheService(config.API.BaseURL, config.API.AuthPingPath, nil, guard)

	runner := NewRunner(RunnerOpts{
		Config: config,
		API:    api,
		Logger: logger,
	})

	app := &cli.Command{
		Name:     "cinectl",
		Usage:    "Browse, rate, and manage the CineNiche catalog",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
