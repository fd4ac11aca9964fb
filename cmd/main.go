package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixgen/internal/services"
	"github.com/desertthunder/mixgen/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)
	if level := os.Getenv("MIXGEN_LOG_LEVEL"); level != "" {
		if lvl, err := log.ParseLevel(level); err == nil {
			shared.SetLogLevel(logger, lvl)
		}
	}

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	gemini := services.NewGeminiService(services.GeminiOpts{
		Config:  config.Credentials.Gemini,
		Timeout: time.Duration(config.Generator.TimeoutSeconds) * time.Second,
	})

	var spotify services.MusicService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(services.SpotifyOpts{
			Config: config.Credentials.Spotify,
		}); err == nil {
			spotify = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:    config,
		Generator: gemini,
		Spotify:   spotify,
		Logger:    logger,
	})

	app := &cli.Command{
		Name:     "mixgen",
		Usage:    "Generate AI playlists from a seed song",
		Version:  "0.1.0",
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
