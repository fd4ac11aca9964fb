package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/desertthunder/mixgen/internal/server"
	"github.com/desertthunder/mixgen/internal/services"
	"github.com/desertthunder/mixgen/internal/shared"
	"github.com/urfave/cli/v3"
)

// Serve starts the playlist generation HTTP server.
//
// The server runs until SIGINT or SIGTERM, then shuts down gracefully.
// Enrichment endpoints are wired only when a Spotify service is configured.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	host := r.config.Server.Host
	if h := cmd.String("host"); h != "" {
		host = h
	}
	port := r.config.Server.Port
	if p := cmd.Int("port"); p > 0 {
		port = int(p)
	}
	addr := fmt.Sprintf("%s:%d", host, port)

	var enricher server.Enricher
	var creator server.PlaylistCreator
	if r.spotify != nil {
		db, cache, err := r.openCache()
		if err != nil {
			return fmt.Errorf("failed to open search cache: %w", err)
		}
		defer db.Close()

		engine := r.enrichEngine(cache)
		if r.config.Enrichment.Enabled {
			enricher = engine
		}
		creator = engine
	}

	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))

	handler := server.NewPlaylistHandler(r.pipeline, enricher, creator, shared.WithLogger(r.logger, "component", "server"))
	handler.Register(router)
	router.Handler(&server.HealthHandler{})

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	perCall := time.Duration(r.config.Generator.TimeoutSeconds) * time.Second
	if perCall <= 0 {
		perCall = services.DefaultGenerateTimeout
	}

	return server.Serve(ctx, server.ServeOpts{
		Addr:         addr,
		Router:       router,
		Logger:       r.logger,
		WriteTimeout: server.GenerationWriteTimeout(r.config.Generator.MaxRetries, perCall),
	})
}
