package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CacheStats prints entry counts for the local search cache.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := cache.Stats()
	if err != nil {
		return fmt.Errorf("failed to read cache stats: %w", err)
	}

	return r.writeJSON(stats, cmd.Bool("pretty"))
}

// CacheClear deletes all cached search results.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	db, cache, err := r.openCache()
	if err != nil {
		return err
	}
	defer db.Close()

	deleted, err := cache.Clear()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	r.logger.Info("cache cleared", "deleted", deleted)
	return r.writePlainln("✓ Deleted %d cached entries", deleted)
}
