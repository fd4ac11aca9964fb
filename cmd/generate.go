package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/desertthunder/mixgen/internal/gen"
	"github.com/desertthunder/mixgen/internal/shared"
	"github.com/desertthunder/mixgen/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Generate produces a playlist for a seed song and prints it as JSON.
//
// Enrichment runs when a Spotify service is configured and --no-enrich is not
// set; progress updates are logged as they arrive.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	seed := cmd.StringArg("song")
	if seed == "" {
		return fmt.Errorf("%w: seed song is required", shared.ErrMissingArgument)
	}

	pipeline := r.pipeline
	if count := cmd.Int("count"); count > 0 {
		pipeline = gen.NewPipeline(gen.PipelineOpts{
			Generator:   r.generator,
			Logger:      r.logger,
			MaxRetries:  r.config.Generator.MaxRetries,
			TargetCount: int(count),
		})
	}

	r.logger.Info("generating playlist", "seed", seed)

	playlist, err := pipeline.Generate(ctx, seed)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	if r.spotify != nil && !cmd.Bool("no-enrich") {
		db, cache, err := r.openCache()
		if err != nil {
			r.logger.Warn("enrichment unavailable", "error", err)
		} else {
			defer db.Close()
			engine := r.enrichEngine(cache)

			progress := make(chan tasks.ProgressUpdate, len(playlist))
			done := make(chan struct{})
			go func() {
				defer close(done)
				for update := range progress {
					r.logger.Debug(update.Message, "phase", update.Phase.String(), "step", update.Step, "total", update.Total)
				}
			}()

			var result *tasks.EnrichResult
			playlist, result = engine.Enrich(ctx, progress, playlist)
			close(progress)
			<-done

			r.logger.Info("enrichment complete",
				"matched", result.Matched, "cache_hits", result.CacheHits, "failed", result.Failed)
		}
	}

	if path := cmd.String("output"); path != "" {
		data, err := json.MarshalIndent(playlist, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal playlist: %w", err)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write playlist file: %w", err)
		}
		return r.writePlainln("✓ Playlist saved to %s", path)
	}

	return r.writeJSON(playlist, cmd.Bool("pretty"))
}
