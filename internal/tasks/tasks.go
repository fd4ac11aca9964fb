// package tasks implements the enrichment and publishing stages that run after
// a playlist has been generated.
//
// The core abstraction is EnrichEngine, which resolves external track IDs for
// generated songs and can publish the result as a remote playlist. Operations
// emit progress updates via channels for non-blocking status reporting to the
// CLI and server layers.
package tasks

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixgen/internal/models"
	"github.com/desertthunder/mixgen/internal/repositories"
	"github.com/desertthunder/mixgen/internal/services"
	"github.com/desertthunder/mixgen/internal/shared"
	"golang.org/x/time/rate"
)

// SearchCacher defines the cache consulted before hitting the network during
// enrichment. Implemented by [repositories.SearchCache].
type SearchCacher interface {
	Get(title, artist string) (*repositories.CachedTrack, error)
	Put(title, artist, service, trackID string) error
}

// EnrichResult summarizes one enrichment pass over a playlist.
type EnrichResult struct {
	Total     int // Songs processed
	Matched   int // Songs that received a track ID
	CacheHits int // Matches served from the cache
	Failed    int // Lookups that failed or found nothing
}

// EnrichOpts contains configuration for the enrichment engine.
type EnrichOpts struct {
	Workers   int     // Concurrent lookups (default 5, capped at 10)
	RateLimit float64 // Network searches per second (default 5)
}

// EnrichEngine resolves external track identifiers for generated songs.
//
// Lookups for different songs are independent and dispatched concurrently,
// gated by a shared rate limiter; all lookups are gathered before returning.
// Any failure degrades that one song's identifier to absent and never aborts
// the batch.
type EnrichEngine struct {
	music   services.MusicService
	cache   SearchCacher
	logger  *log.Logger
	workers int
	limiter *rate.Limiter
}

// NewEnrichEngine creates an EnrichEngine. The cache is optional; pass nil to
// always hit the network.
func NewEnrichEngine(music services.MusicService, cache SearchCacher, logger *log.Logger, opts EnrichOpts) *EnrichEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	if opts.Workers <= 0 {
		opts.Workers = 5
	}
	if opts.Workers > 10 {
		opts.Workers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &EnrichEngine{
		music:   music,
		cache:   cache,
		logger:  logger,
		workers: opts.Workers,
		limiter: rate.NewLimiter(rate.Limit(opts.RateLimit), 1),
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *EnrichEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Enrich returns a copy of the playlist with external track IDs filled in
// where a match was found.
//
// The input playlist is not mutated. Order is preserved. The returned result
// reports match, cache-hit, and failure counts; failures are also logged but
// never returned as errors.
func (e *EnrichEngine) Enrich(ctx context.Context, progress chan<- ProgressUpdate, playlist models.Playlist) (models.Playlist, *EnrichResult) {
	result := &EnrichResult{Total: len(playlist)}

	enriched := make(models.Playlist, len(playlist))
	copy(enriched, playlist)

	if e.music == nil || len(playlist) == 0 {
		return enriched, result
	}

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, e.workers)

	for i := range enriched {
		wg.Add(1)
		sem <- struct{}{}

		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			song := &enriched[idx]
			e.sendProgress(progress, enrichTrackUpdate(idx+1, result.Total, song))

			trackID, fromCache, err := e.lookup(ctx, song.Name, song.Artist)
			if err != nil {
				e.logger.Warn("track lookup failed", "song", song.Name, "artist", song.Artist, "error", err)
				mu.Lock()
				result.Failed++
				mu.Unlock()
				return
			}

			song.SpotifyID = trackID

			mu.Lock()
			result.Matched++
			if fromCache {
				result.CacheHits++
			}
			mu.Unlock()

			if fromCache {
				e.sendProgress(progress, cacheHitUpdate(idx+1, result.Total, song))
			}
		}(i)
	}

	wg.Wait()

	e.logger.Info("enrichment complete",
		"total", result.Total,
		"matched", result.Matched,
		"cache_hits", result.CacheHits,
		"failed", result.Failed,
	)

	return enriched, result
}

// lookup resolves a track ID for one song, consulting the cache before the
// network. Network hits are written back to the cache best-effort.
func (e *EnrichEngine) lookup(ctx context.Context, title, artist string) (trackID string, fromCache bool, err error) {
	if e.cache != nil {
		if cached, err := e.cache.Get(title, artist); err == nil {
			return cached.TrackID, true, nil
		}
	}

	if err := e.limiter.Wait(ctx); err != nil {
		return "", false, fmt.Errorf("rate limiter: %w", err)
	}

	track, err := e.music.SearchTrack(ctx, title, artist)
	if err != nil {
		return "", false, err
	}

	if e.cache != nil {
		if err := e.cache.Put(title, artist, e.music.Name(), track.ID); err != nil {
			e.logger.Warn("failed to cache search result", "error", err)
		}
	}

	return track.ID, false, nil
}

// Publish creates a remote playlist from the enriched songs.
//
// Songs without a track ID are skipped; publishing fails only when no song has
// an ID at all.
func (e *EnrichEngine) Publish(ctx context.Context, progress chan<- ProgressUpdate, accessToken, name string, playlist models.Playlist) (*models.RemotePlaylist, error) {
	if e.music == nil {
		return nil, fmt.Errorf("%w: music service not initialized", shared.ErrServiceUnavailable)
	}

	uris := make([]string, 0, len(playlist))
	for _, song := range playlist {
		if song.SpotifyID != "" {
			uris = append(uris, "spotify:track:"+song.SpotifyID)
		}
	}

	if len(uris) == 0 {
		return nil, fmt.Errorf("%w: no songs were matched, cannot create empty playlist", shared.ErrTrackNotFound)
	}

	e.sendProgress(progress, createPlaylistUpdate(name, len(uris)))

	remote, err := e.music.CreatePlaylist(ctx, accessToken, name, uris)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create playlist: %v", shared.ErrAPIRequest, err)
	}

	return remote, nil
}
