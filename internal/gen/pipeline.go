package gen

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixgen/internal/models"
	"github.com/desertthunder/mixgen/internal/shared"
)

const (
	// DefaultMaxRetries bounds the retry loop to MaxRetries+1 total attempts.
	DefaultMaxRetries = 2
	// DefaultTargetCount is the list length hint passed to the model.
	DefaultTargetCount = 10
)

// Generator produces raw text from a prompt.
//
// Implementations wrap a generative text API; the returned text carries no
// structural guarantees.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	Name() string
}

// Pipeline runs the full generation pipeline with a bounded retry loop.
type Pipeline struct {
	generator   Generator
	logger      *log.Logger
	maxRetries  int
	targetCount int
}

// PipelineOpts contains configuration options for creating a Pipeline.
type PipelineOpts struct {
	Generator   Generator
	Logger      *log.Logger
	MaxRetries  int // Total attempts = MaxRetries + 1; 0 selects the default (2), negative disables retries
	TargetCount int // Songs requested from the model (default 10)
}

// NewPipeline creates a Pipeline with the provided options.
func NewPipeline(opts PipelineOpts) *Pipeline {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	} else if opts.MaxRetries == 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.TargetCount <= 0 {
		opts.TargetCount = DefaultTargetCount
	}

	return &Pipeline{
		generator:   opts.Generator,
		logger:      opts.Logger,
		maxRetries:  opts.MaxRetries,
		targetCount: opts.TargetCount,
	}
}

// Generate produces a normalized playlist for the given seed song.
//
// Each attempt runs invoke, sanitize, parse, and normalize in sequence; a
// failure at any stage (model error, timeout, missing credentials, zero valid
// songs) consumes one attempt from the budget. The first attempt that yields
// at least one song wins. When the budget is exhausted the returned error
// wraps [shared.ErrRetryExhausted] together with the last attempt's failure.
func (p *Pipeline) Generate(ctx context.Context, seed string) (models.Playlist, error) {
	if seed == "" {
		return nil, fmt.Errorf("%w: seed song is required", shared.ErrInvalidInput)
	}
	if p.generator == nil {
		return nil, fmt.Errorf("%w: generator not initialized", shared.ErrServiceUnavailable)
	}

	var lastErr error
	for attempt := 1; attempt <= p.maxRetries+1; attempt++ {
		playlist, err := p.attempt(ctx, seed)
		if err == nil {
			p.logger.Info("playlist generated", "seed", seed, "songs", len(playlist), "attempt", attempt)
			return playlist, nil
		}

		lastErr = err
		p.logger.Warn("generation attempt failed", "attempt", attempt, "error", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %v", shared.ErrRetryExhausted, lastErr)
}

// attempt runs one pass of the pipeline. Pure with respect to the retry loop:
// all state lives in its inputs and return values.
func (p *Pipeline) attempt(ctx context.Context, seed string) (models.Playlist, error) {
	prompt := BuildPrompt(seed, p.targetCount)

	raw, err := p.generator.GenerateText(ctx, prompt)
	if err != nil {
		return nil, err
	}

	records := ParseRecords(Sanitize(raw), p.logger)

	playlist := make(models.Playlist, 0, len(records))
	for _, record := range records {
		playlist = append(playlist, Normalize(record))
	}

	if len(playlist) == 0 {
		return nil, shared.ErrEmptyPlaylist
	}

	return playlist, nil
}
