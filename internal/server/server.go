// package server contains middleware & handlers for the playlist generation web service
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixgen/internal/shared"
)

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, authentication, CORS, rate limiting, etc.
type Middleware func(http.Handler) http.Handler

// Handler defines the interface for HTTP request handlers in the playlist generation service.
// Implementations handle specific endpoints (health, generation, playlist creation).
type Handler interface {
	http.Handler      // ServeHTTP handles the HTTP request and writes the response
	Routes() []string // Routes returns the path patterns this handler serves
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers a custom Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// ServeOpts contains configuration options for running the HTTP server.
type ServeOpts struct {
	Addr   string
	Router Router
	Logger *log.Logger
	// WriteTimeout is the response write deadline. It must outlast the full
	// generation retry budget or exhausted-retry requests get a severed
	// connection instead of their 500 response; use [GenerationWriteTimeout]
	// to size it from config. Zero disables the deadline and relies on the
	// per-call model deadlines to bound work.
	WriteTimeout time.Duration
}

// GenerationWriteTimeout returns a response write deadline that outlasts the
// generation retry budget: maxRetries+1 attempts of up to perCall each, plus
// headroom for enrichment and serialization.
func GenerationWriteTimeout(maxRetries int, perCall time.Duration) time.Duration {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return time.Duration(maxRetries+1)*perCall + 10*time.Second
}

// Serve runs an HTTP server for the given router until the context is
// cancelled, then shuts it down gracefully.
func Serve(ctx context.Context, opts ServeOpts) error {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	srv := &http.Server{
		Addr:         opts.Addr,
		Handler:      opts.Router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", opts.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}
}
