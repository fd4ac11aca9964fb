// Package server provides HTTP routing, middleware, and the playlist API handlers.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # API Handlers
//
// [PlaylistHandler] serves the generation and creation endpoints. It depends on
// small interfaces ([PlaylistGenerator], [Enricher], [PlaylistCreator]) rather
// than concrete pipeline types, so handler tests can substitute doubles.
//
// POST /api/playlists/generate accepts a seed song and responds with the
// generated playlist. POST /api/playlists/create proxies playlist creation to
// the configured music service using a caller-supplied bearer token.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
//
// # Serving
//
// [Serve] runs an [http.Server] and shuts down gracefully when the context is
// canceled. Callers size the write deadline from their configured retry budget
// with [GenerationWriteTimeout] so an exhausted run still delivers its error
// response instead of a severed connection.
package server
