// Package repositories provides SQLite-backed persistence for mixgen.
//
// The only persisted data is the [SearchCache]: resolved external track IDs
// keyed by normalized (title, artist) queries, used to short-circuit repeat
// enrichment lookups. Generated playlists deliberately have no persistence;
// each request constructs its playlist fresh and the artifact lives only in
// the response.
//
// Schema management lives in internal/shared (embedded versioned migrations);
// this package assumes the search_cache table exists.
package repositories
