// Package tasks orchestrates post-generation work on playlists.
//
// [EnrichEngine.Enrich] fans out one lookup per song across a bounded worker
// pool, with a shared rate limiter in front of the network and an optional
// SQLite-backed cache in front of that. A failed lookup costs that song its
// identifier and nothing else; the batch always completes and always waits for
// every lookup before returning.
//
// [EnrichEngine.Publish] turns an enriched playlist into a remote playlist via
// the music service, skipping unmatched songs.
//
// Both operations report progress through the non-blocking ProgressUpdate
// channel pattern: sends never block the work they describe.
package tasks
