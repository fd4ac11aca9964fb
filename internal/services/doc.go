// Package services implements HTTP clients for the external APIs mixgen
// depends on.
//
// # Gemini
//
// [GeminiService] satisfies the generation pipeline's Generator interface. It
// posts the prompt to the generateContent endpoint and returns the first
// candidate's raw text. Every call is bounded by a deadline (50 seconds by
// default); when the deadline wins the race the call fails with
// [shared.ErrTimeout] and the abandoned response is discarded. A missing API
// key fails per call rather than at construction so the error travels the
// pipeline's retry path.
//
// # Spotify
//
// [SpotifyService] satisfies [MusicService]. Catalog search uses the OAuth2
// client-credentials grant through [clientcredentials.Config], whose token
// source caches and refreshes the short-lived bearer token. Playlist creation
// requires a user-scoped bearer token supplied by the caller; how that token
// is acquired (authorization-code redirect flow) is outside this package.
//
// Both clients take injected configuration and accept base URL and HTTP client
// overrides so tests can point them at httptest servers.
package services
