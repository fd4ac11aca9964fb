// package models defines the data model for the playlist generation service
package models

// Song is the canonical record produced by the generation pipeline.
//
// Name and Artist are always populated ("Unknown" when the model omitted them).
// Genres is always a slice, never nil, so it marshals as [] rather than null.
// SpotifyID is populated by the enrichment stage; empty means no match was
// found or the lookup failed, not an error.
type Song struct {
	Name        string   `json:"name"`
	Artist      string   `json:"artist"`
	Album       string   `json:"album,omitempty"`
	Year        string   `json:"year,omitempty"`
	Genres      []string `json:"genres"`
	Explanation string   `json:"explanation,omitempty"`
	SpotifyID   string   `json:"spotifyId,omitempty"`
}

// Playlist is an ordered sequence of songs, order-preserving from model output.
//
// A playlist is constructed fresh per request and never persisted or mutated
// once returned.
type Playlist []Song

// Track represents a single track from an external music service search.
type Track struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
	Album  string `json:"album,omitempty"`
	URI    string `json:"uri,omitempty"`
}

// RemotePlaylist represents a playlist created on an external music service.
type RemotePlaylist struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	TrackCount int    `json:"trackCount"`
	Public     bool   `json:"public"`
}
