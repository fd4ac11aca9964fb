// package services defines clients for the external HTTP APIs mixgen consumes
//
// Gemini (text generation), Spotify (track search, playlist creation)
package services

import (
	"context"

	"github.com/desertthunder/mixgen/internal/models"
)

// MusicService defines the interface for music catalog providers that can
// search tracks and create playlists.
type MusicService interface {
	// Authenticate performs credential validation with the service.
	// Returns an error if the configured credentials are unusable.
	Authenticate(ctx context.Context) error

	// SearchTrack searches for a track by title and artist.
	// Returns the best match or an error if no match is found.
	SearchTrack(ctx context.Context, title, artist string) (*models.Track, error)

	// CreatePlaylist creates a playlist on the service under the account that
	// owns the given bearer token and fills it with the provided track URIs.
	CreatePlaylist(ctx context.Context, accessToken, name string, trackURIs []string) (*models.RemotePlaylist, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}
