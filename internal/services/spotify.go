// Spotify API implementation of [MusicService]
//
// Spotify API response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/mixgen/internal/models"
	"github.com/desertthunder/mixgen/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ReleaseDate string `json:"release_date"`
	URI         string `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Artists []SpotifyArtist `json:"artists"`
	Album   SpotifyAlbum    `json:"album"`
	URI     string          `json:"uri"`
}

type searchResponse struct {
	Tracks struct {
		Items []SpotifyTrack `json:"items"`
	} `json:"tracks"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// SpotifyService implements [MusicService] for Spotify API interactions.
//
// Catalog search uses the client-credentials grant via [clientcredentials.Config];
// the token source caches the short-lived bearer token and refreshes it on
// expiry. Playlist creation operates on a caller-supplied user token instead,
// since the client-credentials grant has no user context.
type SpotifyService struct {
	tokenSource oauth2.TokenSource
	baseURL     string
	httpClient  *http.Client
}

// SpotifyOpts contains configuration options for creating a SpotifyService.
type SpotifyOpts struct {
	Config     shared.SpotifyConfig
	BaseURL    string // API base URL override, used in tests
	TokenURL   string // Token endpoint override, used in tests
	HTTPClient *http.Client
}

// NewSpotifyService creates a new Spotify service with the given credentials.
func NewSpotifyService(opts SpotifyOpts) (*SpotifyService, error) {
	if opts.Config.ClientID == "" {
		return nil, fmt.Errorf("%w: missing spotify client_id", shared.ErrMissingCredentials)
	}
	if opts.Config.ClientSecret == "" {
		return nil, fmt.Errorf("%w: missing spotify client_secret", shared.ErrMissingCredentials)
	}
	if opts.BaseURL == "" {
		opts.BaseURL = spotifyBaseURL
	}
	if opts.TokenURL == "" {
		opts.TokenURL = spotifyTokenURL
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	conf := &clientcredentials.Config{
		ClientID:     opts.Config.ClientID,
		ClientSecret: opts.Config.ClientSecret,
		TokenURL:     opts.TokenURL,
	}

	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, opts.HTTPClient)

	return &SpotifyService{
		tokenSource: conf.TokenSource(ctx),
		baseURL:     opts.BaseURL,
		httpClient:  opts.HTTPClient,
	}, nil
}

// Name returns the service name.
func (s *SpotifyService) Name() string {
	return "Spotify"
}

// Authenticate validates the configured client credentials by performing a
// token exchange.
func (s *SpotifyService) Authenticate(ctx context.Context) error {
	if _, err := s.tokenSource.Token(); err != nil {
		return fmt.Errorf("%w: token exchange failed: %v", shared.ErrNotAuthenticated, err)
	}
	return nil
}

// doRequest performs an authenticated HTTP request to the Spotify API.
//
// When token is empty a client-credentials bearer token is obtained from the
// cached token source; otherwise the supplied user token is used as-is.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint, token string, body, result any) error {
	if token == "" {
		t, err := s.tokenSource.Token()
		if err != nil {
			return fmt.Errorf("%w: token exchange failed: %v", shared.ErrNotAuthenticated, err)
		}
		token = t.AccessToken
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: spotify API status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchTrack searches the catalog for a track by title and artist, returning
// the top result as the best match.
func (s *SpotifyService) SearchTrack(ctx context.Context, title, artist string) (*models.Track, error) {
	query := url.QueryEscape(fmt.Sprintf("%s %s", title, artist))
	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=1", query)

	var response searchResponse
	if err := s.doRequest(ctx, http.MethodGet, endpoint, "", nil, &response); err != nil {
		return nil, err
	}

	if len(response.Tracks.Items) == 0 {
		return nil, fmt.Errorf("%w: no results for '%s' by '%s'", shared.ErrTrackNotFound, title, artist)
	}

	hit := response.Tracks.Items[0]
	track := &models.Track{
		ID:    hit.ID,
		Title: hit.Name,
		Album: hit.Album.Name,
		URI:   hit.URI,
	}

	if len(hit.Artists) > 0 {
		track.Artist = hit.Artists[0].Name
	}

	return track, nil
}

// UserProfile retrieves the profile of the user owning the given token.
func (s *SpotifyService) UserProfile(ctx context.Context, accessToken string) (*SpotifyUser, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", accessToken, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreatePlaylist creates a private playlist for the user owning the given
// token and adds the provided track URIs to it.
func (s *SpotifyService) CreatePlaylist(ctx context.Context, accessToken, name string, trackURIs []string) (*models.RemotePlaylist, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("%w: user access token is required", shared.ErrNotAuthenticated)
	}

	user, err := s.UserProfile(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	createReq := struct {
		Name        string `json:"name"`
		Public      bool   `json:"public"`
		Description string `json:"description"`
	}{
		Name:        name,
		Public:      false,
		Description: "Created by mixgen",
	}

	var created struct {
		ID string `json:"id"`
	}

	endpoint := fmt.Sprintf("/users/%s/playlists", url.PathEscape(user.ID))
	if err := s.doRequest(ctx, http.MethodPost, endpoint, accessToken, createReq, &created); err != nil {
		return nil, fmt.Errorf("failed to create playlist: %w", err)
	}

	if len(trackURIs) > 0 {
		addReq := struct {
			URIs []string `json:"uris"`
		}{URIs: trackURIs}

		endpoint = fmt.Sprintf("/playlists/%s/tracks", url.PathEscape(created.ID))
		if err := s.doRequest(ctx, http.MethodPost, endpoint, accessToken, addReq, nil); err != nil {
			return nil, fmt.Errorf("failed to add tracks to playlist: %w", err)
		}
	}

	return &models.RemotePlaylist{
		ID:         created.ID,
		Name:       name,
		TrackCount: len(trackURIs),
		Public:     false,
	}, nil
}
