package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/desertthunder/mixgen/internal/models"
	"github.com/desertthunder/mixgen/internal/repositories"
	"github.com/desertthunder/mixgen/internal/shared"
	tu "github.com/desertthunder/mixgen/internal/testing"
)

// memoryCache is an in-memory SearchCacher for engine tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]string
	puts    int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]string{}}
}

func (m *memoryCache) Get(title, artist string) (*repositories.CachedTrack, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id, ok := m.entries[shared.NormalizeTrackKey(title, artist)]
	if !ok {
		return nil, shared.ErrTrackNotFound
	}
	return &repositories.CachedTrack{Title: title, Artist: artist, TrackID: id}, nil
}

func (m *memoryCache) Put(title, artist, service, trackID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[shared.NormalizeTrackKey(title, artist)] = trackID
	m.puts++
	return nil
}

func testPlaylist() models.Playlist {
	return models.Playlist{
		{Name: "Creep", Artist: "Radiohead"},
		{Name: "Black", Artist: "Pearl Jam"},
		{Name: "Zombie", Artist: "The Cranberries"},
	}
}

func TestEnrichEngine(t *testing.T) {
	t.Run("Enrich", func(t *testing.T) {
		t.Run("Fills Track IDs", func(t *testing.T) {
			svc := &tu.MockService{
				SearchFunc: func(ctx context.Context, title, artist string) (*models.Track, error) {
					return &models.Track{ID: "id-" + title, Title: title, Artist: artist}, nil
				},
			}
			engine := NewEnrichEngine(svc, nil, nil, EnrichOpts{Workers: 2, RateLimit: 1000})

			playlist := testPlaylist()
			enriched, result := engine.Enrich(context.Background(), nil, playlist)

			if result.Total != 3 || result.Matched != 3 || result.Failed != 0 {
				t.Errorf("unexpected result: %+v", result)
			}
			for i, song := range enriched {
				if song.SpotifyID != "id-"+song.Name {
					t.Errorf("song %d missing track ID: %+v", i, song)
				}
			}
			if playlist[0].SpotifyID != "" {
				t.Error("expected input playlist to remain unmutated")
			}
		})

		t.Run("Preserves Order", func(t *testing.T) {
			svc := &tu.MockService{}
			engine := NewEnrichEngine(svc, nil, nil, EnrichOpts{Workers: 3, RateLimit: 1000})

			enriched, _ := engine.Enrich(context.Background(), nil, testPlaylist())

			want := []string{"Creep", "Black", "Zombie"}
			for i, name := range want {
				if enriched[i].Name != name {
					t.Errorf("expected %q at index %d, got %q", name, i, enriched[i].Name)
				}
			}
		})

		t.Run("Failures Degrade Per Song", func(t *testing.T) {
			svc := &tu.MockService{
				SearchFunc: func(ctx context.Context, title, artist string) (*models.Track, error) {
					if title == "Black" {
						return nil, shared.ErrTrackNotFound
					}
					return &models.Track{ID: "ok"}, nil
				},
			}
			engine := NewEnrichEngine(svc, nil, nil, EnrichOpts{Workers: 2, RateLimit: 1000})

			enriched, result := engine.Enrich(context.Background(), nil, testPlaylist())

			if result.Matched != 2 || result.Failed != 1 {
				t.Errorf("unexpected result: %+v", result)
			}
			if enriched[1].SpotifyID != "" {
				t.Errorf("expected failed lookup to leave ID empty, got %q", enriched[1].SpotifyID)
			}
			if enriched[0].SpotifyID == "" || enriched[2].SpotifyID == "" {
				t.Error("expected surviving lookups to keep their IDs")
			}
		})

		t.Run("Cache Consulted First", func(t *testing.T) {
			cache := newMemoryCache()
			cache.Put("Creep", "Radiohead", "Spotify", "cached-id")
			cache.puts = 0

			searches := 0
			var mu sync.Mutex
			svc := &tu.MockService{
				SearchFunc: func(ctx context.Context, title, artist string) (*models.Track, error) {
					mu.Lock()
					searches++
					mu.Unlock()
					return &models.Track{ID: "net-" + title}, nil
				},
			}
			engine := NewEnrichEngine(svc, cache, nil, EnrichOpts{Workers: 1, RateLimit: 1000})

			enriched, result := engine.Enrich(context.Background(), nil, testPlaylist())

			if enriched[0].SpotifyID != "cached-id" {
				t.Errorf("expected cache hit for first song, got %q", enriched[0].SpotifyID)
			}
			if result.CacheHits != 1 {
				t.Errorf("expected 1 cache hit, got %d", result.CacheHits)
			}
			if searches != 2 {
				t.Errorf("expected 2 network searches, got %d", searches)
			}
			if cache.puts != 2 {
				t.Errorf("expected network hits written back, got %d puts", cache.puts)
			}
		})

		t.Run("Progress Never Blocks", func(t *testing.T) {
			svc := &tu.MockService{}
			engine := NewEnrichEngine(svc, nil, nil, EnrichOpts{Workers: 2, RateLimit: 1000})

			// Unbuffered channel with no reader; sends must be dropped.
			progress := make(chan ProgressUpdate)

			_, result := engine.Enrich(context.Background(), progress, testPlaylist())
			if result.Matched != 3 {
				t.Errorf("expected all songs matched, got %+v", result)
			}
		})

		t.Run("Nil Service", func(t *testing.T) {
			engine := NewEnrichEngine(nil, nil, nil, EnrichOpts{})

			enriched, result := engine.Enrich(context.Background(), nil, testPlaylist())
			if result.Matched != 0 || len(enriched) != 3 {
				t.Errorf("expected untouched copy, got %+v / %+v", enriched, result)
			}
		})
	})

	t.Run("Publish", func(t *testing.T) {
		t.Run("Skips Unmatched Songs", func(t *testing.T) {
			var gotURIs []string
			svc := &tu.MockService{
				CreateFunc: func(ctx context.Context, accessToken, name string, trackURIs []string) (*models.RemotePlaylist, error) {
					gotURIs = trackURIs
					return &models.RemotePlaylist{ID: "pl1", Name: name, TrackCount: len(trackURIs)}, nil
				},
			}
			engine := NewEnrichEngine(svc, nil, nil, EnrichOpts{})

			playlist := models.Playlist{
				{Name: "A", SpotifyID: "aaa"},
				{Name: "B"},
				{Name: "C", SpotifyID: "ccc"},
			}

			remote, err := engine.Publish(context.Background(), nil, "token", "My Mix", playlist)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if remote.ID != "pl1" || remote.TrackCount != 2 {
				t.Errorf("unexpected remote playlist: %+v", remote)
			}
			if len(gotURIs) != 2 || gotURIs[0] != "spotify:track:aaa" || gotURIs[1] != "spotify:track:ccc" {
				t.Errorf("unexpected uris: %v", gotURIs)
			}
		})

		t.Run("No Matched Songs", func(t *testing.T) {
			engine := NewEnrichEngine(&tu.MockService{}, nil, nil, EnrichOpts{})

			_, err := engine.Publish(context.Background(), nil, "token", "My Mix", models.Playlist{{Name: "A"}})
			if !errors.Is(err, shared.ErrTrackNotFound) {
				t.Errorf("expected ErrTrackNotFound, got %v", err)
			}
		})

		t.Run("Service Error Wrapped", func(t *testing.T) {
			svc := &tu.MockService{
				CreateFunc: func(ctx context.Context, accessToken, name string, trackURIs []string) (*models.RemotePlaylist, error) {
					return nil, errors.New("upstream failure")
				},
			}
			engine := NewEnrichEngine(svc, nil, nil, EnrichOpts{})

			_, err := engine.Publish(context.Background(), nil, "token", "My Mix", models.Playlist{{Name: "A", SpotifyID: "aaa"}})
			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
		})
	})
}
