package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/mixgen/internal/shared"
)

// CachedTrack is one row of the search cache: the resolved external track ID
// for a normalized (title, artist) query.
type CachedTrack struct {
	ID        string
	Title     string
	Artist    string
	Service   string
	TrackID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CacheStats summarizes the contents of the search cache.
type CacheStats struct {
	Entries  int            `json:"entries"`
	Services map[string]int `json:"services"`
}

// SearchCache stores external search results keyed by normalized title and
// artist, so repeat enrichment lookups skip the network.
//
// Only search results are cached; generated playlists are never persisted.
type SearchCache struct {
	db *sql.DB
}

// NewSearchCache creates a SearchCache with the given database connection.
func NewSearchCache(db *sql.DB) *SearchCache {
	return &SearchCache{db: db}
}

// Get retrieves a cached search result. Returns [shared.ErrTrackNotFound]
// wrapped when the query has no cached row.
func (c *SearchCache) Get(title, artist string) (*CachedTrack, error) {
	key := shared.NormalizeTrackKey(title, artist)

	query := `
		SELECT id, title, artist, service, track_id, created_at, updated_at
		FROM search_cache
		WHERE search_key = ?
	`

	var track CachedTrack
	err := c.db.QueryRow(query, key).Scan(
		&track.ID,
		&track.Title,
		&track.Artist,
		&track.Service,
		&track.TrackID,
		&track.CreatedAt,
		&track.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: no cached result for '%s' by '%s'", shared.ErrTrackNotFound, title, artist)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cached track: %w", err)
	}

	return &track, nil
}

// Put stores a search result, replacing any existing row for the same query.
// Duplicate inserts racing on the UNIQUE key are silently ignored.
func (c *SearchCache) Put(title, artist, service, trackID string) error {
	key := shared.NormalizeTrackKey(title, artist)
	now := time.Now()

	query := `
		INSERT INTO search_cache (id, search_key, title, artist, service, track_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(search_key) DO UPDATE SET
			service = excluded.service,
			track_id = excluded.track_id,
			updated_at = excluded.updated_at
	`

	_, err := c.db.Exec(query, shared.GenerateID(), key, title, artist, service, trackID, now, now)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil
		}
		return fmt.Errorf("failed to cache search result: %w", err)
	}

	return nil
}

// Stats returns entry counts for the cache, broken down by service.
func (c *SearchCache) Stats() (*CacheStats, error) {
	stats := &CacheStats{Services: map[string]int{}}

	rows, err := c.db.Query(`SELECT service, COUNT(*) FROM search_cache GROUP BY service`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cache stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var service string
		var count int
		if err := rows.Scan(&service, &count); err != nil {
			return nil, fmt.Errorf("failed to scan cache stats: %w", err)
		}
		stats.Services[service] = count
		stats.Entries += count
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stats, nil
}

// Clear removes all entries from the cache and returns the number deleted.
func (c *SearchCache) Clear() (int64, error) {
	result, err := c.db.Exec(`DELETE FROM search_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return rows, nil
}
