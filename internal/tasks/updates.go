package tasks

import (
	"fmt"

	"github.com/desertthunder/mixgen/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or server layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	EnrichTracks Phase = iota
	CacheLookup
	CreatePlaylist
)

func (p Phase) String() string {
	switch p {
	case EnrichTracks:
		return "enrich_tracks"
	case CacheLookup:
		return "cache_lookup"
	case CreatePlaylist:
		return "create_playlist"
	default:
		return ""
	}
}

func enrichTrackUpdate(step, total int, song *models.Song) ProgressUpdate {
	msg := fmt.Sprintf("Matching tracks (%d/%d)...", step, total)
	if song != nil {
		msg = fmt.Sprintf("Matching '%s' by %s (%d/%d)...", song.Name, song.Artist, step, total)
	}
	return ProgressUpdate{
		Phase:   EnrichTracks,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    song,
	}
}

func cacheHitUpdate(step, total int, song *models.Song) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CacheLookup,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Cache hit for '%s' (%d/%d)", song.Name, step, total),
		Data:    song,
	}
}

func createPlaylistUpdate(name string, trackCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreatePlaylist,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Creating playlist '%s' with %d tracks...", name, trackCount),
	}
}
