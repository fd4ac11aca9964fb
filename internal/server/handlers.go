package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/mixgen/internal/models"
	"github.com/desertthunder/mixgen/internal/shared"
	"github.com/desertthunder/mixgen/internal/tasks"
)

// PlaylistGenerator runs the generation pipeline for a seed song.
// Implemented by gen.Pipeline.
type PlaylistGenerator interface {
	Generate(ctx context.Context, seed string) (models.Playlist, error)
}

// Enricher resolves external track IDs for a generated playlist.
// Implemented by tasks.EnrichEngine.
type Enricher interface {
	Enrich(ctx context.Context, progress chan<- tasks.ProgressUpdate, playlist models.Playlist) (models.Playlist, *tasks.EnrichResult)
}

// PlaylistCreator creates a remote playlist from enriched songs.
// Implemented by tasks.EnrichEngine.
type PlaylistCreator interface {
	Publish(ctx context.Context, progress chan<- tasks.ProgressUpdate, accessToken, name string, playlist models.Playlist) (*models.RemotePlaylist, error)
}

// PlaylistHandler serves the playlist generation and creation endpoints.
//
// The enricher is optional; when nil, generated playlists are returned without
// external track identifiers.
type PlaylistHandler struct {
	generator PlaylistGenerator
	enricher  Enricher
	creator   PlaylistCreator
	logger    *log.Logger
}

// NewPlaylistHandler creates a PlaylistHandler with the given collaborators.
func NewPlaylistHandler(generator PlaylistGenerator, enricher Enricher, creator PlaylistCreator, logger *log.Logger) *PlaylistHandler {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &PlaylistHandler{
		generator: generator,
		enricher:  enricher,
		creator:   creator,
		logger:    logger,
	}
}

// Register wires the handler's routes into the router with method filtering.
func (h *PlaylistHandler) Register(r Router) {
	r.Handle(http.MethodPost, "/api/playlists/generate", http.HandlerFunc(h.GeneratePlaylist))
	r.Handle(http.MethodPost, "/api/playlists/create", http.HandlerFunc(h.CreatePlaylist))
}

type generateRequest struct {
	Song string `json:"song"`
}

type generateResponse struct {
	Playlist models.Playlist `json:"playlist"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// GeneratePlaylist handles POST /api/playlists/generate.
//
// Accepts {"song": "..."} and responds with {"playlist": [...]} on success.
// Malformed bodies and missing seed songs are client errors; an exhausted
// retry budget is a server error carrying the last failure as detail.
func (h *PlaylistHandler) GeneratePlaylist(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON in request body"})
		return
	}

	if req.Song == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid song input"})
		return
	}

	playlist, err := h.generator.Generate(r.Context(), req.Song)
	if err != nil {
		h.logger.Error("playlist generation failed", "song", req.Song, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error:   "Failed to generate playlist after multiple attempts",
			Details: err.Error(),
		})
		return
	}

	if h.enricher != nil {
		playlist, _ = h.enricher.Enrich(r.Context(), nil, playlist)
	}

	writeJSON(w, http.StatusOK, generateResponse{Playlist: playlist})
}

type createRequest struct {
	AccessToken  string   `json:"accessToken"`
	PlaylistName string   `json:"playlistName"`
	Tracks       []string `json:"tracks"`
}

type createResponse struct {
	Success    bool   `json:"success"`
	PlaylistID string `json:"playlistId"`
}

// CreatePlaylist handles POST /api/playlists/create.
//
// Thin proxy over the music service: takes a user bearer token, a playlist
// name, and track IDs, and creates the remote playlist. How the caller
// obtained the token is not this service's concern.
func (h *PlaylistHandler) CreatePlaylist(w http.ResponseWriter, r *http.Request) {
	if h.creator == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Playlist creation is not configured"})
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON in request body"})
		return
	}

	if req.AccessToken == "" || req.PlaylistName == "" || len(req.Tracks) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing required parameters"})
		return
	}

	playlist := make(models.Playlist, len(req.Tracks))
	for i, id := range req.Tracks {
		playlist[i] = models.Song{SpotifyID: id}
	}

	remote, err := h.creator.Publish(r.Context(), nil, req.AccessToken, req.PlaylistName, playlist)
	if err != nil {
		h.logger.Error("playlist creation failed", "name", req.PlaylistName, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Failed to create playlist"})
		return
	}

	writeJSON(w, http.StatusOK, createResponse{Success: true, PlaylistID: remote.ID})
}

// HealthHandler implements [Handler] for liveness checks.
type HealthHandler struct{}

// Routes returns the HTTP routes this handler serves.
func (h *HealthHandler) Routes() []string {
	return []string{"/health"}
}

// ServeHTTP responds with a static ok payload.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
