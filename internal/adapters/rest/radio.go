package rest

import (
	"errors"
	"net/http"

	"github.com/radiogen/backend/internal/core/domain"
)

const (
	errCodeLoginRequired    = "LOGIN_REQUIRED"
	errCodeNoActivePlayback = "NO_ACTIVE_PLAYBACK"
)

type trackView struct {
	ID      string   `json:"id"`
	URI     string   `json:"uri"`
	Title   string   `json:"title"`
	Artists []string `json:"artists"`
}

type triggerResponse struct {
	Message    string                `json:"message"`
	Strategy   domain.Strategy       `json:"strategy"`
	SeedTrack  string                `json:"seed_track"`
	SeedArtist string                `json:"seed_artist"`
	Queued     domain.EnqueueSummary `json:"queued"`
	Tracks     []trackView           `json:"tracks"`
}

// TriggerNative handles POST /trigger.
func (h *Handler) TriggerNative(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, domain.StrategyNative)
}

// TriggerOpenAI handles POST /trigger-openai.
func (h *Handler) TriggerOpenAI(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, domain.StrategyOpenAI)
}

// TriggerReccoBeats handles POST /trigger-reccobeats.
func (h *Handler) TriggerReccoBeats(w http.ResponseWriter, r *http.Request) {
	h.trigger(w, r, domain.StrategyReccoBeats)
}

func (h *Handler) trigger(w http.ResponseWriter, r *http.Request, strategy domain.Strategy) {
	result, err := h.svc.BuildRadio(r.Context(), strategy)
	if err != nil {
		h.writeTriggerError(w, err)
		return
	}

	tracks := make([]trackView, 0, len(result.Tracks))
	for _, t := range result.Tracks {
		tracks = append(tracks, trackView{
			ID:      t.ID,
			URI:     t.URI,
			Title:   t.Title,
			Artists: t.ArtistNames(),
		})
	}

	writeJSON(w, http.StatusOK, triggerResponse{
		Message:    "custom radio queued",
		Strategy:   strategy,
		SeedTrack:  result.Seed.Title,
		SeedArtist: result.Seed.PrimaryArtist().Name,
		Queued:     result.Run.Summary,
		Tracks:     tracks,
	})
}

// writeTriggerError maps the error taxonomy onto HTTP statuses: auth failures
// are 401, missing playback is 409 (distinct from transport trouble), and
// upstream failures are 502.
func (h *Handler) writeTriggerError(w http.ResponseWriter, err error) {
	var recErr *domain.RecommendationError
	var transportErr *domain.TransportError

	switch {
	case errors.Is(err, domain.ErrNotAuthenticated):
		writeErrorWithCode(w, http.StatusUnauthorized, "not authenticated, log in at /login", errCodeLoginRequired)
	case errors.Is(err, domain.ErrNoActivePlayback):
		writeErrorWithCode(w, http.StatusConflict, "no song is currently playing", errCodeNoActivePlayback)
	case errors.As(err, &recErr):
		writeError(w, http.StatusBadGateway, recErr.Error())
	case errors.As(err, &transportErr):
		writeError(w, http.StatusBadGateway, transportErr.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
