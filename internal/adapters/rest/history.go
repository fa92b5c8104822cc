package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/radiogen/backend/internal/core/domain"
)

const defaultHistoryLimit = 20

type runView struct {
	ID           string                `json:"id"`
	Strategy     domain.Strategy       `json:"strategy"`
	SeedTrack    string                `json:"seed_track"`
	SeedArtist   string                `json:"seed_artist"`
	Queued       domain.EnqueueSummary `json:"queued"`
	SeedFeatures map[string]float64    `json:"seed_features,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

// ListRadios handles GET /radios.
func (h *Handler) ListRadios(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	runs, err := h.svc.RecentRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runView{
			ID:           run.ID,
			Strategy:     run.Strategy,
			SeedTrack:    run.SeedTitle,
			SeedArtist:   run.SeedArtist,
			Queued:       run.Summary,
			SeedFeatures: run.SeedFeatures,
			CreatedAt:    run.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"radios": views})
}
