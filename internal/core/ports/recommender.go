package ports

import (
	"context"

	"github.com/radiogen/backend/internal/core/domain"
)

// Recommender turns a seed track into an ordered candidate list.
// The result never contains the seed and never exceeds limit; its order is the
// order tracks will be queued in.
type Recommender interface {
	Strategy() domain.Strategy
	Recommend(ctx context.Context, seed domain.Track, limit int) ([]domain.Track, error)
}

// IdeaGenerator proposes title/artist pairs for a seed track. Suggestions are
// free-form and must be resolved against the provider catalog before queueing.
type IdeaGenerator interface {
	SuggestTracks(ctx context.Context, seed domain.Track, limit int) ([]domain.TrackIdea, error)
}

// SimilarityProvider is a third-party service returning audio-similarity
// recommendations and per-track audio features.
type SimilarityProvider interface {
	SimilarTracks(ctx context.Context, seedID string, limit int) ([]domain.Track, error)
	AudioFeatures(ctx context.Context, trackID string) (map[string]float64, error)
}
