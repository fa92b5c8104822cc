package services

import (
	"context"
	"fmt"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// SimilarityRecommender maps a third-party similarity service's response
// directly to tracks, preserving the service's ranking order.
type SimilarityRecommender struct {
	similar ports.SimilarityProvider
}

var _ ports.Recommender = (*SimilarityRecommender)(nil)

func NewSimilarityRecommender(similar ports.SimilarityProvider) *SimilarityRecommender {
	return &SimilarityRecommender{similar: similar}
}

func (r *SimilarityRecommender) Strategy() domain.Strategy {
	return domain.StrategyReccoBeats
}

func (r *SimilarityRecommender) Recommend(ctx context.Context, seed domain.Track, limit int) ([]domain.Track, error) {
	if seed.ID == "" {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyReccoBeats, Err: fmt.Errorf("seed has no provider id")}
	}

	candidates, err := r.similar.SimilarTracks(ctx, seed.ID, limit)
	if err != nil {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyReccoBeats, Err: err}
	}

	tracks := make([]domain.Track, 0, len(candidates))
	for _, track := range candidates {
		if track.ID == seed.ID {
			continue
		}
		tracks = append(tracks, track)
	}
	if len(tracks) > limit {
		tracks = tracks[:limit]
	}

	if len(tracks) == 0 {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyReccoBeats, Err: fmt.Errorf("service returned no tracks")}
	}

	return tracks, nil
}
