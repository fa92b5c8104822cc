package services

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// LLMRecommender asks a generative model for a playlist and resolves each
// suggestion back to a catalog track. Suggestions that fail to resolve are
// dropped; the call fails only when nothing resolves at all.
type LLMRecommender struct {
	ideas    ports.IdeaGenerator
	provider ports.MusicProvider
	log      *log.Logger
}

var _ ports.Recommender = (*LLMRecommender)(nil)

func NewLLMRecommender(ideas ports.IdeaGenerator, provider ports.MusicProvider, logger *log.Logger) *LLMRecommender {
	return &LLMRecommender{ideas: ideas, provider: provider, log: logger}
}

func (r *LLMRecommender) Strategy() domain.Strategy {
	return domain.StrategyOpenAI
}

func (r *LLMRecommender) Recommend(ctx context.Context, seed domain.Track, limit int) ([]domain.Track, error) {
	ideas, err := r.ideas.SuggestTracks(ctx, seed, limit)
	if err != nil {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyOpenAI, Err: err}
	}

	// Resolution order is preserved: it becomes queue order.
	tracks := make([]domain.Track, 0, len(ideas))
	for _, idea := range ideas {
		if len(tracks) == limit {
			break
		}

		track, err := r.provider.ResolveTrack(ctx, idea.Title, idea.Artist)
		if err != nil {
			r.log.Debug("dropping unresolved suggestion",
				"title", idea.Title,
				"artist", idea.Artist,
				"err", err)
			continue
		}
		if track.ID == seed.ID {
			continue
		}
		tracks = append(tracks, track)
	}

	if len(tracks) == 0 {
		return nil, &domain.RecommendationError{
			Strategy: domain.StrategyOpenAI,
			Err:      fmt.Errorf("none of %d suggestions resolved", len(ideas)),
		}
	}

	return tracks, nil
}
