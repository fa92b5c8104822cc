package services

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// NativeRecommender builds a radio from the provider's own catalog: it picks
// a random genre of the seed's primary artist (falling back to the artist
// name), searches a random window of matching tracks, and shuffles it.
type NativeRecommender struct {
	provider ports.MusicProvider

	// test seams; defaults are the global math/rand/v2 generator
	intN    func(n int) int
	shuffle func(n int, swap func(i, j int))
}

var _ ports.Recommender = (*NativeRecommender)(nil)

func NewNativeRecommender(provider ports.MusicProvider) *NativeRecommender {
	return &NativeRecommender{
		provider: provider,
		intN:     rand.IntN,
		shuffle:  rand.Shuffle,
	}
}

func (r *NativeRecommender) Strategy() domain.Strategy {
	return domain.StrategyNative
}

func (r *NativeRecommender) Recommend(ctx context.Context, seed domain.Track, limit int) ([]domain.Track, error) {
	primary := seed.PrimaryArtist()

	query := primary.Name
	if primary.ID != "" {
		artist, err := r.provider.Artist(ctx, primary.ID)
		if err != nil {
			return nil, &domain.RecommendationError{Strategy: domain.StrategyNative, Err: fmt.Errorf("artist lookup: %w", err)}
		}
		if len(artist.Genres) > 0 {
			query = artist.Genres[r.intN(len(artist.Genres))]
		}
	}
	if query == "" {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyNative, Err: fmt.Errorf("seed has no artist to search by")}
	}

	// Probe for the total so the result window can start at a random offset.
	probe, err := r.provider.SearchTracks(ctx, query, 1, 0)
	if err != nil {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyNative, Err: fmt.Errorf("search probe: %w", err)}
	}

	// Fetch one extra so removing the seed doesn't shrink a full window.
	window := limit + 1
	offset := 0
	if maxOffset := probe.Total - window; maxOffset > 0 {
		offset = r.intN(maxOffset + 1)
	}

	page, err := r.provider.SearchTracks(ctx, query, window, offset)
	if err != nil {
		return nil, &domain.RecommendationError{Strategy: domain.StrategyNative, Err: fmt.Errorf("search: %w", err)}
	}

	pool := make([]domain.Track, 0, len(page.Tracks))
	for _, track := range page.Tracks {
		if track.ID == seed.ID {
			continue
		}
		pool = append(pool, track)
	}

	r.shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})

	// A pool smaller than the limit truncates silently.
	if len(pool) > limit {
		pool = pool[:limit]
	}

	return pool, nil
}
