package services

import (
	"context"
	"errors"
	"testing"

	"github.com/radiogen/backend/internal/core/domain"
)

// deterministicNative pins the random choices: first genre, offset zero, no
// shuffle.
func deterministicNative(provider *mockProvider) *NativeRecommender {
	r := NewNativeRecommender(provider)
	r.intN = func(n int) int { return 0 }
	r.shuffle = func(n int, swap func(i, j int)) {}
	return r
}

func searchPool(total int, tracks ...domain.Track) func(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
	return func(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
		if limit == 1 {
			return domain.SearchPage{Total: total}, nil
		}
		if len(tracks) > limit {
			return domain.SearchPage{Tracks: tracks[:limit], Total: total}, nil
		}
		return domain.SearchPage{Tracks: tracks, Total: total}, nil
	}
}

func TestNativeRecommend(t *testing.T) {
	seed := track("seed", "Seed Song", "Seed Artist")

	t.Run("searches by genre and excludes the seed", func(t *testing.T) {
		var gotQuery string
		provider := &mockProvider{
			artistFn: func(ctx context.Context, id string) (domain.Artist, error) {
				return domain.Artist{ID: id, Name: "Seed Artist", Genres: []string{"shoegaze", "dream pop"}}, nil
			},
		}
		pool := searchPool(4, seed, track("t1", "One", "A"), track("t2", "Two", "B"), track("t3", "Three", "C"))
		provider.searchFn = func(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
			gotQuery = query
			return pool(ctx, query, limit, offset)
		}

		got, err := deterministicNative(provider).Recommend(context.Background(), seed, 3)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if gotQuery != "shoegaze" {
			t.Errorf("query: got %q, want the first genre", gotQuery)
		}
		if len(got) != 3 {
			t.Fatalf("tracks: got %d, want 3", len(got))
		}
		for _, tr := range got {
			if tr.ID == seed.ID {
				t.Fatal("result contains the seed track")
			}
		}
	})

	t.Run("falls back to the artist name without genres", func(t *testing.T) {
		var gotQuery string
		provider := &mockProvider{
			artistFn: func(ctx context.Context, id string) (domain.Artist, error) {
				return domain.Artist{ID: id, Name: "Seed Artist"}, nil
			},
			searchFn: func(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
				gotQuery = query
				return domain.SearchPage{Tracks: []domain.Track{track("t1", "One", "A")}, Total: 1}, nil
			},
		}

		if _, err := deterministicNative(provider).Recommend(context.Background(), seed, 3); err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if gotQuery != "Seed Artist" {
			t.Errorf("query: got %q, want the artist name", gotQuery)
		}
	})

	t.Run("never exceeds the limit", func(t *testing.T) {
		tracks := make([]domain.Track, 0, 21)
		for i := 0; i < 21; i++ {
			tracks = append(tracks, track(string(rune('a'+i)), "Track", "Artist"))
		}
		provider := &mockProvider{searchFn: searchPool(500, tracks...)}

		got, err := deterministicNative(provider).Recommend(context.Background(), seed, 20)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(got) > 20 {
			t.Fatalf("tracks: got %d, want at most 20", len(got))
		}
	})

	t.Run("small pool truncates silently", func(t *testing.T) {
		provider := &mockProvider{searchFn: searchPool(2, track("t1", "One", "A"), track("t2", "Two", "B"))}

		got, err := deterministicNative(provider).Recommend(context.Background(), seed, 20)
		if err != nil {
			t.Fatalf("Recommend() error: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("tracks: got %d, want 2", len(got))
		}
	})

	t.Run("search failure wraps into RecommendationError", func(t *testing.T) {
		provider := &mockProvider{
			searchFn: func(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
				return domain.SearchPage{}, &domain.TransportError{Service: "spotify", Err: errors.New("timeout")}
			},
		}

		_, err := deterministicNative(provider).Recommend(context.Background(), seed, 20)
		var recErr *domain.RecommendationError
		if !errors.As(err, &recErr) {
			t.Fatalf("error: got %v, want RecommendationError", err)
		}
		if recErr.Strategy != domain.StrategyNative {
			t.Errorf("strategy: got %q", recErr.Strategy)
		}
	})
}
