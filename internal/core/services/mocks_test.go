package services

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func track(id, title, artist string) domain.Track {
	return domain.Track{
		ID:      id,
		URI:     "spotify:track:" + id,
		Title:   title,
		Artists: []domain.Artist{{ID: "artist-" + id, Name: artist}},
	}
}

// mockProvider implements ports.MusicProvider with overridable funcs.
type mockProvider struct {
	playbackFn func(ctx context.Context) (domain.Playback, error)
	artistFn   func(ctx context.Context, id string) (domain.Artist, error)
	searchFn   func(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error)
	resolveFn  func(ctx context.Context, title, artist string) (domain.Track, error)
	queueFn    func(ctx context.Context, uri, deviceID string) error

	queued []string
}

var _ ports.MusicProvider = (*mockProvider)(nil)

func (m *mockProvider) CurrentPlayback(ctx context.Context) (domain.Playback, error) {
	if m.playbackFn != nil {
		return m.playbackFn(ctx)
	}
	return domain.Playback{Track: track("seed", "Seed Song", "Seed Artist"), DeviceID: "d1"}, nil
}

func (m *mockProvider) Artist(ctx context.Context, id string) (domain.Artist, error) {
	if m.artistFn != nil {
		return m.artistFn(ctx, id)
	}
	return domain.Artist{ID: id, Name: "Seed Artist"}, nil
}

func (m *mockProvider) SearchTracks(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit, offset)
	}
	return domain.SearchPage{}, nil
}

func (m *mockProvider) ResolveTrack(ctx context.Context, title, artist string) (domain.Track, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, title, artist)
	}
	return domain.Track{}, errors.New("resolve not stubbed")
}

func (m *mockProvider) QueueTrack(ctx context.Context, uri, deviceID string) error {
	if m.queueFn != nil {
		if err := m.queueFn(ctx, uri, deviceID); err != nil {
			return err
		}
	}
	m.queued = append(m.queued, uri)
	return nil
}

// mockIdeas implements ports.IdeaGenerator.
type mockIdeas struct {
	ideas []domain.TrackIdea
	err   error
}

func (m *mockIdeas) SuggestTracks(ctx context.Context, seed domain.Track, limit int) ([]domain.TrackIdea, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.ideas, nil
}

// mockSimilarity implements ports.SimilarityProvider.
type mockSimilarity struct {
	tracks   []domain.Track
	err      error
	features map[string]float64
}

func (m *mockSimilarity) SimilarTracks(ctx context.Context, seedID string, limit int) ([]domain.Track, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.tracks, nil
}

func (m *mockSimilarity) AudioFeatures(ctx context.Context, trackID string) (map[string]float64, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.features, nil
}

// mockRuns implements ports.RunRepository.
type mockRuns struct {
	saved   []domain.RadioRun
	saveErr error
}

func (m *mockRuns) SaveRun(ctx context.Context, run domain.RadioRun) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = append(m.saved, run)
	return nil
}

func (m *mockRuns) UpdateRunFeatures(ctx context.Context, runID string, features map[string]float64) error {
	return nil
}

func (m *mockRuns) ListRecent(ctx context.Context, limit int) ([]domain.RadioRun, error) {
	if len(m.saved) > limit {
		return m.saved[:limit], nil
	}
	return m.saved, nil
}

// mockEnricher records enrichment submissions.
type mockEnricher struct {
	runIDs []string
}

func (m *mockEnricher) Enrich(runID, seedID string) {
	m.runIDs = append(m.runIDs, runID)
}

// fixedRecommender returns a canned result for a strategy.
type fixedRecommender struct {
	strategy domain.Strategy
	tracks   []domain.Track
	err      error
}

func (f *fixedRecommender) Strategy() domain.Strategy { return f.strategy }

func (f *fixedRecommender) Recommend(ctx context.Context, seed domain.Track, limit int) ([]domain.Track, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tracks, nil
}
