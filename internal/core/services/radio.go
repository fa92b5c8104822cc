// Package services holds the core radio flow: strategy selection, queue
// dispatch, and run bookkeeping, all behind ports so adapters stay swappable.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// RunEnricher receives finished runs for asynchronous feature enrichment.
// The worker pool satisfies this.
type RunEnricher interface {
	Enrich(runID, seedID string)
}

// RadioResult is what one trigger invocation produced.
type RadioResult struct {
	Run    domain.RadioRun
	Seed   domain.Track
	Tracks []domain.Track
}

// Radio coordinates the provider, the recommendation strategies, and the
// queue dispatcher for one trigger request at a time.
type Radio struct {
	provider     ports.MusicProvider
	recommenders map[domain.Strategy]ports.Recommender
	dispatcher   *Dispatcher
	runs         ports.RunRepository
	enricher     RunEnricher
	limit        int
	log          *log.Logger
}

// NewRadio constructs the radio service. runs and enricher may be nil when
// history is disabled.
func NewRadio(
	provider ports.MusicProvider,
	recommenders []ports.Recommender,
	dispatcher *Dispatcher,
	runs ports.RunRepository,
	enricher RunEnricher,
	limit int,
	logger *log.Logger,
) *Radio {
	byStrategy := make(map[domain.Strategy]ports.Recommender, len(recommenders))
	for _, r := range recommenders {
		byStrategy[r.Strategy()] = r
	}
	return &Radio{
		provider:     provider,
		recommenders: byStrategy,
		dispatcher:   dispatcher,
		runs:         runs,
		enricher:     enricher,
		limit:        limit,
		log:          logger,
	}
}

// BuildRadio reads the current playback, runs the selected strategy, and
// queues the results on the active device.
func (s *Radio) BuildRadio(ctx context.Context, strategy domain.Strategy) (RadioResult, error) {
	rec, ok := s.recommenders[strategy]
	if !ok {
		return RadioResult{}, fmt.Errorf("service: unknown strategy %q", strategy)
	}

	playback, err := s.provider.CurrentPlayback(ctx)
	if err != nil {
		return RadioResult{}, fmt.Errorf("service: current playback: %w", err)
	}
	seed := playback.Track

	s.log.Info("building radio",
		"strategy", strategy,
		"seed", seed.Title,
		"artist", seed.PrimaryArtist().Name,
		"device", playback.DeviceName)

	tracks, err := rec.Recommend(ctx, seed, s.limit)
	if err != nil {
		return RadioResult{}, fmt.Errorf("service: %w", err)
	}

	summary := s.dispatcher.Dispatch(ctx, tracks, playback)

	run := domain.RadioRun{
		ID:         uuid.New().String(),
		Strategy:   strategy,
		SeedID:     seed.ID,
		SeedTitle:  seed.Title,
		SeedArtist: seed.PrimaryArtist().Name,
		Summary:    summary,
		CreatedAt:  time.Now().UTC(),
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, run); err != nil {
			s.log.Warn("failed to record radio run", "run", run.ID, "err", err)
		} else if s.enricher != nil && seed.ID != "" {
			s.enricher.Enrich(run.ID, seed.ID)
		}
	}

	return RadioResult{Run: run, Seed: seed, Tracks: tracks}, nil
}

// RecentRuns returns the newest recorded runs, newest first.
func (s *Radio) RecentRuns(ctx context.Context, limit int) ([]domain.RadioRun, error) {
	if s.runs == nil {
		return nil, nil
	}
	runs, err := s.runs.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("service: list runs: %w", err)
	}
	return runs, nil
}
