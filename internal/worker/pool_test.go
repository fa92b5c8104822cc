package worker

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

type recordingRuns struct {
	mu      sync.Mutex
	updated map[string]map[string]float64
	err     error
}

var _ ports.RunRepository = (*recordingRuns)(nil)

func (r *recordingRuns) SaveRun(ctx context.Context, run domain.RadioRun) error {
	return nil
}

func (r *recordingRuns) UpdateRunFeatures(ctx context.Context, runID string, features map[string]float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if r.updated == nil {
		r.updated = make(map[string]map[string]float64)
	}
	r.updated[runID] = features
	return nil
}

func (r *recordingRuns) ListRecent(ctx context.Context, limit int) ([]domain.RadioRun, error) {
	return nil, nil
}

func (r *recordingRuns) get(runID string) (map[string]float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.updated[runID]
	return f, ok
}

type stubFeatures struct {
	features map[string]float64
	err      error
}

var _ ports.SimilarityProvider = (*stubFeatures)(nil)

func (s *stubFeatures) SimilarTracks(ctx context.Context, seedID string, limit int) ([]domain.Track, error) {
	return nil, nil
}

func (s *stubFeatures) AudioFeatures(ctx context.Context, trackID string) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.features, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestPool_EnrichesRun(t *testing.T) {
	runs := &recordingRuns{}
	features := &stubFeatures{features: map[string]float64{"energy": 0.7}}

	p := NewPool(runs, features, 4, testLogger())
	p.Start(1)
	p.Enrich("r1", "seed-1")
	p.Stop()

	got, ok := runs.get("r1")
	if !ok {
		t.Fatal("run was not updated")
	}
	if got["energy"] != 0.7 {
		t.Errorf("features: got %v", got)
	}
}

func TestPool_FeatureLookupFailure(t *testing.T) {
	runs := &recordingRuns{}
	features := &stubFeatures{err: errors.New("upstream down")}

	p := NewPool(runs, features, 4, testLogger())
	p.Start(1)
	p.Enrich("r1", "seed-1")
	p.Stop()

	if _, ok := runs.get("r1"); ok {
		t.Fatal("run was updated despite a failed lookup")
	}
}

func TestPool_EmptyFeaturesSkipUpdate(t *testing.T) {
	runs := &recordingRuns{}
	features := &stubFeatures{features: map[string]float64{}}

	p := NewPool(runs, features, 4, testLogger())
	p.Start(1)
	p.Enrich("r1", "seed-1")
	p.Stop()

	if _, ok := runs.get("r1"); ok {
		t.Fatal("run was updated with empty features")
	}
}

func TestPool_FullQueueDropsJob(t *testing.T) {
	runs := &recordingRuns{}
	block := make(chan struct{})
	features := &blockingFeatures{release: block}

	p := NewPool(runs, features, 1, testLogger())
	p.Start(1)

	// First job occupies the worker, second fills the queue, third is dropped.
	p.Enrich("r1", "s1")
	waitFor(t, func() bool { return features.calls() > 0 })
	p.Enrich("r2", "s2")
	p.Enrich("r3", "s3")

	close(block)
	p.Stop()

	if _, ok := runs.get("r3"); ok {
		t.Fatal("dropped job was processed")
	}
	if _, ok := runs.get("r1"); !ok {
		t.Fatal("first job was not processed")
	}
	if _, ok := runs.get("r2"); !ok {
		t.Fatal("queued job was not processed")
	}
}

type blockingFeatures struct {
	mu      sync.Mutex
	started int
	release chan struct{}
}

var _ ports.SimilarityProvider = (*blockingFeatures)(nil)

func (b *blockingFeatures) SimilarTracks(ctx context.Context, seedID string, limit int) ([]domain.Track, error) {
	return nil, nil
}

func (b *blockingFeatures) AudioFeatures(ctx context.Context, trackID string) (map[string]float64, error) {
	b.mu.Lock()
	b.started++
	b.mu.Unlock()
	<-b.release
	return map[string]float64{"energy": 0.5}, nil
}

func (b *blockingFeatures) calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.started
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
