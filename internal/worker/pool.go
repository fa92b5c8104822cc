// Package worker provides background enrichment of recorded radio runs:
// after a run is saved, a pool fetches the seed's audio features from the
// similarity service and attaches them to the stored run.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/radiogen/backend/internal/core/ports"
)

const jobTimeout = 15 * time.Second

// Job identifies one run awaiting feature enrichment.
type Job struct {
	RunID  string
	SeedID string
}

// Pool manages background workers for enrichment jobs.
type Pool struct {
	runs     ports.RunRepository
	features ports.SimilarityProvider
	jobs     chan Job
	wg       sync.WaitGroup
	log      *log.Logger
}

// NewPool creates a pool with the given queue size.
func NewPool(runs ports.RunRepository, features ports.SimilarityProvider, queueSize int, logger *log.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{
		runs:     runs,
		features: features,
		jobs:     make(chan Job, queueSize),
		log:      logger,
	}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.process(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Enrich queues a job without blocking; a full queue drops the job.
func (p *Pool) Enrich(runID, seedID string) {
	select {
	case p.jobs <- Job{RunID: runID, SeedID: seedID}:
	default:
		p.log.Warn("enrichment queue full, dropping job", "run", runID)
	}
}

func (p *Pool) process(job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	features, err := p.features.AudioFeatures(ctx, job.SeedID)
	if err != nil {
		p.log.Warn("feature lookup failed", "run", job.RunID, "seed", job.SeedID, "err", err)
		return
	}
	if len(features) == 0 {
		return
	}

	if err := p.runs.UpdateRunFeatures(ctx, job.RunID, features); err != nil {
		p.log.Warn("failed to store features", "run", job.RunID, "err", err)
		return
	}

	p.log.Debug("enriched run", "run", job.RunID, "features", len(features))
}
