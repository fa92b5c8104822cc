package services

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// Dispatcher pushes an ordered candidate list onto the provider's playback
// queue, one call per track.
type Dispatcher struct {
	provider ports.MusicProvider
	log      *log.Logger
}

func NewDispatcher(provider ports.MusicProvider, logger *log.Logger) *Dispatcher {
	return &Dispatcher{provider: provider, log: logger}
}

// Dispatch queues every track in order against the playback device.
// Individual failures are logged and skipped; one bad track never aborts the
// batch. The summary reports attempted/succeeded/failed counts.
func (d *Dispatcher) Dispatch(ctx context.Context, tracks []domain.Track, playback domain.Playback) domain.EnqueueSummary {
	summary := domain.EnqueueSummary{Attempted: len(tracks)}

	for _, track := range tracks {
		if err := d.provider.QueueTrack(ctx, track.URI, playback.DeviceID); err != nil {
			d.log.Warn("enqueue failed, skipping track",
				"track", track.Title,
				"uri", track.URI,
				"err", err)
			summary.Failed++
			continue
		}
		summary.Succeeded++
	}

	return summary
}
