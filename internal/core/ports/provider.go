package ports

import (
	"context"
	"errors"
	"fmt"

	"github.com/radiogen/backend/internal/core/domain"
)

// ErrNoConfidentMatch indicates search results did not meet the confidence threshold.
var ErrNoConfidentMatch = errors.New("no confident match")

// NoConfidentMatchError provides context for a failed track resolution.
type NoConfidentMatchError struct {
	Title  string
	Artist string
}

func (e *NoConfidentMatchError) Error() string {
	if e.Title == "" && e.Artist == "" {
		return ErrNoConfidentMatch.Error()
	}
	return fmt.Sprintf("no confident match found for title %q artist %q", e.Title, e.Artist)
}

func (e *NoConfidentMatchError) Is(target error) bool {
	return target == ErrNoConfidentMatch
}

// MusicProvider is the streaming service the radio reads playback state from
// and queues tracks back to.
type MusicProvider interface {
	// CurrentPlayback returns the now-playing track and device context.
	// Returns domain.ErrNoActivePlayback when nothing is playing.
	CurrentPlayback(ctx context.Context) (domain.Playback, error)

	// Artist fetches full artist details, including genres.
	Artist(ctx context.Context, id string) (domain.Artist, error)

	// SearchTracks runs a catalog search and returns one result window plus the
	// total result count, so callers can pick randomized offsets.
	SearchTracks(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error)

	// ResolveTrack finds the catalog track best matching a title/artist pair.
	// Returns a NoConfidentMatchError when nothing scores above the threshold.
	ResolveTrack(ctx context.Context, title, artist string) (domain.Track, error)

	// QueueTrack appends one track URI to the playback queue of the given device.
	QueueTrack(ctx context.Context, uri, deviceID string) error
}
