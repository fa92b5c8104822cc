package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/radiogen/backend/internal/core/domain"
)

// CurrentPlayback returns the now-playing track and device context.
// Spotify answers 204 with no body when nothing is playing; that maps to
// domain.ErrNoActivePlayback, distinct from transport failures.
func (c *Client) CurrentPlayback(ctx context.Context) (domain.Playback, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me/player", nil)
	if err != nil {
		return domain.Playback{}, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.Playback{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return domain.Playback{}, domain.ErrNoActivePlayback
	}
	if resp.StatusCode != http.StatusOK {
		return domain.Playback{}, fmt.Errorf("spotify adapter: playback status %d", resp.StatusCode)
	}

	var body playbackResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Playback{}, fmt.Errorf("spotify adapter: playback decode: %w", err)
	}

	if body.Item == nil {
		return domain.Playback{}, domain.ErrNoActivePlayback
	}

	return domain.Playback{
		Track:      body.Item.toDomain(),
		DeviceID:   body.Device.ID,
		DeviceName: body.Device.Name,
	}, nil
}
