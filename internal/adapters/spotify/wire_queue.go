package spotify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// QueueTrack appends one track URI to the playback queue. An empty deviceID
// targets whichever device is currently active.
func (c *Client) QueueTrack(ctx context.Context, uri, deviceID string) error {
	q := url.Values{}
	q.Set("uri", uri)
	if deviceID != "" {
		q.Set("device_id", deviceID)
	}

	u := fmt.Sprintf("%s/me/player/queue?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("spotify adapter: queue status %d", resp.StatusCode)
	}

	return nil
}
