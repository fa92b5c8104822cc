package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/radiogen/backend/internal/core/domain"
)

// Artist fetches full artist details, including genres.
func (c *Client) Artist(ctx context.Context, id string) (domain.Artist, error) {
	u := fmt.Sprintf("%s/artists/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.Artist{}, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return domain.Artist{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Artist{}, fmt.Errorf("spotify adapter: artist status %d", resp.StatusCode)
	}

	var body artistObject
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return domain.Artist{}, fmt.Errorf("spotify adapter: artist decode: %w", err)
	}

	return body.toDomain(), nil
}
