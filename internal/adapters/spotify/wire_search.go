package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

const resolveMatchThreshold = 0.70

// SearchTracks runs a catalog search and returns one result window plus the
// total result count.
func (c *Client) SearchTracks(ctx context.Context, query string, limit, offset int) (domain.SearchPage, error) {
	body, err := c.search(ctx, query, limit, offset)
	if err != nil {
		return domain.SearchPage{}, err
	}

	tracks := make([]domain.Track, 0, len(body.Tracks.Items))
	for _, item := range body.Tracks.Items {
		tracks = append(tracks, item.toDomain())
	}

	return domain.SearchPage{Tracks: tracks, Total: body.Tracks.Total}, nil
}

// ResolveTrack finds the catalog track best matching a title/artist pair.
// Candidates are scored against the request; nothing above the confidence
// threshold yields a NoConfidentMatchError.
func (c *Client) ResolveTrack(ctx context.Context, title, artist string) (domain.Track, error) {
	query := fmt.Sprintf("track:%s artist:%s", normalizeSearchInput(title), normalizeSearchInput(artist))
	body, err := c.search(ctx, query, 5, 0)
	if err != nil {
		return domain.Track{}, err
	}

	bestScore := 0.0
	bestIndex := -1
	for i, candidate := range body.Tracks.Items {
		score, ok := scoreTrackMatch(title, artist, candidate)
		if ok && score >= resolveMatchThreshold && score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}

	if bestIndex == -1 {
		return domain.Track{}, fmt.Errorf("spotify adapter: %w", &ports.NoConfidentMatchError{Title: title, Artist: artist})
	}

	return body.Tracks.Items[bestIndex].toDomain(), nil
}

func (c *Client) search(ctx context.Context, query string, limit, offset int) (searchResponse, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("type", "track")
	q.Set("limit", strconv.Itoa(limit))
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}

	u := fmt.Sprintf("%s/search?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return searchResponse{}, fmt.Errorf("spotify adapter: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return searchResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return searchResponse{}, fmt.Errorf("spotify adapter: search status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return searchResponse{}, fmt.Errorf("spotify adapter: search decode: %w", err)
	}

	return body, nil
}
