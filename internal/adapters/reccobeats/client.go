// Package reccobeats is the HTTP adapter for the ReccoBeats audio-similarity
// API: seed-based track recommendations and per-track audio features.
package reccobeats

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// DefaultBaseURL is the production ReccoBeats API root.
const DefaultBaseURL = "https://api.reccobeats.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
}

// compile-time interface assertion
var _ ports.SimilarityProvider = (*Client)(nil)

func NewClient(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

// recommendationItem models the fields consumed from a recommendation entry.
// Href points at the track on Spotify; its last path segment is the Spotify ID.
type recommendationItem struct {
	ID         string `json:"id"`
	TrackTitle string `json:"trackTitle"`
	Href       string `json:"href"`
	Artists    []struct {
		Name string `json:"name"`
	} `json:"artists"`
}

type recommendationResponse struct {
	Content []recommendationItem `json:"content"`
}

// SimilarTracks returns up to limit recommendations for the seed, preserving
// the service's ranking order.
func (c *Client) SimilarTracks(ctx context.Context, seedID string, limit int) ([]domain.Track, error) {
	q := url.Values{}
	q.Set("size", strconv.Itoa(limit))
	q.Set("seeds", seedID)

	u := fmt.Sprintf("%s/v1/track/recommendation?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("reccobeats: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Service: "reccobeats", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reccobeats: recommendation status %d", resp.StatusCode)
	}

	var body recommendationResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("reccobeats: recommendation decode: %w", err)
	}

	tracks := make([]domain.Track, 0, len(body.Content))
	for _, item := range body.Content {
		tracks = append(tracks, item.toDomain())
	}

	return tracks, nil
}

// AudioFeatures fetches the audio feature set for one track.
func (c *Client) AudioFeatures(ctx context.Context, trackID string) (map[string]float64, error) {
	u := fmt.Sprintf("%s/v1/track/%s/audio-features", c.baseURL, url.PathEscape(trackID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("reccobeats: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Service: "reccobeats", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reccobeats: features status %d", resp.StatusCode)
	}

	// The body mixes numeric features with identifier strings; keep the numbers.
	var raw map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("reccobeats: features decode: %w", err)
	}

	features := make(map[string]float64, len(raw))
	for key, value := range raw {
		if num, ok := value.(float64); ok {
			features[key] = num
		}
	}

	return features, nil
}

func (r recommendationItem) toDomain() domain.Track {
	artists := make([]domain.Artist, 0, len(r.Artists))
	for _, a := range r.Artists {
		artists = append(artists, domain.Artist{Name: a.Name})
	}

	spotifyID := spotifyIDFromHref(r.Href)
	uri := r.Href
	if spotifyID != "" {
		uri = "spotify:track:" + spotifyID
	}

	return domain.Track{
		ID:      spotifyID,
		URI:     uri,
		Title:   r.TrackTitle,
		Artists: artists,
	}
}

// spotifyIDFromHref pulls the Spotify track ID out of an
// open.spotify.com/track/<id> link.
func spotifyIDFromHref(href string) string {
	if href == "" {
		return ""
	}
	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	if len(parts) < 2 || parts[len(parts)-2] != "track" {
		return ""
	}
	return parts[len(parts)-1]
}
