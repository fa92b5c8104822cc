// Package spotify is the HTTP adapter for the Spotify Web API, scoped to the
// calls the radio flow needs: playback state, artist lookup, search, and
// queue control.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

// DefaultBaseURL is the production Spotify Web API root.
const DefaultBaseURL = "https://api.spotify.com/v1"

// TokenSource supplies a valid OAuth token for each outbound call.
// *session.Store satisfies this.
type TokenSource interface {
	Token(ctx context.Context) (*oauth2.Token, error)
}

// Client is an HTTP client for the Spotify adapter.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
	limiter    *rate.Limiter
}

// compile-time interface assertion
var _ ports.MusicProvider = (*Client)(nil)

// NewClient constructs a new Spotify client. A nil httpClient falls back to a
// client with a bounded timeout; an empty baseURL targets production.
func NewClient(httpClient *http.Client, baseURL string, tokens TokenSource) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		limiter:    rate.NewLimiter(rate.Limit(10), 5),
	}
}

// do authorizes, paces, and executes one API request. Network failures wrap
// into domain.TransportError; a 401 surfaces as domain.ErrNotAuthenticated.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()

	tok, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("spotify adapter: %w", err)
	}

	tok.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Service: "spotify", Err: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("spotify adapter: %w", domain.ErrNotAuthenticated)
	}

	return resp, nil
}
