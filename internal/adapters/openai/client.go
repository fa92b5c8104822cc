// Package openai provides an adapter for the OpenAI chat completions API.
// It asks the model for a playlist of tracks similar to a seed and parses the
// response into title/artist pairs for catalog resolution.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/radiogen/backend/internal/core/domain"
	"github.com/radiogen/backend/internal/core/ports"
)

const defaultBaseURL = "https://api.openai.com"

const systemPrompt = "You are a helpful music expert."

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// compile-time interface assertion
var _ ports.IdeaGenerator = (*Client)(nil)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func NewClient(httpClient *http.Client, baseURL, apiKey, model string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

// SuggestTracks prompts the model with the seed track and returns the parsed
// suggestions in the order the model proposed them.
func (c *Client) SuggestTracks(ctx context.Context, seed domain.Track, limit int) ([]domain.TrackIdea, error) {
	prompt := fmt.Sprintf(
		"I'm currently listening to %q by %q. "+
			"Suggest %d similar genre / mood (but not mainstream) track recommendations. "+
			"Provide the answer only as a JSON array of objects, where each object has exactly two keys: "+
			"%q and %q.",
		seed.Title, seed.PrimaryArtist().Name, limit, "track_name", "artist",
	)

	payload := chatRequest{
		Model:       c.model,
		Temperature: 0.7,
		MaxTokens:   600,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.TransportError{Service: "openai", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openai: unexpected status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("openai: decode response: %w", err)
	}
	if parsed.Error != nil {
		return nil, fmt.Errorf("openai: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("openai: empty response")
	}

	ideas, err := parseSuggestions(parsed.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return ideas, nil
}
