package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/radiogen/backend/internal/core/domain"
)

type suggestion struct {
	TrackName string `json:"track_name"`
	Artist    string `json:"artist"`
}

// parseSuggestions extracts the JSON playlist from a chat completion. Models
// wrap the array in code fences or prose often enough that we cut from the
// first '[' to the last ']' before unmarshalling.
func parseSuggestions(content string) ([]domain.TrackIdea, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, fmt.Errorf("openai: empty completion")
	}

	start := strings.Index(trimmed, "[")
	end := strings.LastIndex(trimmed, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("openai: completion contains no JSON array")
	}

	var raw []suggestion
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("openai: decode suggestions: %w", err)
	}

	ideas := make([]domain.TrackIdea, 0, len(raw))
	for _, s := range raw {
		title := strings.TrimSpace(s.TrackName)
		artist := strings.TrimSpace(s.Artist)
		if title == "" {
			continue
		}
		ideas = append(ideas, domain.TrackIdea{Title: title, Artist: artist})
	}

	if len(ideas) == 0 {
		return nil, fmt.Errorf("openai: no usable suggestions in completion")
	}

	return ideas, nil
}
