package domain

import "time"

// Strategy names one of the recommendation variants.
type Strategy string

const (
	StrategyNative     Strategy = "native"
	StrategyOpenAI     Strategy = "openai"
	StrategyReccoBeats Strategy = "reccobeats"
)

// EnqueueSummary is the best-effort accounting for one dispatched radio.
type EnqueueSummary struct {
	Attempted int `json:"attempted"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RadioRun records one completed radio build.
type RadioRun struct {
	ID           string
	Strategy     Strategy
	SeedID       string
	SeedTitle    string
	SeedArtist   string
	Summary      EnqueueSummary
	SeedFeatures map[string]float64 // filled in asynchronously, may be nil
	CreatedAt    time.Time
}
