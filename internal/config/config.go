// Package config loads service configuration from an optional YAML file
// overlaid with environment variables. A .env file is honored when present.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultListen      = ":5002"
	defaultRadioLimit  = 20
	defaultHTTPTimeout = 10 * time.Second
	defaultHistoryDSN  = ":memory:"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultReccoBeats  = "https://api.reccobeats.com"
)

type Config struct {
	Listen     string           `yaml:"listen"`
	Spotify    SpotifyConfig    `yaml:"spotify"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	ReccoBeats ReccoBeatsConfig `yaml:"reccobeats"`
	Radio      RadioConfig      `yaml:"radio"`
	History    HistoryConfig    `yaml:"history"`
	Logging    LoggingConfig    `yaml:"logging"`

	// HTTPTimeoutSeconds bounds every outbound provider/service call.
	HTTPTimeoutSeconds int `yaml:"http_timeout_seconds"`
}

type SpotifyConfig struct {
	ClientID     string   `yaml:"client_id"`
	ClientSecret string   `yaml:"client_secret"`
	RedirectURI  string   `yaml:"redirect_uri"`
	Scopes       []string `yaml:"scopes"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

type ReccoBeatsConfig struct {
	BaseURL string `yaml:"base_url"`
}

type RadioConfig struct {
	Limit int `yaml:"limit"`
}

type HistoryConfig struct {
	DSN string `yaml:"dsn"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load builds the configuration: defaults, then the YAML file named by
// RADIOGEN_CONFIG (if any), then environment variables on top.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("RADIOGEN_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Listen: defaultListen,
		Spotify: SpotifyConfig{
			Scopes: []string{
				"user-read-playback-state",
				"user-modify-playback-state",
			},
		},
		OpenAI:             OpenAIConfig{Model: defaultOpenAIModel},
		ReccoBeats:         ReccoBeatsConfig{BaseURL: defaultReccoBeats},
		Radio:              RadioConfig{Limit: defaultRadioLimit},
		History:            HistoryConfig{DSN: defaultHistoryDSN},
		Logging:            LoggingConfig{Level: "info"},
		HTTPTimeoutSeconds: int(defaultHTTPTimeout / time.Second),
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Listen, "LISTEN_ADDR")
	setString(&c.Spotify.ClientID, "SPOTIFY_CLIENT_ID")
	setString(&c.Spotify.ClientSecret, "SPOTIFY_CLIENT_SECRET")
	setString(&c.Spotify.RedirectURI, "SPOTIFY_REDIRECT_URI")
	if raw := os.Getenv("SPOTIFY_SCOPE"); raw != "" {
		c.Spotify.Scopes = strings.Fields(raw)
	}
	setString(&c.OpenAI.APIKey, "OPENAI_API_KEY")
	setString(&c.OpenAI.Model, "OPENAI_MODEL")
	setString(&c.OpenAI.BaseURL, "OPENAI_BASE_URL")
	setString(&c.ReccoBeats.BaseURL, "RECCOBEATS_BASE_URL")
	setString(&c.History.DSN, "HISTORY_DSN")
	setString(&c.Logging.Level, "LOG_LEVEL")
	setInt(&c.Radio.Limit, "RADIO_LIMIT")
	setInt(&c.HTTPTimeoutSeconds, "HTTP_TIMEOUT_SECONDS")
}

func (c *Config) validate() error {
	if c.Spotify.ClientID == "" {
		return errors.New("config: SPOTIFY_CLIENT_ID is not set")
	}
	if c.Spotify.ClientSecret == "" {
		return errors.New("config: SPOTIFY_CLIENT_SECRET is not set")
	}
	if c.Spotify.RedirectURI == "" {
		return errors.New("config: SPOTIFY_REDIRECT_URI is not set")
	}
	if c.Radio.Limit < 1 {
		return fmt.Errorf("config: radio limit must be positive, got %d", c.Radio.Limit)
	}
	if c.HTTPTimeoutSeconds < 1 {
		return fmt.Errorf("config: http timeout must be positive, got %d", c.HTTPTimeoutSeconds)
	}
	return nil
}

// HTTPTimeout returns the outbound call timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	raw := os.Getenv(key)
	if raw == "" {
		return
	}
	if v, err := strconv.Atoi(raw); err == nil {
		*dst = v
	}
}
