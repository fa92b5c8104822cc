package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/radiogen/backend/internal/adapters/openai"
	"github.com/radiogen/backend/internal/adapters/reccobeats"
	"github.com/radiogen/backend/internal/adapters/rest"
	"github.com/radiogen/backend/internal/adapters/spotify"
	"github.com/radiogen/backend/internal/adapters/sqlite"
	"github.com/radiogen/backend/internal/config"
	"github.com/radiogen/backend/internal/core/ports"
	"github.com/radiogen/backend/internal/core/services"
	"github.com/radiogen/backend/internal/session"
	"github.com/radiogen/backend/internal/worker"
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "radiogen",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("configuration error", "err", err)
	}
	if level, err := log.ParseLevel(cfg.Logging.Level); err == nil {
		logger.SetLevel(level)
	}

	// One authenticated session for the whole process.
	sess := session.NewStore(&oauth2.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		RedirectURL:  cfg.Spotify.RedirectURI,
		Scopes:       cfg.Spotify.Scopes,
		Endpoint:     endpoints.Spotify,
	})

	// Driven adapters. Every outbound call shares one bounded timeout.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout()}
	provider := spotify.NewClient(httpClient, "", sess)
	similar := reccobeats.NewClient(httpClient, cfg.ReccoBeats.BaseURL)

	repo, err := sqlite.NewAdapter(cfg.History.DSN)
	if err != nil {
		logger.Fatal("failed to initialize history store", "err", err)
	}
	defer repo.Close()

	pool := worker.NewPool(repo, similar, 100, logger.With("component", "worker"))
	pool.Start(2)
	defer pool.Stop()

	recommenders := []ports.Recommender{
		services.NewNativeRecommender(provider),
		services.NewSimilarityRecommender(similar),
	}
	if cfg.OpenAI.APIKey != "" {
		ideas := openai.NewClient(httpClient, cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		recommenders = append(recommenders,
			services.NewLLMRecommender(ideas, provider, logger.With("component", "llm")))
	} else {
		logger.Info("OPENAI_API_KEY is not set, /trigger-openai is disabled")
	}

	dispatcher := services.NewDispatcher(provider, logger.With("component", "dispatcher"))
	svc := services.NewRadio(provider, recommenders, dispatcher, repo, pool, cfg.Radio.Limit, logger.With("component", "radio"))

	handler := rest.NewHandler(svc, sess, logger.With("component", "http"))

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	logger.Info("radiogen API is running", "addr", cfg.Listen)

	serverErr := make(chan error, 1)
	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-serverErr:
		if err != nil {
			logger.Fatal("server error", "err", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "err", err)
		}
	}
}
