// Package rest is the HTTP interface: the OAuth handshake endpoints, the
// three radio trigger endpoints, and run history.
package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/radiogen/backend/internal/core/services"
)

// Session is the slice of the session store the handlers need.
type Session interface {
	Begin() string
	Exchange(ctx context.Context, state, code string) error
}

// Handler manages the HTTP interface for the application.
type Handler struct {
	svc     *services.Radio
	session Session
	router  *http.ServeMux
	log     *log.Logger
}

// NewHandler initializes the HTTP adapter and sets up routes.
func NewHandler(svc *services.Radio, session Session, logger *log.Logger) *Handler {
	h := &Handler{
		svc:     svc,
		session: session,
		router:  http.NewServeMux(),
		log:     logger,
	}

	h.routes()

	return h
}

// ServeHTTP satisfies the http.Handler interface and logs every request.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

	h.router.ServeHTTP(rec, r)

	h.log.Info("request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start))
}

// routes defines the mapping between URLs and methods.
func (h *Handler) routes() {
	h.router.HandleFunc("GET /health", h.HealthCheck)

	// OAuth handshake
	h.router.HandleFunc("GET /login", h.Login)
	h.router.HandleFunc("GET /callback", h.Callback)

	// Radio triggers, one per strategy
	h.router.HandleFunc("POST /trigger", h.TriggerNative)
	h.router.HandleFunc("POST /trigger-openai", h.TriggerOpenAI)
	h.router.HandleFunc("POST /trigger-reccobeats", h.TriggerReccoBeats)

	// Run history
	h.router.HandleFunc("GET /radios", h.ListRadios)
}

// HealthCheck is a simple endpoint to verify the API is running.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeErrorWithCode(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}
