package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/heartmarshall/sprachtrainer/internal/service/trainer"
)

const pingTimeout = 3 * time.Second

type storePinger interface {
	Ping(ctx context.Context) error
}

type configSource interface {
	Snapshot(ctx context.Context) trainer.ActiveConfig
}

// HealthHandler serves the probe endpoints.
type HealthHandler struct {
	store   storePinger
	backend string
	trainer configSource
	version string
}

// NewHealthHandler creates a HealthHandler. backend names the storage in
// use, e.g. "postgres" or "sqlite".
func NewHealthHandler(store storePinger, backend string, t configSource, version string) *HealthHandler {
	return &HealthHandler{store: store, backend: backend, trainer: t, version: version}
}

// HealthResponse is the JSON body of /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of one component.
type CompStatus struct {
	Status  string `json:"status"`
	Detail  string `json:"detail,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Ready answers 200 when storage responds, 503 otherwise.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "down", Timestamp: time.Now()})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

// Health reports storage latency and the active difficulty level. A
// trainer running on the default level because storage failed is
// "degraded" but still serves, so it answers 200.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	components := make(map[string]CompStatus, 2)
	overall := "ok"

	start := time.Now()
	if err := h.store.Ping(ctx); err != nil {
		components["storage"] = CompStatus{Status: "down", Detail: h.backend}
		overall = "down"
	} else {
		components["storage"] = CompStatus{Status: "ok", Detail: h.backend, Latency: time.Since(start).String()}
	}

	ac := h.trainer.Snapshot(ctx)
	level := CompStatus{Status: "ok", Detail: "level " + ac.Level.String()}
	if ac.Degraded {
		level.Status = "degraded"
		if overall == "ok" {
			overall = "degraded"
		}
	}
	components["trainer"] = level

	status := http.StatusOK
	if overall == "down" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
