package rest

import (
	"context"
	"net/http"
	"time"
)

const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDisabled = "disabled"

	pingTimeout = 3 * time.Second
)

type dbPinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness, readiness and full health probes.
type HealthHandler struct {
	db      dbPinger
	version string
}

// NewHealthHandler creates a HealthHandler. A nil db means the lookup history
// is disabled: the database is reported as "disabled" and readiness does
// not depend on it.
func NewHealthHandler(db dbPinger, version string) *HealthHandler {
	return &HealthHandler{db: db, version: version}
}

// HealthResponse is the body of every health endpoint.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the health of one dependency.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live answers 200 while the process is serving.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 503 when the history database is configured but unreachable.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	resp, code := h.probe(r.Context())
	resp.Components = nil
	writeJSON(w, code, resp)
}

// Health is Ready plus the version and per-component status.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp, code := h.probe(r.Context())
	resp.Version = h.version
	writeJSON(w, code, resp)
}

func (h *HealthHandler) probe(ctx context.Context) (HealthResponse, int) {
	db := h.pingDB(ctx)

	resp := HealthResponse{
		Status:     statusOK,
		Components: map[string]CompStatus{"database": db},
		Timestamp:  time.Now(),
	}
	if db.Status == statusDown {
		resp.Status = statusDown
		return resp, http.StatusServiceUnavailable
	}
	return resp, http.StatusOK
}

func (h *HealthHandler) pingDB(ctx context.Context) CompStatus {
	if h.db == nil {
		return CompStatus{Status: statusDisabled}
	}

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	start := time.Now()
	if err := h.db.Ping(ctx); err != nil {
		return CompStatus{Status: statusDown}
	}
	return CompStatus{Status: statusOK, Latency: time.Since(start).String()}
}
