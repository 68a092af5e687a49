package rest

import (
	"context"
	"net/http"
	"sync"
	"time"
)

const healthCheckTimeout = 3 * time.Second

// HealthCheck is one component probed by /ready and /health. A failing
// Optional component degrades the report but keeps the service ready.
type HealthCheck struct {
	Name     string
	Ping     func(ctx context.Context) error
	Optional bool
}

type HealthHandler struct {
	checks  []HealthCheck
	version string
	now     func() time.Time
}

func NewHealthHandler(version string, checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, version: version, now: time.Now}
}

// HealthResponse is the body of every probe.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusDown     = "down"
)

// Live always answers 200 while the process serves HTTP.
func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: h.now()})
}

// Ready answers 503 when a required component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.probe(r.Context())
	writeJSON(w, httpStatus(status), HealthResponse{Status: status, Timestamp: h.now()})
}

// Health reports every component with its latency, plus the build version.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.probe(r.Context())
	writeJSON(w, httpStatus(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  h.now(),
	})
}

// probe pings all components concurrently under one timeout.
func (h *HealthHandler) probe(ctx context.Context) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	results := make([]CompStatus, len(h.checks))
	var wg sync.WaitGroup
	for i, c := range h.checks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			if err := c.Ping(ctx); err != nil {
				results[i] = CompStatus{Status: statusDown, Error: err.Error()}
				return
			}
			results[i] = CompStatus{Status: statusOK, Latency: time.Since(start).String()}
		}()
	}
	wg.Wait()

	overall := statusOK
	components := make(map[string]CompStatus, len(h.checks))
	for i, c := range h.checks {
		components[c.Name] = results[i]
		if results[i].Status == statusOK {
			continue
		}
		if !c.Optional {
			overall = statusDown
		} else if overall == statusOK {
			overall = statusDegraded
		}
	}
	return overall, components
}

func httpStatus(status string) int {
	if status == statusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}
