package server

import (
	"net/http"
	"sync/atomic"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	healthStatusOK           = "ok"
	healthStatusNotReady     = "not ready"
	healthStatusShuttingDown = "shutting down"
)

// HealthChecker answers liveness and readiness probes.
type HealthChecker struct {
	ready        atomic.Bool
	shuttingDown atomic.Bool
	startTime    time.Time
	version      string
	tools        int
}

// NewHealthChecker returns a checker that starts ready.
func NewHealthChecker(version string, tools int) *HealthChecker {
	h := &HealthChecker{startTime: time.Now(), version: version, tools: tools}
	h.ready.Store(true)
	return h
}

// SetReady sets the readiness state.
func (h *HealthChecker) SetReady(ready bool) {
	h.ready.Store(ready)
}

// IsReady reports whether the server accepts traffic.
func (h *HealthChecker) IsReady() bool {
	return h.ready.Load() && !h.shuttingDown.Load()
}

// MarkShuttingDown fails readiness from now on.
func (h *HealthChecker) MarkShuttingDown() {
	h.shuttingDown.Store(true)
}

// HealthResponse is the body of /health and the probes.
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp,omitempty"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// DetailedHealthResponse is the body of /healthz/detailed.
type DetailedHealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Version string `json:"version"`
	Tools   int    `json:"tools"`
}

// Health answers GET /health.
func (h *HealthChecker) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    healthStatusOK,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Liveness answers GET /healthz. It only proves the process is serving.
func (h *HealthChecker) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: healthStatusOK})
}

// Readiness answers GET /readyz.
func (h *HealthChecker) Readiness(c echo.Context) error {
	checks := map[string]string{
		"ready":    healthStatusOK,
		"shutdown": healthStatusOK,
	}
	if !h.ready.Load() {
		checks["ready"] = healthStatusNotReady
	}
	if h.shuttingDown.Load() {
		checks["shutdown"] = healthStatusShuttingDown
	}

	if !h.IsReady() {
		return c.JSON(http.StatusServiceUnavailable, HealthResponse{Status: healthStatusNotReady, Checks: checks})
	}
	return c.JSON(http.StatusOK, HealthResponse{Status: healthStatusOK, Checks: checks})
}

// Detailed answers GET /healthz/detailed.
func (h *HealthChecker) Detailed(c echo.Context) error {
	resp := DetailedHealthResponse{
		Status:  healthStatusOK,
		Uptime:  time.Since(h.startTime).Truncate(time.Second).String(),
		Version: h.version,
		Tools:   h.tools,
	}
	status := http.StatusOK
	switch {
	case h.shuttingDown.Load():
		resp.Status, status = healthStatusShuttingDown, http.StatusServiceUnavailable
	case !h.ready.Load():
		resp.Status, status = healthStatusNotReady, http.StatusServiceUnavailable
	}
	return c.JSON(status, resp)
}

// Register mounts the health routes on e.
func (h *HealthChecker) Register(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/healthz", h.Liveness)
	e.GET("/readyz", h.Readiness)
	e.GET("/healthz/detailed", h.Detailed)
}
