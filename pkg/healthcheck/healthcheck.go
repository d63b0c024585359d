// Package healthcheck provides health and readiness check functionality
// Following the Health Check API pattern for cloud-native applications
package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Status represents the health status
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusUnhealthy Status = "unhealthy"
	StatusDegraded  Status = "degraded"
)

// Check represents a single health check result
type Check struct {
	Name        string        `json:"name"`
	Status      Status        `json:"status"`
	Message     string        `json:"message,omitempty"`
	LastChecked time.Time     `json:"last_checked"`
	Duration    time.Duration `json:"duration_ms"`
	Metadata    interface{}   `json:"metadata,omitempty"`
}

// Response represents the health check response
type Response struct {
	Status        Status        `json:"status"`
	Version       string        `json:"version"`
	Timestamp     time.Time     `json:"timestamp"`
	Checks        []Check       `json:"checks"`
	TotalDuration time.Duration `json:"total_duration_ms"`
}

// Checker defines the interface for health checks
type Checker interface {
	Check(ctx context.Context) Check
}

// CheckerFunc adapts a function into a Checker. The registry fills in the
// check name, so the function only reports status, message, and metadata.
type CheckerFunc func(ctx context.Context) (Status, string, interface{})

// Check implements Checker
func (f CheckerFunc) Check(ctx context.Context) Check {
	start := time.Now()
	status, message, metadata := f(ctx)
	return Check{
		Status:      status,
		Message:     message,
		Metadata:    metadata,
		LastChecked: start,
		Duration:    time.Since(start),
	}
}

// HealthCheck manages registered checkers and caches aggregate results
type HealthCheck struct {
	version  string
	checkers map[string]Checker
	logger   *zap.Logger
	mu       sync.RWMutex
	cache    *Response
	cacheTTL time.Duration
}

// New creates a new health check instance
func New(version string, logger *zap.Logger) *HealthCheck {
	return &HealthCheck{
		version:  version,
		checkers: make(map[string]Checker),
		logger:   logger,
		cacheTTL: 5 * time.Second,
	}
}

// Register registers a health checker under a name
func (h *HealthCheck) Register(name string, checker Checker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// SetCacheTTL sets the cache TTL for health check responses
func (h *HealthCheck) SetCacheTTL(ttl time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.cacheTTL = ttl
}

// Handler returns the HTTP handler for health checks
func (h *HealthCheck) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := h.Check(c.Request.Context())

		statusCode := http.StatusOK
		if response.Status == StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}

		c.JSON(statusCode, response)
	}
}

// LivenessHandler returns the HTTP handler for liveness checks
func (h *HealthCheck) LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		// If the handler responds, the process is alive.
		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"timestamp": time.Now(),
		})
	}
}

// ReadinessHandler returns the HTTP handler for readiness checks
func (h *HealthCheck) ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		response := h.Check(c.Request.Context())

		// Ready only when every dependency check passes.
		if response.Status != StatusHealthy {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not_ready",
				"reason": "Health checks failed",
				"checks": response.Checks,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now(),
		})
	}
}

// Check performs all registered checks concurrently and aggregates the
// result. Results are cached for the configured TTL so probe traffic does
// not hammer the backing stores.
func (h *HealthCheck) Check(ctx context.Context) Response {
	h.mu.RLock()
	if h.cache != nil && time.Since(h.cache.Timestamp) < h.cacheTTL {
		cached := *h.cache
		h.mu.RUnlock()
		return cached
	}
	h.mu.RUnlock()

	start := time.Now()
	response := Response{
		Version:   h.version,
		Timestamp: start,
		Status:    StatusHealthy,
		Checks:    []Check{},
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var wg sync.WaitGroup
	checksChan := make(chan Check, len(h.checkers))

	h.mu.RLock()
	for name, checker := range h.checkers {
		wg.Add(1)
		go func(n string, c Checker) {
			defer wg.Done()
			check := c.Check(checkCtx)
			check.Name = n
			checksChan <- check
		}(name, checker)
	}
	h.mu.RUnlock()

	go func() {
		wg.Wait()
		close(checksChan)
	}()

	for check := range checksChan {
		response.Checks = append(response.Checks, check)

		if check.Status == StatusUnhealthy {
			response.Status = StatusUnhealthy
		} else if check.Status == StatusDegraded && response.Status == StatusHealthy {
			response.Status = StatusDegraded
		}
	}

	response.TotalDuration = time.Since(start)

	h.mu.Lock()
	h.cache = &response
	h.mu.Unlock()

	return response
}

// ExternalServiceChecker checks an upstream HTTP service
type ExternalServiceChecker struct {
	name    string
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewExternalServiceChecker creates a new external service checker
func NewExternalServiceChecker(name, url string, timeout time.Duration) *ExternalServiceChecker {
	return &ExternalServiceChecker{
		name:    name,
		url:     url,
		timeout: timeout,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Check performs the external service health check
func (e *ExternalServiceChecker) Check(ctx context.Context) Check {
	start := time.Now()
	check := Check{
		Name:        e.name,
		LastChecked: start,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, e.url, nil)
	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
		check.Duration = time.Since(start)
		return check
	}

	resp, err := e.client.Do(req)
	check.Duration = time.Since(start)

	if err != nil {
		check.Status = StatusUnhealthy
		check.Message = err.Error()
		return check
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		check.Status = StatusHealthy
	case resp.StatusCode >= 500:
		check.Status = StatusUnhealthy
		check.Message = "Service returned error status"
	default:
		check.Status = StatusDegraded
		check.Message = "Service returned non-success status"
	}

	check.Metadata = map[string]interface{}{
		"status_code": resp.StatusCode,
		"url":         e.url,
	}

	return check
}

// MarshalJSON customizes JSON marshaling for duration
func (c Check) MarshalJSON() ([]byte, error) {
	type Alias Check
	return json.Marshal(&struct {
		Duration float64 `json:"duration_ms"`
		*Alias
	}{
		Duration: float64(c.Duration.Milliseconds()),
		Alias:    (*Alias)(&c),
	})
}

// MarshalJSON customizes JSON marshaling for response
func (r Response) MarshalJSON() ([]byte, error) {
	type Alias Response
	return json.Marshal(&struct {
		TotalDuration float64 `json:"total_duration_ms"`
		*Alias
	}{
		TotalDuration: float64(r.TotalDuration.Milliseconds()),
		Alias:         (*Alias)(&r),
	})
}
