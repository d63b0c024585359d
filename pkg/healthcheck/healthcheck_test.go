package healthcheck

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func healthyChecker() CheckerFunc {
	return func(ctx context.Context) (Status, string, interface{}) {
		return StatusHealthy, "", nil
	}
}

func unhealthyChecker(message string) CheckerFunc {
	return func(ctx context.Context) (Status, string, interface{}) {
		return StatusUnhealthy, message, nil
	}
}

func TestCheckAggregation(t *testing.T) {
	t.Run("AllHealthy", func(t *testing.T) {
		hc := New("test", zap.NewNop())
		hc.SetCacheTTL(0)
		hc.Register("store", healthyChecker())
		hc.Register("blobs", healthyChecker())

		response := hc.Check(context.Background())

		assert.Equal(t, StatusHealthy, response.Status)
		assert.Len(t, response.Checks, 2)
	})

	t.Run("OneUnhealthy_MarksAggregateUnhealthy", func(t *testing.T) {
		hc := New("test", zap.NewNop())
		hc.SetCacheTTL(0)
		hc.Register("store", healthyChecker())
		hc.Register("blobs", unhealthyChecker("connection refused"))

		response := hc.Check(context.Background())

		assert.Equal(t, StatusUnhealthy, response.Status)
	})

	t.Run("DegradedDoesNotOverrideUnhealthy", func(t *testing.T) {
		hc := New("test", zap.NewNop())
		hc.SetCacheTTL(0)
		hc.Register("store", unhealthyChecker("down"))
		hc.Register("upstream", CheckerFunc(func(ctx context.Context) (Status, string, interface{}) {
			return StatusDegraded, "slow", nil
		}))

		response := hc.Check(context.Background())

		assert.Equal(t, StatusUnhealthy, response.Status)
	})

	t.Run("RegistryFillsCheckName", func(t *testing.T) {
		hc := New("test", zap.NewNop())
		hc.SetCacheTTL(0)
		hc.Register("store", healthyChecker())

		response := hc.Check(context.Background())

		require.Len(t, response.Checks, 1)
		assert.Equal(t, "store", response.Checks[0].Name)
	})
}

func TestCheckCaching(t *testing.T) {
	hc := New("test", zap.NewNop())
	hc.SetCacheTTL(time.Minute)

	calls := 0
	hc.Register("store", CheckerFunc(func(ctx context.Context) (Status, string, interface{}) {
		calls++
		return StatusHealthy, "", nil
	}))

	hc.Check(context.Background())
	hc.Check(context.Background())

	assert.Equal(t, 1, calls)
}

func TestHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(hc *HealthCheck, path string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
		router := gin.New()
		router.GET(path, handler)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	t.Run("HealthHandler_Healthy200", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("store", healthyChecker())

		rec := serve(hc, "/healthz", hc.Handler())

		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "healthy", resp["status"])
		assert.Equal(t, "1.0.0", resp["version"])
	})

	t.Run("HealthHandler_Unhealthy503", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("store", unhealthyChecker("down"))

		rec := serve(hc, "/healthz", hc.Handler())

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("Liveness_AlwaysOK", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("store", unhealthyChecker("down"))

		rec := serve(hc, "/livez", hc.LivenessHandler())

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Readiness_FailsWhenDegraded", func(t *testing.T) {
		hc := New("1.0.0", zap.NewNop())
		hc.Register("upstream", CheckerFunc(func(ctx context.Context) (Status, string, interface{}) {
			return StatusDegraded, "slow", nil
		}))

		rec := serve(hc, "/readyz", hc.ReadinessHandler())

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestExternalServiceChecker(t *testing.T) {
	t.Run("SuccessStatus_Healthy", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer upstream.Close()

		checker := NewExternalServiceChecker("upstream", upstream.URL, time.Second)
		check := checker.Check(context.Background())

		assert.Equal(t, StatusHealthy, check.Status)
	})

	t.Run("ServerError_Unhealthy", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer upstream.Close()

		checker := NewExternalServiceChecker("upstream", upstream.URL, time.Second)
		check := checker.Check(context.Background())

		assert.Equal(t, StatusUnhealthy, check.Status)
	})

	t.Run("ClientError_Degraded", func(t *testing.T) {
		upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer upstream.Close()

		checker := NewExternalServiceChecker("upstream", upstream.URL, time.Second)
		check := checker.Check(context.Background())

		assert.Equal(t, StatusDegraded, check.Status)
	})

	t.Run("Unreachable_Unhealthy", func(t *testing.T) {
		checker := NewExternalServiceChecker("upstream", "http://127.0.0.1:1", time.Second)
		check := checker.Check(context.Background())

		assert.Equal(t, StatusUnhealthy, check.Status)
	})
}
