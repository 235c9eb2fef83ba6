package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bimakw/polywallet/internal/testutil"
)

func TestNewHealthHandler(t *testing.T) {
	upstream := testutil.NewMockHealthChecker(true)

	handler := NewHealthHandler(upstream)
	if handler == nil {
		t.Fatal("expected non-nil handler")
	}
}

func TestHealthHandler_Health_AllHealthy(t *testing.T) {
	handler := NewHealthHandler(testutil.NewMockHealthChecker(true))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Services["polymarket"] != "healthy" {
		t.Errorf("expected polymarket healthy, got %s", response.Services["polymarket"])
	}
	if response.Timestamp == "" {
		t.Error("expected non-empty timestamp")
	}
}

func TestHealthHandler_Health_UpstreamUnhealthy(t *testing.T) {
	handler := NewHealthHandler(testutil.NewMockHealthChecker(false))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	// Upstream outage degrades but does not fail the service
	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200 for degraded, got %d", rec.Code)
	}

	var response HealthResponse
	json.NewDecoder(rec.Body).Decode(&response)

	if response.Status != "degraded" {
		t.Errorf("expected status degraded, got %s", response.Status)
	}
	if response.Services["polymarket"] == "healthy" {
		t.Error("expected polymarket to be unhealthy")
	}
}

func TestHealthHandler_Health_NoUpstream(t *testing.T) {
	handler := NewHealthHandler(nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	var response HealthResponse
	json.NewDecoder(rec.Body).Decode(&response)

	if response.Status != "healthy" {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if _, exists := response.Services["polymarket"]; exists {
		t.Error("polymarket should not be in services when nil")
	}
}

func TestHealthHandler_Health_ContentType(t *testing.T) {
	handler := NewHealthHandler(testutil.NewMockHealthChecker(true))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	contentType := rec.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}
}

func TestHealthHandler_Ready(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		handler := NewHealthHandler(testutil.NewMockHealthChecker(true))

		rec := httptest.NewRecorder()
		handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected status 200, got %d", rec.Code)
		}
		if body := rec.Body.String(); body != "ready" {
			t.Errorf("expected body 'ready', got '%s'", body)
		}
	})

	t.Run("unhealthy", func(t *testing.T) {
		handler := NewHealthHandler(testutil.NewMockHealthChecker(false))

		rec := httptest.NewRecorder()
		handler.Ready(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("expected status 503, got %d", rec.Code)
		}
	})
}

func TestHealthHandler_Live_AlwaysAlive(t *testing.T) {
	// Even when upstream is unhealthy, liveness should pass
	handler := NewHealthHandler(testutil.NewMockHealthChecker(false))

	rec := httptest.NewRecorder()
	handler.Live(rec, httptest.NewRequest(http.MethodGet, "/live", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "alive" {
		t.Errorf("expected body 'alive', got '%s'", body)
	}
}
