package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"schedbot/internal/calendar"
	"schedbot/internal/scheduler"
)

type staticGateway struct{ calendar.Gateway }

func newTestServerContext(t *testing.T, rosterSize int) *ServerContext {
	t.Helper()
	var users []scheduler.User
	for i := 0; i < rosterSize; i++ {
		users = append(users, scheduler.User{ID: "user", Cal: staticGateway{}})
	}
	assistant := scheduler.New(users, nil, scheduler.Options{})
	sc := NewServerContextWithAssistant(context.Background(), assistant, nil)
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func TestLivenessHandler(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t, 1))

	rec := httptest.NewRecorder()
	h.LivenessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("liveness status = %d, want %d", rec.Code, http.StatusOK)
	}
	var resp HealthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("liveness status field = %q, want ok", resp.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	t.Run("ready with calendars", func(t *testing.T) {
		h := NewHealthChecker(newTestServerContext(t, 2))

		rec := httptest.NewRecorder()
		h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusOK)
		}
	})

	t.Run("not ready without calendars", func(t *testing.T) {
		h := NewHealthChecker(newTestServerContext(t, 0))

		rec := httptest.NewRecorder()
		h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		var resp HealthResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON response: %v", err)
		}
		if resp.Checks["calendars"] != "not ready" {
			t.Errorf("calendars check = %q, want not ready", resp.Checks["calendars"])
		}
	})

	t.Run("not ready after shutdown", func(t *testing.T) {
		sc := newTestServerContext(t, 1)
		h := NewHealthChecker(sc)
		_ = sc.Shutdown()

		rec := httptest.NewRecorder()
		h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})

	t.Run("not ready when marked unready", func(t *testing.T) {
		h := NewHealthChecker(newTestServerContext(t, 1))
		h.SetReady(false)

		rec := httptest.NewRecorder()
		h.ReadinessHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("readiness status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
	})
}

func TestRegisterHealthEndpoints(t *testing.T) {
	h := NewHealthChecker(newTestServerContext(t, 1))

	mux := http.NewServeMux()
	h.RegisterHealthEndpoints(mux)

	for _, path := range []string{"/healthz", "/readyz", "/healthz/detailed"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want %d", path, rec.Code, http.StatusOK)
		}
	}
}
