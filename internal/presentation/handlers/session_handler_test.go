package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/infrastructure/presets"
	"github.com/bimakw/polywallet/internal/testutil"
)

func setupSessionHandler(repo *testutil.MockMarketDataRepository) http.Handler {
	logger := zap.NewNop()
	service := services.NewDashboardService(repo, time.UTC, false, logger)
	handler := NewSessionHandler(service, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func search(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/session", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSessionHandler_Search(t *testing.T) {
	t.Run("loads wallet and makes it current", func(t *testing.T) {
		r := setupSessionHandler(newFixtureRepo())

		w := search(r, `{"wallet":"`+testutil.AliceWallet+`"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		req := httptest.NewRequest("GET", "/session?period=WEEK", nil)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var response services.DashboardResponse
		if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if response.Data.Wallet != testutil.AliceWallet {
			t.Errorf("expected wallet %s, got %s", testutil.AliceWallet, response.Data.Wallet)
		}
		if response.Data.Profile.Period != "WEEK" {
			t.Errorf("expected period WEEK, got %s", response.Data.Profile.Period)
		}
	})

	t.Run("rejects invalid wallet", func(t *testing.T) {
		repo := newFixtureRepo()
		r := setupSessionHandler(repo)

		w := search(r, `{"wallet":"  "}`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
		if len(repo.Calls) != 0 {
			t.Errorf("expected no upstream calls, got %d", len(repo.Calls))
		}
	})

	t.Run("rejects malformed body", func(t *testing.T) {
		r := setupSessionHandler(newFixtureRepo())

		w := search(r, `{"wallet":`)
		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})
}

func TestSessionHandler_GetCurrent_NoSession(t *testing.T) {
	r := setupSessionHandler(newFixtureRepo())

	req := httptest.NewRequest("GET", "/session", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", w.Code)
	}
}

func TestSessionHandler_GetRaw(t *testing.T) {
	r := setupSessionHandler(newFixtureRepo())

	req := httptest.NewRequest("GET", "/session/raw/activity", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected status 404 before search, got %d", w.Code)
	}

	if w := search(r, `{"wallet":"`+testutil.AliceWallet+`"}`); w.Code != http.StatusOK {
		t.Fatalf("search failed: %d", w.Code)
	}

	t.Run("known endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/session/raw/closed-positions", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var view services.RawView
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if view.Endpoint != "/closed-positions" {
			t.Errorf("expected endpoint /closed-positions, got %s", view.Endpoint)
		}
		if view.Count != 2 {
			t.Errorf("expected count 2, got %d", view.Count)
		}
		if view.Wallet != testutil.AliceWallet {
			t.Errorf("expected wallet %s, got %s", testutil.AliceWallet, view.Wallet)
		}
	})

	t.Run("unknown endpoint", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/session/raw/leaderboard", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})
}

func TestPresetsHandler_List(t *testing.T) {
	handler := NewPresetsHandler([]presets.Preset{{Label: "Whale", Wallet: testutil.AliceWallet}})

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	req := httptest.NewRequest("GET", "/presets", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response DataResponse[[]presets.Preset]
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Data) != 1 || response.Data[0].Label != "Whale" {
		t.Errorf("unexpected presets: %+v", response.Data)
	}
}
