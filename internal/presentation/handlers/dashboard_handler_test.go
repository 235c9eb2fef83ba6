package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/testutil"
)

func newFixtureRepo() *testutil.MockMarketDataRepository {
	repo := testutil.NewMockMarketDataRepository()
	repo.SetPositions(testutil.CreateTestPosition(testutil.WithCashPnl(2)))
	repo.SetClosedPositions(
		testutil.CreateTestPosition(testutil.WithSlug("a"), testutil.WithRealizedPnl(10), testutil.WithCloseTimestamp(testutil.Nov14of2023)),
		testutil.CreateTestPosition(testutil.WithSlug("b"), testutil.WithRealizedPnl(-4), testutil.WithCloseTimestamp(testutil.Nov15of2023)),
	)
	repo.SetActivity(testutil.CreateTestActivity())
	repo.SetLeaderboard(entities.PeriodAll, testutil.CreateTestLeaderboardEntry("5", 100, 1000))
	repo.SetTraded(3)
	return repo
}

func setupDashboardHandler(repo *testutil.MockMarketDataRepository) http.Handler {
	logger := zap.NewNop()
	service := services.NewDashboardService(repo, time.UTC, false, logger)
	handler := NewDashboardHandler(service, logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func TestDashboardHandler_GetDashboard(t *testing.T) {
	t.Run("returns dashboard successfully", func(t *testing.T) {
		r := setupDashboardHandler(newFixtureRepo())

		req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/dashboard?period=all", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}

		var response services.DashboardResponse
		if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if response.Data.Wallet != testutil.AliceWallet {
			t.Errorf("expected wallet %s, got %s", testutil.AliceWallet, response.Data.Wallet)
		}
		if response.Data.Profile.Rank != "5" {
			t.Errorf("expected rank 5, got %s", response.Data.Profile.Rank)
		}
		if len(response.Data.Closed.Markets) != 2 {
			t.Errorf("expected 2 closed markets, got %d", len(response.Data.Closed.Markets))
		}
		if response.Data.Analysis.GrandTotal != "+$6.00" {
			t.Errorf("expected grand total +$6.00, got %s", response.Data.Analysis.GrandTotal)
		}
		if response.Data.SessionID == "" {
			t.Error("expected session id")
		}
	})

	t.Run("returns error for invalid address", func(t *testing.T) {
		repo := newFixtureRepo()
		r := setupDashboardHandler(repo)

		req := httptest.NewRequest("GET", "/wallets/0x123/dashboard", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
		if len(repo.Calls) != 0 {
			t.Errorf("expected no upstream calls, got %d", len(repo.Calls))
		}

		var response map[string]string
		json.NewDecoder(w.Body).Decode(&response)
		if response["error"] == "" {
			t.Error("expected error message")
		}
	})

	t.Run("returns error for unknown period", func(t *testing.T) {
		r := setupDashboardHandler(newFixtureRepo())

		req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/dashboard?period=YEAR", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("expected status 400, got %d", w.Code)
		}
	})

	t.Run("upstream failure degrades sections", func(t *testing.T) {
		repo := newFixtureRepo()
		repo.GetActivityFunc = func(ctx context.Context, user string) entities.FetchResult[[]entities.ActivityRecord] {
			return entities.Failed[[]entities.ActivityRecord](entities.EndpointActivity, testutil.ErrUpstream)
		}
		r := setupDashboardHandler(repo)

		req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/dashboard", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}

		var response services.DashboardResponse
		json.NewDecoder(w.Body).Decode(&response)
		if response.Data.Activity.Status != entities.FetchFailed {
			t.Errorf("expected failed activity, got %s", response.Data.Activity.Status)
		}
		if len(response.Data.Open.Markets) != 1 {
			t.Errorf("expected open positions to survive, got %d", len(response.Data.Open.Markets))
		}
	})
}

func TestDashboardHandler_GetProfile(t *testing.T) {
	r := setupDashboardHandler(newFixtureRepo())

	req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/profile?period=DAY", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response DataResponse[services.ProfileDTO]
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if response.Data.Rank != "—" {
		t.Errorf("expected placeholder rank for DAY, got %s", response.Data.Rank)
	}
	if response.Data.UserName != "alice" {
		t.Errorf("expected user name alice, got %s", response.Data.UserName)
	}
	if response.Data.TradeCount != "3" {
		t.Errorf("expected trade count 3, got %s", response.Data.TradeCount)
	}
}

func TestDashboardHandler_GetTimeline(t *testing.T) {
	r := setupDashboardHandler(newFixtureRepo())

	req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/timeline", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response DataResponse[services.AnalysisDTO]
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(response.Data.Timeline) != 2 {
		t.Fatalf("expected 2 timeline points, got %d", len(response.Data.Timeline))
	}
	if response.Data.Timeline[1].CumulativePnl != 6 {
		t.Errorf("expected cumulative 6, got %v", response.Data.Timeline[1].CumulativePnl)
	}
}

func TestDashboardHandler_GetTimelineChart(t *testing.T) {
	t.Run("renders png", func(t *testing.T) {
		r := setupDashboardHandler(newFixtureRepo())

		req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/timeline.png", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("expected image/png, got %s", ct)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
			t.Error("expected PNG body")
		}
	})

	t.Run("no closed positions", func(t *testing.T) {
		r := setupDashboardHandler(testutil.NewMockMarketDataRepository())

		req := httptest.NewRequest("GET", "/wallets/"+testutil.AliceWallet+"/timeline.png", nil)
		w := httptest.NewRecorder()

		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", w.Code)
		}
	})
}
