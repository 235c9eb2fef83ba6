package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/domain/repositories"
)

var (
	sessionLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "polywallet_session_loads_total",
			Help: "Total number of wallet loads by outcome",
		},
		[]string{"outcome"},
	)

	sessionLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "polywallet_session_load_duration_seconds",
			Help:    "Time to fetch and derive every view of a wallet",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
	)
)

// DashboardService loads a wallet from the market data API and derives
// every dashboard view from the results
type DashboardService struct {
	repo          repositories.MarketDataRepository
	tracker       *SessionTracker
	loc           *time.Location
	profileLookup bool
	logger        *zap.Logger
}

// NewDashboardService creates a new dashboard service. Dates are rendered
// in loc; profileLookup enables the secondary public-profile request.
func NewDashboardService(
	repo repositories.MarketDataRepository,
	loc *time.Location,
	profileLookup bool,
	logger *zap.Logger,
) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		repo:          repo,
		tracker:       NewSessionTracker(),
		loc:           loc,
		profileLookup: profileLookup,
		logger:        logger,
	}
}

// DashboardDTO is every view of a wallet for one leaderboard period
type DashboardDTO struct {
	SessionID string             `json:"session_id"`
	Wallet    string             `json:"wallet"`
	LoadedAt  string             `json:"loaded_at"`
	Profile   ProfileDTO         `json:"profile"`
	Open      OpenPositionsDTO   `json:"open_positions"`
	Closed    ClosedPositionsDTO `json:"closed_positions"`
	Activity  ActivityDTO        `json:"activity"`
	Analysis  AnalysisDTO        `json:"analysis"`
}

// DashboardResponse wraps the dashboard for API response
type DashboardResponse struct {
	Data DashboardDTO `json:"data"`
}

// Dashboard assembles the views of the session for a leaderboard period
func (s *Session) Dashboard(period entities.Period) *DashboardResponse {
	return &DashboardResponse{
		Data: DashboardDTO{
			SessionID: s.ID.String(),
			Wallet:    s.Wallet,
			LoadedAt:  s.LoadedAt.Format(time.RFC3339),
			Profile:   s.Profile(period),
			Open:      s.Open,
			Closed:    s.Closed,
			Activity:  s.Activity,
			Analysis:  s.Analysis,
		},
	}
}

// Load validates the wallet and loads it without touching the current
// session. No request is issued for an invalid wallet.
func (s *DashboardService) Load(ctx context.Context, wallet string) (*Session, error) {
	addr, err := entities.ValidateWallet(wallet)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, addr, 0), nil
}

// Search loads the wallet and makes it the current session. When another
// search starts before this one finishes, the result is discarded and
// ErrSessionSuperseded is returned.
func (s *DashboardService) Search(ctx context.Context, wallet string) (*Session, error) {
	addr, err := entities.ValidateWallet(wallet)
	if err != nil {
		return nil, err
	}

	token := s.tracker.Begin()
	session := s.load(ctx, addr, token)
	if err := s.tracker.Commit(session); err != nil {
		sessionLoadsTotal.WithLabelValues("superseded").Inc()
		s.logger.Info("Discarding superseded search",
			zap.String("wallet", addr),
			zap.Uint64("token", token),
		)
		return nil, err
	}
	return session, nil
}

// Current returns the current session, nil before the first search
func (s *DashboardService) Current() *Session {
	return s.tracker.Current()
}

// load runs every fetch concurrently and waits for all of them to settle.
// A failing fetch only degrades its own section.
func (s *DashboardService) load(ctx context.Context, wallet string, token uint64) *Session {
	start := time.Now()

	var (
		g         errgroup.Group
		positions entities.FetchResult[[]entities.PositionRecord]
		closed    entities.FetchResult[[]entities.PositionRecord]
		activity  entities.FetchResult[[]entities.ActivityRecord]
		traded    entities.FetchResult[entities.TradedCount]
		public    entities.FetchResult[*entities.PublicProfile]
		boards    = make([]entities.FetchResult[[]entities.LeaderboardEntry], len(entities.Periods))
	)

	g.Go(func() error {
		positions = s.repo.GetPositions(ctx, wallet)
		return nil
	})
	g.Go(func() error {
		closed = s.repo.GetClosedPositions(ctx, wallet)
		return nil
	})
	g.Go(func() error {
		activity = s.repo.GetActivity(ctx, wallet)
		return nil
	})
	for i, period := range entities.Periods {
		i, period := i, period
		g.Go(func() error {
			boards[i] = s.repo.GetLeaderboard(ctx, wallet, period)
			return nil
		})
	}
	g.Go(func() error {
		traded = s.repo.GetTraded(ctx, wallet)
		return nil
	})
	if s.profileLookup {
		g.Go(func() error {
			public = s.repo.GetPublicProfile(ctx, wallet)
			return nil
		})
	}
	_ = g.Wait()

	session := &Session{
		ID:          uuid.New(),
		Token:       token,
		Wallet:      wallet,
		LoadedAt:    time.Now().UTC(),
		Open:        BuildOpenPositions(positions),
		Closed:      BuildClosedPositions(closed, s.loc),
		Activity:    BuildActivity(activity, s.loc),
		leaderboard: make(map[entities.Period][]entities.LeaderboardEntry, len(boards)),
		raw:         make(map[string]RawView, len(RawEndpoints)),
	}

	var closedRecords []entities.PositionRecord
	if closed.OK() {
		closedRecords = closed.Data
	}
	session.Analysis = Analyze(closedRecords, s.loc)

	for i, period := range entities.Periods {
		if boards[i].OK() {
			session.leaderboard[period] = boards[i].Data
		}
	}
	if traded.OK() {
		session.traded = &traded.Data
	}
	if public.OK() {
		session.public = public.Data
	}

	if v, ok := newRawView(positions, wallet); ok {
		session.raw[string(v.Endpoint)] = v
	}
	if v, ok := newRawView(closed, wallet); ok {
		session.raw[string(v.Endpoint)] = v
	}
	if v, ok := newRawView(activity, wallet); ok {
		session.raw[string(v.Endpoint)] = v
	}

	failed := 0
	for _, status := range []entities.FetchStatus{positions.Status, closed.Status, activity.Status, traded.Status} {
		if status == entities.FetchFailed {
			failed++
		}
	}
	for _, b := range boards {
		if b.Status == entities.FetchFailed {
			failed++
		}
	}

	outcome := "complete"
	if failed > 0 {
		outcome = "partial"
	}
	sessionLoadsTotal.WithLabelValues(outcome).Inc()
	sessionLoadDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("Wallet loaded",
		zap.String("wallet", wallet),
		zap.String("session_id", session.ID.String()),
		zap.Int("failed_fetches", failed),
		zap.Duration("duration", time.Since(start)),
	)
	return session
}
