package testutil

import (
	"context"
	"errors"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/bimakw/polywallet/internal/domain/entities"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrUpstream is a generic transport failure for tests
var ErrUpstream = errors.New("upstream unavailable")

// MockMarketDataRepository is a mock implementation of MarketDataRepository.
// Without hooks it serves the stored data, reporting empty slices as FetchEmpty.
type MockMarketDataRepository struct {
	mu          sync.RWMutex
	positions   []entities.PositionRecord
	closed      []entities.PositionRecord
	activity    []entities.ActivityRecord
	leaderboard map[entities.Period][]entities.LeaderboardEntry
	traded      *entities.TradedCount
	profile     *entities.PublicProfile

	// Function hooks for custom behavior
	GetPositionsFunc       func(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord]
	GetClosedPositionsFunc func(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord]
	GetActivityFunc        func(ctx context.Context, user string) entities.FetchResult[[]entities.ActivityRecord]
	GetLeaderboardFunc     func(ctx context.Context, user string, period entities.Period) entities.FetchResult[[]entities.LeaderboardEntry]
	GetTradedFunc          func(ctx context.Context, user string) entities.FetchResult[entities.TradedCount]
	GetPublicProfileFunc   func(ctx context.Context, address string) entities.FetchResult[*entities.PublicProfile]

	// Call tracking
	Calls []MockCall
}

type MockCall struct {
	Method string
	Args   []interface{}
}

func NewMockMarketDataRepository() *MockMarketDataRepository {
	return &MockMarketDataRepository{
		leaderboard: make(map[entities.Period][]entities.LeaderboardEntry),
		Calls:       make([]MockCall, 0),
	}
}

// SetPositions stores open positions
func (m *MockMarketDataRepository) SetPositions(records ...entities.PositionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions = records
}

// SetClosedPositions stores closed positions
func (m *MockMarketDataRepository) SetClosedPositions(records ...entities.PositionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = records
}

// SetActivity stores activity records
func (m *MockMarketDataRepository) SetActivity(records ...entities.ActivityRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.activity = records
}

// SetLeaderboard stores the leaderboard rows of a period
func (m *MockMarketDataRepository) SetLeaderboard(period entities.Period, rows ...entities.LeaderboardEntry) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leaderboard[period] = rows
}

// SetTraded stores the traded count
func (m *MockMarketDataRepository) SetTraded(n float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.traded = &entities.TradedCount{Value: n, Present: true}
}

// SetPublicProfile stores the public profile
func (m *MockMarketDataRepository) SetPublicProfile(p *entities.PublicProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile = p
}

// CallCount returns how many times method was called
func (m *MockMarketDataRepository) CallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockMarketDataRepository) record(method string, args ...interface{}) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

func (m *MockMarketDataRepository) GetPositions(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord] {
	m.record("GetPositions", user)
	if m.GetPositionsFunc != nil {
		return m.GetPositionsFunc(ctx, user)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ListResult(entities.EndpointPositions, m.positions)
}

func (m *MockMarketDataRepository) GetClosedPositions(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord] {
	m.record("GetClosedPositions", user)
	if m.GetClosedPositionsFunc != nil {
		return m.GetClosedPositionsFunc(ctx, user)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ListResult(entities.EndpointClosedPositions, m.closed)
}

func (m *MockMarketDataRepository) GetActivity(ctx context.Context, user string) entities.FetchResult[[]entities.ActivityRecord] {
	m.record("GetActivity", user)
	if m.GetActivityFunc != nil {
		return m.GetActivityFunc(ctx, user)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ListResult(entities.EndpointActivity, m.activity)
}

func (m *MockMarketDataRepository) GetLeaderboard(ctx context.Context, user string, period entities.Period) entities.FetchResult[[]entities.LeaderboardEntry] {
	m.record("GetLeaderboard", user, period)
	if m.GetLeaderboardFunc != nil {
		return m.GetLeaderboardFunc(ctx, user, period)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return ListResult(entities.EndpointLeaderboard, m.leaderboard[period])
}

func (m *MockMarketDataRepository) GetTraded(ctx context.Context, user string) entities.FetchResult[entities.TradedCount] {
	m.record("GetTraded", user)
	if m.GetTradedFunc != nil {
		return m.GetTradedFunc(ctx, user)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.traded == nil {
		return entities.FetchResult[entities.TradedCount]{Endpoint: entities.EndpointTraded, Status: entities.FetchEmpty, FetchedAt: time.Now().UTC()}
	}
	return entities.FetchResult[entities.TradedCount]{Endpoint: entities.EndpointTraded, Status: entities.FetchOK, Data: *m.traded, FetchedAt: time.Now().UTC()}
}

func (m *MockMarketDataRepository) GetPublicProfile(ctx context.Context, address string) entities.FetchResult[*entities.PublicProfile] {
	m.record("GetPublicProfile", address)
	if m.GetPublicProfileFunc != nil {
		return m.GetPublicProfileFunc(ctx, address)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.profile == nil {
		return entities.FetchResult[*entities.PublicProfile]{Endpoint: entities.EndpointPublicProfile, Status: entities.FetchEmpty, FetchedAt: time.Now().UTC()}
	}
	return entities.FetchResult[*entities.PublicProfile]{Endpoint: entities.EndpointPublicProfile, Status: entities.FetchOK, Data: m.profile, FetchedAt: time.Now().UTC()}
}

// ListResult builds the result an upstream list endpoint would produce for data
func ListResult[T any](endpoint entities.Endpoint, data []T) entities.FetchResult[[]T] {
	res := entities.FetchResult[[]T]{
		Endpoint:  endpoint,
		Status:    entities.FetchOK,
		Data:      data,
		FetchedAt: time.Now().UTC(),
	}
	if len(data) == 0 {
		res.Status = entities.FetchEmpty
		res.Data = nil
		res.Raw = []byte("[]")
		return res
	}
	res.Raw, _ = json.Marshal(data)
	return res
}

// MockHealthChecker is a mock implementation of HealthChecker
type MockHealthChecker struct {
	healthy bool
	err     error

	HealthCheckFunc func(ctx context.Context) error
}

func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	return &MockHealthChecker{
		healthy: healthy,
		err:     ErrUpstream,
	}
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	if m.HealthCheckFunc != nil {
		return m.HealthCheckFunc(ctx)
	}
	if !m.healthy {
		return m.err
	}
	return nil
}
