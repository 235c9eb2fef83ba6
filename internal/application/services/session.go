package services

import (
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/bimakw/polywallet/internal/domain/entities"
)

// ErrSessionSuperseded is returned when a newer search started before this one finished
var ErrSessionSuperseded = errors.New("session superseded by a newer search")

// ErrNoSession is returned when no search has completed yet
var ErrNoSession = errors.New("no wallet loaded")

// RawView is the debug view of one upstream payload
type RawView struct {
	Endpoint  entities.Endpoint `json:"endpoint"`
	Wallet    string            `json:"wallet"`
	Timestamp string            `json:"timestamp"`
	Count     int               `json:"count"`
	Data      json.RawMessage   `json:"data"`
}

// Session is the fully derived state of one loaded wallet
type Session struct {
	ID       uuid.UUID `json:"id"`
	Token    uint64    `json:"token"`
	Wallet   string    `json:"wallet"`
	LoadedAt time.Time `json:"loaded_at"`

	Open     OpenPositionsDTO   `json:"open_positions"`
	Closed   ClosedPositionsDTO `json:"closed_positions"`
	Activity ActivityDTO        `json:"activity"`
	Analysis AnalysisDTO        `json:"analysis"`

	leaderboard map[entities.Period][]entities.LeaderboardEntry
	traded      *entities.TradedCount
	public      *entities.PublicProfile
	raw         map[string]RawView
}

// Profile resolves the profile card for a leaderboard period
func (s *Session) Profile(period entities.Period) ProfileDTO {
	return ResolveProfile(s.leaderboard, s.traded, s.Wallet, period, s.public)
}

// Raw returns the debug view of an endpoint, e.g. "positions" or "/activity"
func (s *Session) Raw(endpoint string) (RawView, bool) {
	v, ok := s.raw["/"+strings.TrimPrefix(endpoint, "/")]
	return v, ok
}

// RawEndpoints lists the endpoints that expose a raw debug view
var RawEndpoints = []entities.Endpoint{
	entities.EndpointPositions,
	entities.EndpointClosedPositions,
	entities.EndpointActivity,
}

func newRawView[T any](res entities.FetchResult[[]T], wallet string) (RawView, bool) {
	if res.Status == entities.FetchFailed || len(res.Raw) == 0 {
		return RawView{}, false
	}
	return RawView{
		Endpoint:  res.Endpoint,
		Wallet:    wallet,
		Timestamp: res.FetchedAt.UTC().Format(time.RFC3339Nano),
		Count:     len(res.Data),
		Data:      res.Raw,
	}, true
}

// SessionTracker enforces last-search-wins. Every search takes a token
// before fetching and its result is only kept if no newer token was issued.
type SessionTracker struct {
	latest atomic.Uint64

	mu      sync.RWMutex
	current *Session
}

// NewSessionTracker creates an empty tracker
func NewSessionTracker() *SessionTracker {
	return &SessionTracker{}
}

// Begin issues the token of a new search
func (t *SessionTracker) Begin() uint64 {
	return t.latest.Add(1)
}

// Commit stores s as the current session if its token is still the newest
func (t *SessionTracker) Commit(s *Session) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s.Token != t.latest.Load() {
		return ErrSessionSuperseded
	}
	t.current = s
	return nil
}

// Current returns the last committed session, nil if none
func (t *SessionTracker) Current() *Session {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.current
}
