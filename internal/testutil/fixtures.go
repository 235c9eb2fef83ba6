package testutil

import (
	"github.com/bimakw/polywallet/internal/domain/entities"
)

// Common test wallets
const (
	AliceWallet = "0x1111111111111111111111111111111111111111"
	BobWallet   = "0x2222222222222222222222222222222222222222"
	MixedCase   = "0xAbCdEf0123456789aBcDeF0123456789AbCdEf01"
)

// Common test timestamps (unix seconds)
const (
	Nov14of2023 int64 = 1700000000
	Nov15of2023 int64 = 1700086400
	Nov16of2023 int64 = 1700172800
)

// CreateTestPosition creates a test position with default values
func CreateTestPosition(opts ...PositionOption) entities.PositionRecord {
	p := entities.PositionRecord{
		ProxyWallet:  AliceWallet,
		Slug:         "will-it-rain",
		Title:        "Will it rain tomorrow?",
		Outcome:      "Yes",
		Size:         100,
		AvgPrice:     0.5,
		InitialValue: 50,
		Timestamp:    Nov14of2023,
	}

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

type PositionOption func(*entities.PositionRecord)

func WithSlug(slug string) PositionOption {
	return func(p *entities.PositionRecord) {
		p.Slug = slug
	}
}

func WithTitle(title string) PositionOption {
	return func(p *entities.PositionRecord) {
		p.Title = title
	}
}

func WithOutcome(outcome string) PositionOption {
	return func(p *entities.PositionRecord) {
		p.Outcome = outcome
	}
}

func WithSize(size float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.Size = size
	}
}

func WithAvgPrice(price float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.AvgPrice = price
	}
}

func WithCurPrice(price float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.CurPrice = entities.FloatPtr(price)
	}
}

func WithInitialValue(v float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.InitialValue = v
	}
}

func WithCashPnl(v float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.CashPnl = entities.FloatPtr(v)
	}
}

func WithPercentPnl(v float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.PercentPnl = entities.FloatPtr(v)
	}
}

func WithRealizedPnl(v float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.RealizedPnl = entities.FloatPtr(v)
	}
}

func WithTotalBought(v float64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.TotalBought = entities.FloatPtr(v)
	}
}

func WithTimestamp(ts int64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.Timestamp = ts
	}
}

func WithCloseTimestamp(ts int64) PositionOption {
	return func(p *entities.PositionRecord) {
		p.CloseTimestamp = entities.Int64Ptr(ts)
	}
}

// CreateTestActivity creates a test activity record with default values
func CreateTestActivity(opts ...ActivityOption) entities.ActivityRecord {
	a := entities.ActivityRecord{
		ProxyWallet: AliceWallet,
		Timestamp:   Nov14of2023,
		Type:        "TRADE",
		Side:        string(entities.SideBuy),
		Title:       "Will it rain tomorrow?",
		Slug:        "will-it-rain",
		Outcome:     "Yes",
		Price:       0.5,
		Size:        10,
	}

	for _, opt := range opts {
		opt(&a)
	}

	return a
}

type ActivityOption func(*entities.ActivityRecord)

func WithSide(side string) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.Side = side
	}
}

func WithType(typ string) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.Type = typ
	}
}

func WithActivityOutcome(outcome string) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.Outcome = outcome
	}
}

func WithToken(token string) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.Token = token
	}
}

func WithPrice(price float64) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.Price = price
	}
}

func WithActivitySize(size float64) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.Size = size
	}
}

func WithUsdcSize(v float64) ActivityOption {
	return func(a *entities.ActivityRecord) {
		a.UsdcSize = entities.FloatPtr(v)
	}
}

// CreateTestLeaderboardEntry creates a leaderboard row for AliceWallet
func CreateTestLeaderboardEntry(rank string, pnl, vol float64) entities.LeaderboardEntry {
	return entities.LeaderboardEntry{
		Rank:         entities.Rank(rank),
		ProxyWallet:  AliceWallet,
		UserName:     "alice",
		ProfileImage: "https://example.com/alice.png",
		Pnl:          entities.FloatPtr(pnl),
		Vol:          entities.FloatPtr(vol),
	}
}
