package repositories

import (
	"context"

	"github.com/bimakw/polywallet/internal/domain/entities"
)

// MarketDataRepository defines the upstream data operations for a wallet.
// Implementations never return Go errors; every failure is folded into the
// tagged FetchResult so that one endpoint cannot abort another.
type MarketDataRepository interface {
	// GetPositions retrieves open positions
	GetPositions(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord]

	// GetClosedPositions retrieves closed positions
	GetClosedPositions(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord]

	// GetActivity retrieves recent trades and redemptions
	GetActivity(ctx context.Context, user string) entities.FetchResult[[]entities.ActivityRecord]

	// GetLeaderboard retrieves leaderboard rows for one period, row 0 being the user
	GetLeaderboard(ctx context.Context, user string, period entities.Period) entities.FetchResult[[]entities.LeaderboardEntry]

	// GetTraded retrieves the number of markets traded
	GetTraded(ctx context.Context, user string) entities.FetchResult[entities.TradedCount]

	// GetPublicProfile retrieves display metadata from the secondary profile API
	GetPublicProfile(ctx context.Context, address string) entities.FetchResult[*entities.PublicProfile]
}
