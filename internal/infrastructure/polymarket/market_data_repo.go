package polymarket

import (
	"bytes"
	"context"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/domain/repositories"
)

var _ repositories.MarketDataRepository = (*Client)(nil)

const (
	positionsLimit       = 100
	closedPositionsLimit = 1000
	activityLimit        = 100
	leaderboardLimit     = 25
)

// GetPositions retrieves open positions, largest first
func (c *Client) GetPositions(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord] {
	params := url.Values{}
	params.Set("user", user)
	params.Set("sizeThreshold", "1")
	params.Set("limit", strconv.Itoa(positionsLimit))
	params.Set("sortBy", "TOKENS")
	params.Set("sortDirection", "DESC")
	return fetchList[entities.PositionRecord](ctx, c, c.dataURL, entities.EndpointPositions, params)
}

// GetClosedPositions retrieves closed positions, newest first
func (c *Client) GetClosedPositions(ctx context.Context, user string) entities.FetchResult[[]entities.PositionRecord] {
	params := url.Values{}
	params.Set("user", user)
	params.Set("limit", strconv.Itoa(closedPositionsLimit))
	params.Set("sortBy", "TIMESTAMP")
	params.Set("sortDirection", "DESC")
	return fetchList[entities.PositionRecord](ctx, c, c.dataURL, entities.EndpointClosedPositions, params)
}

// GetActivity retrieves recent activity, newest first
func (c *Client) GetActivity(ctx context.Context, user string) entities.FetchResult[[]entities.ActivityRecord] {
	params := url.Values{}
	params.Set("user", user)
	params.Set("limit", strconv.Itoa(activityLimit))
	params.Set("sortBy", "TIMESTAMP")
	params.Set("sortDirection", "DESC")
	return fetchList[entities.ActivityRecord](ctx, c, c.dataURL, entities.EndpointActivity, params)
}

// GetLeaderboard retrieves the overall PnL leaderboard filtered to user
func (c *Client) GetLeaderboard(ctx context.Context, user string, period entities.Period) entities.FetchResult[[]entities.LeaderboardEntry] {
	params := url.Values{}
	params.Set("user", user)
	params.Set("category", "OVERALL")
	params.Set("timePeriod", string(period))
	params.Set("orderBy", "PNL")
	params.Set("limit", strconv.Itoa(leaderboardLimit))
	return fetchList[entities.LeaderboardEntry](ctx, c, c.dataURL, entities.EndpointLeaderboard, params)
}

// GetTraded retrieves the number of markets the user traded. The API
// answers either {"traded": n} or a bare number.
func (c *Client) GetTraded(ctx context.Context, user string) entities.FetchResult[entities.TradedCount] {
	endpoint := entities.EndpointTraded
	params := url.Values{}
	params.Set("user", user)

	body, err := c.get(ctx, c.dataURL, endpoint, params)
	if err != nil {
		c.logFailure(endpoint, user, err)
		return entities.Failed[entities.TradedCount](endpoint, err)
	}

	res := entities.FetchResult[entities.TradedCount]{Endpoint: endpoint, Raw: body, FetchedAt: time.Now().UTC()}
	if err := json.Unmarshal(body, &res.Data); err != nil {
		res.Status = entities.FetchMalformed
		res.Err = &ShapeError{Endpoint: endpoint, Reason: err.Error()}
		return res
	}
	if !res.Data.Present {
		res.Status = entities.FetchEmpty
		return res
	}
	res.Status = entities.FetchOK
	return res
}

// GetPublicProfile retrieves display metadata from the gamma API
func (c *Client) GetPublicProfile(ctx context.Context, address string) entities.FetchResult[*entities.PublicProfile] {
	endpoint := entities.EndpointPublicProfile
	params := url.Values{}
	params.Set("address", address)

	body, err := c.get(ctx, c.gammaURL, endpoint, params)
	if err != nil {
		c.logFailure(endpoint, address, err)
		return entities.Failed[*entities.PublicProfile](endpoint, err)
	}

	res := entities.FetchResult[*entities.PublicProfile]{Endpoint: endpoint, Raw: body, FetchedAt: time.Now().UTC()}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		res.Status = entities.FetchEmpty
		return res
	}
	if trimmed[0] != '{' {
		res.Status = entities.FetchMalformed
		res.Err = &ShapeError{Endpoint: endpoint, Reason: "expected object"}
		return res
	}

	var profile entities.PublicProfile
	if err := json.Unmarshal(trimmed, &profile); err != nil {
		res.Status = entities.FetchMalformed
		res.Err = &ShapeError{Endpoint: endpoint, Reason: err.Error()}
		return res
	}
	res.Status = entities.FetchOK
	res.Data = &profile
	return res
}

// fetchList requests an endpoint that answers with a JSON array and
// classifies the payload
func fetchList[T any](ctx context.Context, c *Client, baseURL string, endpoint entities.Endpoint, params url.Values) entities.FetchResult[[]T] {
	user := params.Get("user")

	body, err := c.get(ctx, baseURL, endpoint, params)
	if err != nil {
		c.logFailure(endpoint, user, err)
		return entities.Failed[[]T](endpoint, err)
	}

	res := DecodeList[T](endpoint, body)
	if res.Status == entities.FetchMalformed {
		c.logger.Warn("Malformed payload",
			zap.String("endpoint", string(endpoint)),
			zap.String("user", user),
			zap.Error(res.Err),
		)
	}
	return res
}

// DecodeList classifies a list payload. null and [] are empty; anything
// other than an array of T is malformed.
func DecodeList[T any](endpoint entities.Endpoint, body []byte) entities.FetchResult[[]T] {
	res := entities.FetchResult[[]T]{Endpoint: endpoint, Raw: body, FetchedAt: time.Now().UTC()}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		res.Status = entities.FetchEmpty
		return res
	}
	if trimmed[0] != '[' {
		res.Status = entities.FetchMalformed
		res.Err = &ShapeError{Endpoint: endpoint, Reason: "expected array"}
		return res
	}

	var data []T
	if err := json.Unmarshal(trimmed, &data); err != nil {
		res.Status = entities.FetchMalformed
		res.Err = &ShapeError{Endpoint: endpoint, Reason: err.Error()}
		return res
	}
	if len(data) == 0 {
		res.Status = entities.FetchEmpty
		return res
	}
	res.Status = entities.FetchOK
	res.Data = data
	return res
}

func (c *Client) logFailure(endpoint entities.Endpoint, user string, err error) {
	c.logger.Warn("Polymarket request failed",
		zap.String("endpoint", string(endpoint)),
		zap.String("user", user),
		zap.Error(err),
	)
}
