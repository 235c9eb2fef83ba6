package entities

import "strings"

// Side is the direction of an activity record
type Side string

const (
	SideBuy    Side = "BUY"
	SideSell   Side = "SELL"
	SideRedeem Side = "REDEEM"
)

// ActivityRecord represents a single trade or redemption of a wallet
type ActivityRecord struct {
	ProxyWallet     string   `json:"proxyWallet,omitempty"`
	Timestamp       int64    `json:"timestamp"`
	ConditionID     string   `json:"conditionId,omitempty"`
	Type            string   `json:"type,omitempty"`
	Side            string   `json:"side,omitempty"`
	Title           string   `json:"title"`
	Slug            string   `json:"slug"`
	EventSlug       string   `json:"eventSlug,omitempty"`
	Outcome         string   `json:"outcome"`
	Token           string   `json:"token,omitempty"`
	Price           float64  `json:"price"`
	Size            float64  `json:"size"`
	UsdcSize        *float64 `json:"usdcSize,omitempty"`
	TransactionHash string   `json:"transactionHash,omitempty"`
}

// NormalizedSide returns the record side, falling back to the activity type.
// The legacy REEDEM spelling is folded into REDEEM.
func (a ActivityRecord) NormalizedSide() Side {
	raw := a.Side
	if raw == "" {
		raw = a.Type
	}
	raw = strings.ToUpper(strings.TrimSpace(raw))
	if raw == "REEDEM" {
		return SideRedeem
	}
	return Side(raw)
}

// DisplayOutcome returns the outcome, falling back to the token label
func (a ActivityRecord) DisplayOutcome() string {
	if a.Outcome != "" {
		return a.Outcome
	}
	return a.Token
}

// USDCAmount returns usdcSize, deriving it from size*price when it is
// absent or zero
func (a ActivityRecord) USDCAmount() float64 {
	if a.UsdcSize != nil && *a.UsdcSize != 0 {
		return *a.UsdcSize
	}
	return a.Size * a.Price
}
