package entities

// PositionRecord represents an open or closed position as returned by the
// data API. Optional numeric fields are nil when the API omits them.
type PositionRecord struct {
	ProxyWallet    string   `json:"proxyWallet,omitempty"`
	Asset          string   `json:"asset,omitempty"`
	ConditionID    string   `json:"conditionId,omitempty"`
	Slug           string   `json:"slug"`
	EventSlug      string   `json:"eventSlug,omitempty"`
	Title          string   `json:"title"`
	Outcome        string   `json:"outcome"`
	Size           float64  `json:"size"`
	AvgPrice       float64  `json:"avgPrice"`
	CurPrice       *float64 `json:"curPrice,omitempty"`
	InitialValue   float64  `json:"initialValue"`
	CurrentValue   *float64 `json:"currentValue,omitempty"`
	CashPnl        *float64 `json:"cashPnl,omitempty"`
	RealizedPnl    *float64 `json:"realizedPnl,omitempty"`
	PercentPnl     *float64 `json:"percentPnl,omitempty"`
	TotalBought    *float64 `json:"totalBought,omitempty"`
	Redeemable     bool     `json:"redeemable,omitempty"`
	Timestamp      int64    `json:"timestamp,omitempty"`
	CloseTimestamp *int64   `json:"closeTimestamp,omitempty"`
}

// EffectiveCloseTimestamp returns closeTimestamp, falling back to timestamp
// when it is absent or zero. Zero means the close time is unknown.
func (p PositionRecord) EffectiveCloseTimestamp() int64 {
	if p.CloseTimestamp != nil && *p.CloseTimestamp != 0 {
		return *p.CloseTimestamp
	}
	return p.Timestamp
}

// RealizedPnlOrZero returns the realized PnL, treating absence as zero
func (p PositionRecord) RealizedPnlOrZero() float64 {
	return Float(p.RealizedPnl)
}

// CashPnlOrZero returns the cash PnL, treating absence as zero
func (p PositionRecord) CashPnlOrZero() float64 {
	return Float(p.CashPnl)
}

// Float dereferences an optional value, returning 0 when it is nil
func Float(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// FloatPtr returns a pointer to v
func FloatPtr(v float64) *float64 {
	return &v
}

// Int64Ptr returns a pointer to v
func Int64Ptr(v int64) *int64 {
	return &v
}
