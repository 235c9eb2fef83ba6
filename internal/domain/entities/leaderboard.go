package entities

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Period is a leaderboard ranking window
type Period string

const (
	PeriodDay   Period = "DAY"
	PeriodWeek  Period = "WEEK"
	PeriodMonth Period = "MONTH"
	PeriodAll   Period = "ALL"
)

// Periods lists every leaderboard period in display order
var Periods = []Period{PeriodDay, PeriodWeek, PeriodMonth, PeriodAll}

// ParsePeriod parses a period name, case-insensitively. An empty string
// selects ALL.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodAll, nil
	}
	p := Period(strings.ToUpper(s))
	for _, known := range Periods {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown leaderboard period %q", s)
}

// Rank is a leaderboard rank. The API sends it either as a string or a number.
type Rank string

// UnmarshalJSON accepts "12", 12 and null
func (r *Rank) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Rank(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("rank: %w", err)
	}
	*r = Rank(n.String())
	return nil
}

// LeaderboardEntry is one row of the leaderboard. When queried with a user
// filter, row 0 is the requesting user.
type LeaderboardEntry struct {
	Rank          Rank     `json:"rank"`
	ProxyWallet   string   `json:"proxyWallet,omitempty"`
	UserName      string   `json:"userName,omitempty"`
	XUsername     string   `json:"xUsername,omitempty"`
	ProfileImage  string   `json:"profileImage,omitempty"`
	VerifiedBadge bool     `json:"verifiedBadge,omitempty"`
	Vol           *float64 `json:"vol,omitempty"`
	Pnl           *float64 `json:"pnl,omitempty"`
}

// TradedCount is the response of the traded endpoint, which is either an
// object {"traded": n} or a bare number.
type TradedCount struct {
	Value   float64
	Present bool
}

// UnmarshalJSON accepts both response shapes. Objects without a traded
// field decode to a count that is not present.
func (t *TradedCount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*t = TradedCount{}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	switch data[0] {
	case '{':
		var obj struct {
			Traded *float64 `json:"traded"`
		}
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("traded: %w", err)
		}
		if obj.Traded != nil {
			t.Value, t.Present = *obj.Traded, true
		}
		return nil
	case '"', '[', 't', 'f':
		return fmt.Errorf("traded: unexpected value %s", data)
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("traded: %w", err)
	}
	t.Value, t.Present = n, true
	return nil
}

// MarshalJSON emits the bare number, or null when not present
func (t TradedCount) MarshalJSON() ([]byte, error) {
	if !t.Present {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// PublicProfile is the display metadata served by the secondary profile API
type PublicProfile struct {
	ProxyWallet  string `json:"proxyWallet,omitempty"`
	Name         string `json:"name,omitempty"`
	Pseudonym    string `json:"pseudonym,omitempty"`
	Bio          string `json:"bio,omitempty"`
	ProfileImage string `json:"profileImage,omitempty"`
}

// DisplayName returns the preferred public name of the profile
func (p *PublicProfile) DisplayName() string {
	if p == nil {
		return ""
	}
	if strings.TrimSpace(p.Name) != "" {
		return p.Name
	}
	return p.Pseudonym
}
