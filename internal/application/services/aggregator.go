package services

import (
	"strings"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/pkg/format"
)

// UngroupedSlug is the group key of records without a slug. All such
// records collapse into a single group.
const UngroupedSlug = format.Placeholder

// Badge classifies a row as a visual win or loss
type Badge string

const (
	BadgePositive Badge = "positive"
	BadgeNegative Badge = "negative"
	BadgeNeutral  Badge = ""
)

// MarketGroup holds the positions of one market and their rollups
type MarketGroup struct {
	Slug             string
	Title            string
	Records          []entities.PositionRecord
	TotalRealizedPnl float64
	TotalCashPnl     float64
	CloseTimestamp   int64
}

// Aggregation is the result of grouping a position list by market
type Aggregation struct {
	Groups       []MarketGroup
	GrandTotal   float64
	GrandCashPnl float64
}

// marketIndex is an insertion-ordered mapping from slug to group
type marketIndex struct {
	pos    map[string]int
	groups []MarketGroup
}

func newMarketIndex(size int) *marketIndex {
	return &marketIndex{
		pos:    make(map[string]int, size),
		groups: make([]MarketGroup, 0, size),
	}
}

func (m *marketIndex) group(r entities.PositionRecord) *MarketGroup {
	slug := slugOf(r)
	i, ok := m.pos[slug]
	if !ok {
		i = len(m.groups)
		m.pos[slug] = i
		m.groups = append(m.groups, MarketGroup{Slug: slug, Title: r.Title})
	}
	return &m.groups[i]
}

// Aggregate groups records by slug in first-seen order and computes the
// per-market and grand-total rollups. The input is not modified.
func Aggregate(records []entities.PositionRecord) Aggregation {
	idx := newMarketIndex(len(records))
	var agg Aggregation

	for _, r := range records {
		g := idx.group(r)
		g.Records = append(g.Records, r)
		g.TotalRealizedPnl += r.RealizedPnlOrZero()
		g.TotalCashPnl += r.CashPnlOrZero()
		if ts := r.EffectiveCloseTimestamp(); ts > g.CloseTimestamp {
			g.CloseTimestamp = ts
		}
	}

	agg.Groups = idx.groups
	for _, g := range agg.Groups {
		agg.GrandTotal += g.TotalRealizedPnl
		agg.GrandCashPnl += g.TotalCashPnl
	}
	return agg
}

// IfWin returns what the position at index i pays out if its outcome
// resolves in the holder's favour. Markets with more than two sibling
// positions are not supported and report false.
func IfWin(g MarketGroup, i int) (float64, bool) {
	if i < 0 || i >= len(g.Records) {
		return 0, false
	}
	pos := g.Records[i]
	switch len(g.Records) {
	case 1:
		return pos.Size - pos.InitialValue, true
	case 2:
		other := g.Records[1-i]
		return pos.Size - pos.InitialValue - other.InitialValue, true
	default:
		return 0, false
	}
}

// ClassifyOutcome flags outcomes mentioning "up" as positive and "down" as
// negative; anything else follows the sign of fallback
func ClassifyOutcome(outcome string, fallback float64) Badge {
	if b, ok := outcomeBadge(outcome); ok {
		return b
	}
	return signBadge(fallback)
}

func outcomeBadge(outcome string) (Badge, bool) {
	lower := strings.ToLower(outcome)
	switch {
	case strings.Contains(lower, "up"):
		return BadgePositive, true
	case strings.Contains(lower, "down"):
		return BadgeNegative, true
	}
	return BadgeNeutral, false
}

func signBadge(v float64) Badge {
	if v >= 0 {
		return BadgePositive
	}
	return BadgeNegative
}

func slugOf(r entities.PositionRecord) string {
	if r.Slug == "" {
		return UngroupedSlug
	}
	return r.Slug
}
