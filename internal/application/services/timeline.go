package services

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/pkg/format"
)

const (
	colorGain = "#16a34a"
	colorLoss = "#dc2626"
)

// TimelinePoint is one closed market on the cumulative PnL timeline
type TimelinePoint struct {
	Slug           string  `json:"slug"`
	Title          string  `json:"title"`
	MarketPnl      float64 `json:"market_pnl"`
	CumulativePnl  float64 `json:"cumulative_pnl"`
	CloseTimestamp int64   `json:"close_timestamp"`
	TimestampLabel string  `json:"timestamp_label"`
	PositionCount  int     `json:"position_count"`
}

// BuildTimeline orders closed markets by close time and accumulates their
// realized PnL. Markets without a known close time are left out.
func BuildTimeline(closed []entities.PositionRecord, loc *time.Location) []TimelinePoint {
	groups := Aggregate(closed).Groups

	dated := make([]MarketGroup, 0, len(groups))
	for _, g := range groups {
		if g.CloseTimestamp != 0 {
			dated = append(dated, g)
		}
	}
	slices.SortStableFunc(dated, func(a, b MarketGroup) int {
		return cmp.Compare(a.CloseTimestamp, b.CloseTimestamp)
	})

	points := make([]TimelinePoint, 0, len(dated))
	var cumulative float64
	for _, g := range dated {
		cumulative += g.TotalRealizedPnl
		points = append(points, TimelinePoint{
			Slug:           g.Slug,
			Title:          orDefault(g.Title, g.Slug),
			MarketPnl:      g.TotalRealizedPnl,
			CumulativePnl:  cumulative,
			CloseTimestamp: g.CloseTimestamp,
			TimestampLabel: format.ShortDate(g.CloseTimestamp, loc),
			PositionCount:  len(g.Records),
		})
	}
	return points
}

// ChartTooltip is the hover text of one chart point
type ChartTooltip struct {
	Title string   `json:"title"`
	Lines []string `json:"lines"`
}

// ChartData is the prepared input of a line chart of the timeline
type ChartData struct {
	Labels      []string       `json:"labels"`
	Series      []float64      `json:"series"`
	PointColors []string       `json:"point_colors"`
	Tooltips    []ChartTooltip `json:"tooltips"`
}

// BuildChart prepares labels, cumulative values and point colours. A
// point is green when its own market made money.
func BuildChart(points []TimelinePoint) ChartData {
	data := ChartData{
		Labels:      make([]string, 0, len(points)),
		Series:      make([]float64, 0, len(points)),
		PointColors: make([]string, 0, len(points)),
		Tooltips:    make([]ChartTooltip, 0, len(points)),
	}
	for _, p := range points {
		data.Labels = append(data.Labels, p.TimestampLabel+"\n"+p.Slug)
		data.Series = append(data.Series, p.CumulativePnl)
		data.PointColors = append(data.PointColors, pointColor(p.MarketPnl))
		data.Tooltips = append(data.Tooltips, ChartTooltip{
			Title: p.TimestampLabel + " · " + p.Slug,
			Lines: []string{
				p.Title,
				"Market PnL: " + format.SignedCurrency(p.MarketPnl),
				"Cumulative PnL: " + format.SignedCurrency(p.CumulativePnl),
				"Positions: " + strconv.Itoa(p.PositionCount),
			},
		})
	}
	return data
}

// AnalysisState describes what the analysis card can show
type AnalysisState string

const (
	AnalysisEmpty          AnalysisState = "empty"
	AnalysisNoTemporalData AnalysisState = "no_temporal_data"
	AnalysisOK             AnalysisState = "ok"
)

// AnalysisDTO is the realized PnL summary card with its timeline chart
type AnalysisDTO struct {
	State           AnalysisState   `json:"state"`
	GrandTotal      string          `json:"grand_total"`
	GrandTotalValue float64         `json:"grand_total_value"`
	GrandTotalColor string          `json:"grand_total_color,omitempty"`
	Message         string          `json:"message,omitempty"`
	Timeline        []TimelinePoint `json:"timeline"`
	Chart           ChartData       `json:"chart"`
}

// Analyze computes the grand realized total and the timeline. Markets with
// no close time count towards the total even though they are not charted.
func Analyze(closed []entities.PositionRecord, loc *time.Location) AnalysisDTO {
	dto := AnalysisDTO{
		State:      AnalysisEmpty,
		GrandTotal: format.Placeholder,
		Timeline:   []TimelinePoint{},
		Chart:      BuildChart(nil),
	}
	if len(closed) == 0 {
		return dto
	}

	agg := Aggregate(closed)
	dto.GrandTotalValue = agg.GrandTotal
	dto.GrandTotal = format.SignedCurrency(agg.GrandTotal)
	dto.GrandTotalColor = pointColor(agg.GrandTotal)

	dto.Timeline = BuildTimeline(closed, loc)
	if len(dto.Timeline) == 0 {
		dto.State = AnalysisNoTemporalData
		dto.Message = "No temporal data"
		return dto
	}
	dto.State = AnalysisOK
	dto.Chart = BuildChart(dto.Timeline)
	return dto
}

func pointColor(v float64) string {
	if v >= 0 {
		return colorGain
	}
	return colorLoss
}
