package services

import (
	"cmp"
	"slices"
	"time"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/pkg/format"
)

// OpenPositionRowDTO is the display row of one open position
type OpenPositionRowDTO struct {
	Slug         string `json:"slug"`
	Title        string `json:"title"`
	Outcome      string `json:"outcome"`
	OutcomeBadge Badge  `json:"outcome_badge"`
	Size         string `json:"size"`
	AvgPrice     string `json:"avg_price"`
	CurPrice     string `json:"cur_price"`
	InitialValue string `json:"initial_value"`
	CashPnl      string `json:"cash_pnl"`
	CashPnlClass Badge  `json:"cash_pnl_class"`
	PercentPnl   string `json:"percent_pnl"`
	IfWin        string `json:"if_win"`
	IfWinClass   Badge  `json:"if_win_class"`
}

// OpenMarketDTO is one market of the open positions table
type OpenMarketDTO struct {
	Slug              string               `json:"slug"`
	Title             string               `json:"title"`
	TotalCashPnl      string               `json:"total_cash_pnl"`
	TotalCashPnlValue float64              `json:"total_cash_pnl_value"`
	TotalCashPnlClass Badge                `json:"total_cash_pnl_class"`
	Positions         []OpenPositionRowDTO `json:"positions"`
}

// OpenPositionsDTO is the open positions tab
type OpenPositionsDTO struct {
	Status       entities.FetchStatus `json:"status"`
	Markets      []OpenMarketDTO      `json:"markets"`
	TotalCashPnl string               `json:"total_cash_pnl"`
	Message      string               `json:"message,omitempty"`
}

// ClosedPositionRowDTO is the display row of one closed position
type ClosedPositionRowDTO struct {
	Date             string `json:"date"`
	Slug             string `json:"slug"`
	Outcome          string `json:"outcome"`
	OutcomeBadge     Badge  `json:"outcome_badge"`
	Investment       string `json:"investment"`
	AvgPrice         string `json:"avg_price"`
	TotalBought      string `json:"total_bought"`
	RealizedPnl      string `json:"realized_pnl"`
	RealizedPnlClass Badge  `json:"realized_pnl_class"`
}

// ClosedMarketDTO is one market of the closed positions table
type ClosedMarketDTO struct {
	Slug                  string                 `json:"slug"`
	Title                 string                 `json:"title"`
	TotalRealizedPnl      string                 `json:"total_realized_pnl"`
	TotalRealizedPnlValue float64                `json:"total_realized_pnl_value"`
	TotalRealizedPnlClass Badge                  `json:"total_realized_pnl_class"`
	Positions             []ClosedPositionRowDTO `json:"positions"`
}

// ClosedPositionsDTO is the closed positions tab
type ClosedPositionsDTO struct {
	Status  entities.FetchStatus `json:"status"`
	Markets []ClosedMarketDTO    `json:"markets"`
	Message string               `json:"message,omitempty"`
}

const (
	noOpenPositionsMessage   = "No open positions for this wallet"
	noClosedPositionsMessage = "No closed positions for this wallet"
)

// BuildOpenPositions renders the open positions tab from a fetch result
func BuildOpenPositions(res entities.FetchResult[[]entities.PositionRecord]) OpenPositionsDTO {
	dto := OpenPositionsDTO{
		Status:       res.Status,
		Markets:      []OpenMarketDTO{},
		TotalCashPnl: format.SignedCurrency(0),
	}
	if !res.OK() || len(res.Data) == 0 {
		dto.Message = noOpenPositionsMessage
		return dto
	}

	agg := Aggregate(res.Data)
	for _, g := range agg.Groups {
		title := orDefault(g.Title, g.Slug)
		market := OpenMarketDTO{
			Slug:              g.Slug,
			Title:             title,
			TotalCashPnl:      format.SignedCurrency(g.TotalCashPnl),
			TotalCashPnlValue: g.TotalCashPnl,
			TotalCashPnlClass: signBadge(g.TotalCashPnl),
			Positions:         make([]OpenPositionRowDTO, 0, len(g.Records)),
		}

		for i, pos := range g.Records {
			cashPnl := pos.CashPnlOrZero()
			row := OpenPositionRowDTO{
				Slug:         g.Slug,
				Title:        orDefault(pos.Title, title),
				Outcome:      orDefault(pos.Outcome, format.Placeholder),
				OutcomeBadge: ClassifyOutcome(pos.Outcome, cashPnl),
				Size:         format.Number(pos.Size),
				AvgPrice:     format.Currency(pos.AvgPrice),
				CurPrice:     format.Currency(currentPrice(pos)),
				InitialValue: format.Currency(pos.InitialValue),
				CashPnl:      format.SignedCurrency(cashPnl),
				CashPnlClass: signBadge(cashPnl),
				PercentPnl:   format.Percent(entities.Float(pos.PercentPnl)),
				IfWin:        format.Placeholder,
				IfWinClass:   BadgeNeutral,
			}
			if v, ok := IfWin(g, i); ok {
				row.IfWin = format.Number(v)
				row.IfWinClass = signBadge(v)
			}
			market.Positions = append(market.Positions, row)
		}
		dto.Markets = append(dto.Markets, market)
	}
	dto.TotalCashPnl = format.SignedCurrency(agg.GrandCashPnl)
	return dto
}

// BuildClosedPositions renders the closed positions tab. Positions are
// ordered newest first before grouping, so markets appear by their most
// recent close.
func BuildClosedPositions(res entities.FetchResult[[]entities.PositionRecord], loc *time.Location) ClosedPositionsDTO {
	dto := ClosedPositionsDTO{
		Status:  res.Status,
		Markets: []ClosedMarketDTO{},
	}
	if !res.OK() || len(res.Data) == 0 {
		dto.Message = noClosedPositionsMessage
		return dto
	}

	sorted := slices.Clone(res.Data)
	slices.SortStableFunc(sorted, func(a, b entities.PositionRecord) int {
		return cmp.Compare(b.EffectiveCloseTimestamp(), a.EffectiveCloseTimestamp())
	})

	for _, g := range Aggregate(sorted).Groups {
		market := ClosedMarketDTO{
			Slug:                  g.Slug,
			Title:                 orDefault(g.Title, format.Placeholder),
			TotalRealizedPnl:      format.SignedCurrency(g.TotalRealizedPnl),
			TotalRealizedPnlValue: g.TotalRealizedPnl,
			TotalRealizedPnlClass: signBadge(g.TotalRealizedPnl),
			Positions:             make([]ClosedPositionRowDTO, 0, len(g.Records)),
		}
		for _, pos := range g.Records {
			realized := pos.RealizedPnlOrZero()
			bought := totalBought(pos)
			market.Positions = append(market.Positions, ClosedPositionRowDTO{
				Date:             format.Date(pos.EffectiveCloseTimestamp(), loc),
				Slug:             g.Slug,
				Outcome:          orDefault(pos.Outcome, format.Placeholder),
				OutcomeBadge:     ClassifyOutcome(pos.Outcome, realized),
				Investment:       "$" + format.Number(investment(bought, pos.AvgPrice)),
				AvgPrice:         format.PriceInCents(pos.AvgPrice),
				TotalBought:      format.Number(bought),
				RealizedPnl:      format.Currency(realized),
				RealizedPnlClass: signBadge(realized),
			})
		}
		dto.Markets = append(dto.Markets, market)
	}
	return dto
}

func currentPrice(pos entities.PositionRecord) float64 {
	if v := entities.Float(pos.CurPrice); v != 0 {
		return v
	}
	return entities.Float(pos.CurrentValue)
}

func totalBought(pos entities.PositionRecord) float64 {
	if v := entities.Float(pos.TotalBought); v != 0 {
		return v
	}
	return pos.Size
}

func investment(bought, avgPrice float64) float64 {
	if bought == 0 || avgPrice == 0 {
		return 0
	}
	return bought * avgPrice
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
