package services

import (
	"time"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/pkg/format"
)

// SideClass styles the side column of an activity row
type SideClass string

const (
	SideClassBuy    SideClass = "buy"
	SideClassSell   SideClass = "sell"
	SideClassRedeem SideClass = "redeem"
	SideClassNone   SideClass = ""
)

// ActivityRowDTO is the display row of one activity record
type ActivityRowDTO struct {
	Date         string    `json:"date"`
	Title        string    `json:"title"`
	Slug         string    `json:"slug"`
	Side         string    `json:"side"`
	SideClass    SideClass `json:"side_class"`
	Outcome      string    `json:"outcome"`
	OutcomeBadge Badge     `json:"outcome_badge"`
	Price        string    `json:"price"`
	Size         string    `json:"size"`
	USDC         string    `json:"usdc"`
	USDCClass    Badge     `json:"usdc_class"`
}

// ActivityDTO is the activity tab
type ActivityDTO struct {
	Status  entities.FetchStatus `json:"status"`
	Rows    []ActivityRowDTO     `json:"rows"`
	Message string               `json:"message,omitempty"`
}

const noActivityMessage = "No recent activity for this wallet"

// BuildActivity renders the activity tab in upstream order
func BuildActivity(res entities.FetchResult[[]entities.ActivityRecord], loc *time.Location) ActivityDTO {
	dto := ActivityDTO{
		Status: res.Status,
		Rows:   []ActivityRowDTO{},
	}
	if !res.OK() || len(res.Data) == 0 {
		dto.Message = noActivityMessage
		return dto
	}

	dto.Rows = make([]ActivityRowDTO, 0, len(res.Data))
	for _, act := range res.Data {
		dto.Rows = append(dto.Rows, activityRow(act, loc))
	}
	return dto
}

func activityRow(act entities.ActivityRecord, loc *time.Location) ActivityRowDTO {
	side := act.NormalizedSide()
	usdc := act.USDCAmount()
	outcome := act.DisplayOutcome()

	row := ActivityRowDTO{
		Date:    format.Date(act.Timestamp, loc),
		Title:   orDefault(act.Title, format.Placeholder),
		Slug:    orDefault(act.Slug, format.Placeholder),
		Side:    orDefault(string(side), format.Placeholder),
		Outcome: orDefault(outcome, format.Placeholder),
		Price:   format.PriceInCents(act.Price),
		Size:    format.Number(act.Size),
		USDC:    format.Currency(usdc),
	}

	switch side {
	case entities.SideBuy:
		row.SideClass = SideClassBuy
		row.USDC = "-" + format.Currency(usdc)
		row.USDCClass = BadgeNegative
	case entities.SideSell:
		row.SideClass = SideClassSell
	case entities.SideRedeem:
		row.SideClass = SideClassRedeem
		row.USDCClass = signBadge(usdc)
	}

	if b, ok := outcomeBadge(outcome); ok {
		row.OutcomeBadge = b
	} else {
		row.OutcomeBadge = row.USDCClass
	}
	return row
}
