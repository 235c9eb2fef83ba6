package services

import (
	"strings"

	"github.com/bimakw/polywallet/internal/domain/entities"
	"github.com/bimakw/polywallet/internal/pkg/format"
)

// PlaceholderProfileImage is shown when the user has no profile image
const PlaceholderProfileImage = `data:image/svg+xml,%3Csvg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 120 120"%3E%3Crect fill="%233b82f6" width="120" height="120"/%3E%3Ctext x="50%25" y="50%25" text-anchor="middle" dy=".3em" fill="white" font-size="48" font-family="Arial"%3E?%3C/text%3E%3C/svg%3E`

// ProfileDTO is the profile card of a wallet for one leaderboard period
type ProfileDTO struct {
	UserName        string          `json:"user_name"`
	WalletAddress   string          `json:"wallet_address"`
	ProfileImageURL string          `json:"profile_image_url"`
	Period          entities.Period `json:"period"`
	Rank            string          `json:"rank"`
	Pnl             string          `json:"pnl"`
	Volume          string          `json:"volume"`
	TradeCount      string          `json:"trade_count"`
}

// ResolveProfile assembles the profile card. Every source may be missing
// and each missing field falls back to the placeholder on its own.
//
// Name, image and wallet come from the ALL period; rank, PnL and volume
// come from the selected period. The public profile only fills a name or
// image the leaderboard did not provide.
func ResolveProfile(
	lbByPeriod map[entities.Period][]entities.LeaderboardEntry,
	traded *entities.TradedCount,
	wallet string,
	period entities.Period,
	public *entities.PublicProfile,
) ProfileDTO {
	dto := ProfileDTO{
		UserName:        format.Placeholder,
		WalletAddress:   format.Placeholder,
		ProfileImageURL: PlaceholderProfileImage,
		Period:          period,
		Rank:            format.Placeholder,
		Pnl:             format.Placeholder,
		Volume:          format.Placeholder,
		TradeCount:      format.Placeholder,
	}

	if all, ok := firstRow(lbByPeriod, entities.PeriodAll); ok {
		if all.UserName != "" {
			dto.UserName = all.UserName
		}
		if wallet != "" {
			dto.WalletAddress = wallet
		}
		if strings.TrimSpace(all.ProfileImage) != "" {
			dto.ProfileImageURL = all.ProfileImage
		}
	}

	if public != nil {
		if dto.UserName == format.Placeholder && public.DisplayName() != "" {
			dto.UserName = public.DisplayName()
		}
		if dto.ProfileImageURL == PlaceholderProfileImage && strings.TrimSpace(public.ProfileImage) != "" {
			dto.ProfileImageURL = public.ProfileImage
		}
	}

	if row, ok := firstRow(lbByPeriod, period); ok {
		if row.Rank != "" {
			dto.Rank = string(row.Rank)
		}
		if row.Pnl != nil {
			dto.Pnl = format.Currency(*row.Pnl)
		}
		if row.Vol != nil {
			dto.Volume = format.Currency(*row.Vol)
		}
	}

	if traded != nil && traded.Present {
		dto.TradeCount = format.Count(traded.Value)
	}
	return dto
}

func firstRow(lbByPeriod map[entities.Period][]entities.LeaderboardEntry, period entities.Period) (entities.LeaderboardEntry, bool) {
	rows := lbByPeriod[period]
	if len(rows) == 0 {
		return entities.LeaderboardEntry{}, false
	}
	return rows[0], true
}
