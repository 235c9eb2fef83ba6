package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bimakw/polywallet/internal/application/services"
	"github.com/bimakw/polywallet/internal/domain/entities"
)

// renderText prints every view of the dashboard as aligned text tables
func renderText(w io.Writer, d services.DashboardDTO) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	renderProfile(tw, d.Profile)
	renderOpen(tw, d.Open)
	renderClosed(tw, d.Closed)
	renderActivity(tw, d.Activity)
	renderAnalysis(tw, d.Analysis)

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n%s\n", title, strings.Repeat("=", len(title)))
}

func renderProfile(w io.Writer, p services.ProfileDTO) {
	section(w, "Profile ("+string(p.Period)+")")
	fmt.Fprintf(w, "User\t%s\n", p.UserName)
	fmt.Fprintf(w, "Wallet\t%s\n", p.WalletAddress)
	fmt.Fprintf(w, "Rank\t%s\n", p.Rank)
	fmt.Fprintf(w, "PnL\t%s\n", p.Pnl)
	fmt.Fprintf(w, "Volume\t%s\n", p.Volume)
	fmt.Fprintf(w, "Markets traded\t%s\n", p.TradeCount)
}

// statusLine reports a view that has nothing to tabulate
func statusLine(w io.Writer, status entities.FetchStatus, message string) bool {
	if status == entities.FetchOK {
		return false
	}
	if message == "" {
		message = string(status)
	}
	fmt.Fprintln(w, message)
	return true
}

func renderOpen(w io.Writer, v services.OpenPositionsDTO) {
	section(w, "Open positions")
	if statusLine(w, v.Status, v.Message) {
		return
	}
	fmt.Fprintln(w, "Market\tOutcome\tSize\tAvg\tCurrent\tInitial\tCash PnL\t%\tIf win")
	for _, m := range v.Markets {
		for _, p := range m.Positions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				m.Slug, p.Outcome, p.Size, p.AvgPrice, p.CurPrice, p.InitialValue, p.CashPnl, p.PercentPnl, p.IfWin)
		}
		fmt.Fprintf(w, "%s\t\t\t\t\t\t%s\t\t\n", "  total", m.TotalCashPnl)
	}
	fmt.Fprintf(w, "Total cash PnL\t%s\n", v.TotalCashPnl)
}

func renderClosed(w io.Writer, v services.ClosedPositionsDTO) {
	section(w, "Closed positions")
	if statusLine(w, v.Status, v.Message) {
		return
	}
	fmt.Fprintln(w, "Date\tMarket\tOutcome\tInvestment\tAvg\tBought\tRealized PnL")
	for _, m := range v.Markets {
		for _, p := range m.Positions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				p.Date, p.Slug, p.Outcome, p.Investment, p.AvgPrice, p.TotalBought, p.RealizedPnl)
		}
		fmt.Fprintf(w, "\t%s\t\t\t\t\t%s\n", "  total", m.TotalRealizedPnl)
	}
}

func renderActivity(w io.Writer, v services.ActivityDTO) {
	section(w, "Activity")
	if statusLine(w, v.Status, v.Message) {
		return
	}
	fmt.Fprintln(w, "Date\tMarket\tSide\tOutcome\tPrice\tSize\tUSDC")
	for _, r := range v.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Date, r.Slug, r.Side, r.Outcome, r.Price, r.Size, r.USDC)
	}
}

func renderAnalysis(w io.Writer, a services.AnalysisDTO) {
	section(w, "Realized PnL")
	fmt.Fprintf(w, "Grand total\t%s\n", a.GrandTotal)
	if a.State != services.AnalysisOK {
		if a.Message != "" {
			fmt.Fprintln(w, a.Message)
		}
		return
	}
	fmt.Fprintln(w, "Closed\tMarket\tMarket PnL\tCumulative")
	for _, p := range a.Timeline {
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\n", p.TimestampLabel, p.Slug, p.MarketPnl, p.CumulativePnl)
	}
}
