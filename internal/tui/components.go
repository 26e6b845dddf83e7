package tui

import (
	"fmt"
	"strings"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/market"
	"signal-desk/internal/session"

	"github.com/charmbracelet/lipgloss"
)

// FormatAsset renders a catalog asset as a single list line.
func FormatAsset(st Styles, a domain.Asset) string {
	changeStyle := st.Subtext
	switch {
	case strings.HasPrefix(a.Change, "+"):
		changeStyle = st.Up
	case strings.HasPrefix(a.Change, "-"):
		changeStyle = st.Down
	}
	return fmt.Sprintf("%-3s %-8s %-7s %12s  %s",
		a.Flag,
		a.Name,
		a.Category,
		a.Price,
		changeStyle.Render(a.Change),
	)
}

// FormatSignal renders a signal as a single history line.
func FormatSignal(st Styles, s domain.Signal) string {
	return fmt.Sprintf("%-14s %-8s %-3s %s %d%%  %s  %s",
		s.ID,
		s.Asset.Name,
		s.Timeframe,
		directionStyle(st, s.Direction).Render(string(s.Direction)),
		s.Probability,
		statusStyle(st, s.Status).Render(string(s.Status)),
		s.Timestamp.Format("Jan 02 15:04"),
	)
}

// RenderQuota renders the tier badge and the used/limit gauge.
func RenderQuota(st Styles, snap session.Snapshot, barWidth int) string {
	head := fmt.Sprintf("%s  %s:", string(snap.Tier), text(snap.Language, lblSignals))
	if snap.Unlimited {
		return fmt.Sprintf("%s %d (%s)", head, snap.SignalsUsed, text(snap.Language, lblUnlimited))
	}
	if barWidth <= 0 {
		barWidth = 20
	}
	filled := 0
	if snap.Limit > 0 {
		filled = snap.SignalsUsed * barWidth / snap.Limit
	}
	if filled > barWidth {
		filled = barWidth
	}

	style := st.Up
	if snap.Remaining == 0 {
		style = st.Down
	} else if snap.Remaining*4 < snap.Limit {
		style = st.Pending
	}
	bar := style.Render(strings.Repeat("█", filled)) + st.Subtext.Render(strings.Repeat("░", barWidth-filled))
	return fmt.Sprintf("%s %s %d/%d  %s %s", head, bar, snap.SignalsUsed, snap.Limit,
		text(snap.Language, lblNextReset), snap.NextReset.Local().Format("15:04"))
}

// RenderWeek lists the next seven days with the forex session state.
func RenderWeek(st Styles, lang domain.Language, hours market.Hours, from time.Time) string {
	var lines []string
	day := from
	for i := 0; i < 7; i++ {
		state := st.Up.Render(text(lang, lblOpen))
		if !hours.ForexOpen(day) {
			state = st.Down.Render(text(lang, lblClosed))
		}
		lines = append(lines, fmt.Sprintf("%-10s %s  %s %s",
			day.Format("Mon"), day.Format("Jan 02"), text(lang, lblForex), state))
		day = day.AddDate(0, 0, 1)
	}
	return strings.Join(lines, "\n")
}

func directionStyle(st Styles, d domain.SignalDirection) lipgloss.Style {
	if d == domain.DirectionBuy {
		return st.Buy
	}
	return st.Sell
}

func statusStyle(st Styles, s domain.SignalStatus) lipgloss.Style {
	switch s {
	case domain.StatusConfirmed:
		return st.Confirmed
	case domain.StatusFailed:
		return st.Failed
	default:
		return st.Pending
	}
}
