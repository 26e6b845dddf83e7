package tui

import (
	"strings"
	"testing"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/market"
	"signal-desk/internal/session"
)

func TestRenderQuotaLimited(t *testing.T) {
	st := NewStyles(domain.ThemeDark)
	snap := session.Snapshot{Tier: domain.TierStandard, SignalsUsed: 5, Limit: 20, Remaining: 15, Language: domain.LanguageEN}
	out := RenderQuota(st, snap, 10)
	if !strings.Contains(out, "5/20") || !strings.Contains(out, "STANDARD") {
		t.Fatalf("unexpected quota line: %s", out)
	}
}

func TestRenderQuotaUnlimited(t *testing.T) {
	st := NewStyles(domain.ThemeLight)
	snap := session.Snapshot{Tier: domain.TierVIP, SignalsUsed: 70, Unlimited: true, Language: domain.LanguageEN}
	out := RenderQuota(st, snap, 10)
	if !strings.Contains(out, "unlimited") || strings.Contains(out, "/") {
		t.Fatalf("unexpected vip quota line: %s", out)
	}
}

func TestRenderWeekMarksClosedDays(t *testing.T) {
	st := NewStyles(domain.ThemeDark)
	monday := time.Date(2026, 10, 12, 12, 0, 0, 0, time.UTC)
	out := RenderWeek(st, domain.LanguageEN, market.NewHours(time.UTC), monday)
	lines := strings.Split(out, "\n")
	if len(lines) != 7 {
		t.Fatalf("expected 7 days, got %d", len(lines))
	}
	for i, line := range lines {
		closed := i >= 4
		if strings.Contains(line, "closed") != closed {
			t.Fatalf("day %d: unexpected state in %q", i, line)
		}
	}
}

func TestFormatSignalIncludesFields(t *testing.T) {
	st := NewStyles(domain.ThemeDark)
	btc, _ := domain.FindAsset("BTCUSD")
	out := FormatSignal(st, domain.Signal{
		ID: "INF-1", Asset: btc, Timeframe: "5m", Direction: domain.DirectionSell,
		Probability: 90, Status: domain.StatusFailed, Timestamp: time.Now(),
	})
	for _, want := range []string{"INF-1", "BTC/USD", "5m", "SELL", "90%", "FAILED"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestDescribeErrorFallsBackToMessage(t *testing.T) {
	if got := describeError(domain.LanguageEN, session.ErrUnknownTimeframe); got != session.ErrUnknownTimeframe.Error() {
		t.Fatalf("unexpected message %q", got)
	}
	if got := describeError(domain.LanguageRU, session.ErrQuotaExhausted); got != text(domain.LanguageRU, lblQuotaExhausted) {
		t.Fatalf("unexpected message %q", got)
	}
}
