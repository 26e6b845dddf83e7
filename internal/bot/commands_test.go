package bot

import (
	"context"
	"io"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/market"
	"signal-desk/internal/service"
	"signal-desk/internal/signal"
	"signal-desk/internal/store"
	"signal-desk/internal/tier"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

var (
	tuesday  = time.Date(2026, 10, 13, 12, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
)

type botClock struct{ now time.Time }

func (c *botClock) Now() time.Time { return c.now }

func newTestSessions(clock *botClock) *service.SessionService {
	return service.NewSessionService(trace.NewNoopTracerProvider().Tracer("test"), store.NewMemoryKV(), service.SessionServiceConfig{
		Now:       clock.Now,
		Hours:     market.NewHours(time.UTC),
		Generator: signal.NewGenerator(rand.NewPCG(9, 9), nil),
		Tiers:     tier.NewManager(tier.DefaultSecrets),
		Logger:    log.New(io.Discard),
	})
}

func TestStartTelegramBotSkipsWithoutToken(t *testing.T) {
	b, err := StartTelegramBot("", nil, 0)
	if err != nil || b != nil {
		t.Fatalf("expected nil bot without error, got %v %v", b, err)
	}
}

func TestSessionID(t *testing.T) {
	if got := SessionID(-100123); got != "tg-100123" {
		t.Fatalf("unexpected session id %q", got)
	}
}

func TestParseAssetArg(t *testing.T) {
	a, err := parseAssetArg([]string{"eur/usd"})
	if err != nil || a.ID != "EURUSD" {
		t.Fatalf("expected EURUSD, got %+v %v", a, err)
	}
	for _, args := range [][]string{nil, {"DOGE"}, {"BTCUSD", "ETHUSD"}} {
		if _, err := parseAssetArg(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}

func TestParseTimeframeArg(t *testing.T) {
	tf, err := parseTimeframeArg([]string{"1H"})
	if err != nil || tf != "1h" {
		t.Fatalf("expected 1h, got %q %v", tf, err)
	}
	if _, err := parseTimeframeArg([]string{"4h"}); err == nil {
		t.Fatal("expected unsupported timeframe error")
	}
}

func TestParseAlertMode(t *testing.T) {
	for in, want := range map[string]string{"": "status", "ON": "on", " off ": "off", "status": "status"} {
		args := []string{in}
		if in == "" {
			args = nil
		}
		got, err := parseAlertMode(args)
		if err != nil || got != want {
			t.Fatalf("%q: expected %s, got %s %v", in, want, got, err)
		}
	}
	if _, err := parseAlertMode([]string{"loud"}); err == nil {
		t.Fatal("expected invalid mode error")
	}
}

func TestCommandsFullCycle(t *testing.T) {
	clock := &botClock{now: tuesday}
	cmds := NewCommands(newTestSessions(clock), 0)
	ctx := context.Background()
	id := SessionID(42)

	if reply := cmds.Start(ctx, id); !strings.Contains(reply, "0/20") {
		t.Fatalf("unexpected start reply: %s", reply)
	}
	if reply := cmds.Pick(ctx, id, []string{"btcusd"}); !strings.Contains(reply, "BTC/USD selected") {
		t.Fatalf("unexpected pick reply: %s", reply)
	}
	reply := cmds.Timeframe(ctx, id, []string{"5m"})
	if !strings.Contains(reply, "INF-") || !strings.Contains(reply, "PENDING") {
		t.Fatalf("unexpected result reply: %s", reply)
	}
	if reply := cmds.Feedback(ctx, id, domain.StatusConfirmed); !strings.Contains(reply, "CONFIRMED") {
		t.Fatalf("unexpected feedback reply: %s", reply)
	}
	if reply := cmds.Feedback(ctx, id, domain.StatusFailed); reply != "Result already recorded." {
		t.Fatalf("unexpected repeated feedback reply: %s", reply)
	}
	if reply := cmds.Again(ctx, id); !strings.Contains(reply, "INF-") {
		t.Fatalf("unexpected again reply: %s", reply)
	}
	history := cmds.History(ctx, id)
	if strings.Count(history, "INF-") != 2 {
		t.Fatalf("expected 2 history lines, got: %s", history)
	}
	if reply := cmds.Status(ctx, id); !strings.Contains(reply, "2/20") {
		t.Fatalf("unexpected status reply: %s", reply)
	}
}

func TestCommandsPickForexOnWeekend(t *testing.T) {
	cmds := NewCommands(newTestSessions(&botClock{now: saturday}), 0)
	reply := cmds.Pick(context.Background(), SessionID(7), []string{"GBPUSD"})
	if !strings.Contains(reply, "Forex is closed") {
		t.Fatalf("unexpected reply: %s", reply)
	}
	if assets := cmds.Assets(context.Background(), SessionID(7)); !strings.Contains(assets, "GBPUSD GBP/USD 1.26710 (-0.16%) [closed]") {
		t.Fatalf("expected closed marker, got: %s", assets)
	}
}

func TestCommandsTimeframeWithoutPick(t *testing.T) {
	cmds := NewCommands(newTestSessions(&botClock{now: tuesday}), 0)
	if reply := cmds.Timeframe(context.Background(), SessionID(8), []string{"1m"}); !strings.Contains(reply, "/pick") {
		t.Fatalf("unexpected reply: %s", reply)
	}
}

func TestCommandsTimeframeCancelled(t *testing.T) {
	cmds := NewCommands(newTestSessions(&botClock{now: tuesday}), time.Hour)
	id := SessionID(9)
	cmds.Pick(context.Background(), id, []string{"XAUUSD"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if reply := cmds.Timeframe(ctx, id, []string{"1m"}); reply != "Analysis cancelled." {
		t.Fatalf("unexpected reply: %s", reply)
	}
}

func TestCommandsUpgradeAndReset(t *testing.T) {
	cmds := NewCommands(newTestSessions(&botClock{now: tuesday}), 0)
	ctx := context.Background()
	id := SessionID(10)

	if reply := cmds.Reset(ctx, id); !strings.Contains(reply, "ELITE and VIP") {
		t.Fatalf("unexpected reset reply: %s", reply)
	}
	if reply := cmds.Upgrade(ctx, id, nil); !strings.HasPrefix(reply, "Usage") {
		t.Fatalf("unexpected usage reply: %s", reply)
	}
	if reply := cmds.Upgrade(ctx, id, []string{"0000"}); reply != "Invalid access code." {
		t.Fatalf("unexpected invalid reply: %s", reply)
	}
	if reply := cmds.Upgrade(ctx, id, []string{"1448135"}); !strings.Contains(reply, "VIP") || !strings.Contains(reply, "unlimited") {
		t.Fatalf("unexpected vip reply: %s", reply)
	}
	if reply := cmds.Reset(ctx, id); !strings.HasPrefix(reply, "Quota reset.") {
		t.Fatalf("unexpected reset reply: %s", reply)
	}
}

func TestCommandsFeedbackWithoutSignal(t *testing.T) {
	cmds := NewCommands(newTestSessions(&botClock{now: tuesday}), 0)
	if reply := cmds.Feedback(context.Background(), SessionID(11), domain.StatusConfirmed); reply != "No signal to rate yet." {
		t.Fatalf("unexpected reply: %s", reply)
	}
	if reply := cmds.History(context.Background(), SessionID(11)); reply != "No signals yet." {
		t.Fatalf("unexpected reply: %s", reply)
	}
}
