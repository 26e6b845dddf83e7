package quota

import (
	"testing"
	"time"

	"signal-desk/internal/domain"
)

func TestLimitByTier(t *testing.T) {
	if Limit(domain.TierStandard) != 20 {
		t.Fatalf("expected standard limit 20, got %d", Limit(domain.TierStandard))
	}
	if Limit(domain.TierElite) != 50 {
		t.Fatalf("expected elite limit 50, got %d", Limit(domain.TierElite))
	}
	if Limit(domain.TierVIP) != Unlimited {
		t.Fatalf("expected vip to be unlimited, got %d", Limit(domain.TierVIP))
	}
}

func TestRemainingAndCanConsume(t *testing.T) {
	now := time.Now()
	tr := NewTracker(domain.TierStandard, 19, now)
	if tr.Remaining() != 1 || !tr.CanConsume() {
		t.Fatalf("expected one remaining, got %d", tr.Remaining())
	}
	tr.Consume(now)
	if tr.Remaining() != 0 || tr.CanConsume() {
		t.Fatalf("expected exhausted quota, got remaining=%d", tr.Remaining())
	}

	vip := NewTracker(domain.TierVIP, 10_000, now)
	if !vip.CanConsume() || vip.Remaining() != Unlimited || !vip.Unlimited() {
		t.Fatal("vip must always be able to consume")
	}
}

func TestNewTrackerNormalizesInput(t *testing.T) {
	tr := NewTracker(domain.Tier("bogus"), -4, time.Time{})
	if tr.Tier() != domain.TierStandard || tr.Used() != 0 {
		t.Fatalf("unexpected normalized tracker: tier=%s used=%d", tr.Tier(), tr.Used())
	}
}

func TestCheckResetAfterWindow(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(domain.TierStandard, 7, now.Add(-13*time.Hour))

	if !tr.CheckReset(now) {
		t.Fatal("expected reset to fire")
	}
	if tr.Used() != 0 || !tr.LastReset().Equal(now) {
		t.Fatalf("unexpected state after reset: used=%d last=%s", tr.Used(), tr.LastReset())
	}
	if tr.CheckReset(now.Add(time.Minute)) {
		t.Fatal("second check within the window must be a no-op")
	}
}

func TestCheckResetWithinWindowIsNoop(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	last := now.Add(-time.Hour)
	tr := NewTracker(domain.TierElite, 7, last)

	if tr.CheckReset(now) {
		t.Fatal("reset must not fire one hour into the window")
	}
	if tr.Used() != 7 || !tr.LastReset().Equal(last) {
		t.Fatalf("state changed: used=%d last=%s", tr.Used(), tr.LastReset())
	}
}

func TestCheckResetFiresExactlyAtBoundary(t *testing.T) {
	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(domain.TierStandard, 3, now.Add(-ResetWindow))
	if !tr.CheckReset(now) {
		t.Fatal("expected reset exactly at the window boundary")
	}
}

func TestConsumeReanchorsWhenUnused(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	now := start.Add(5 * time.Hour)
	tr := NewTracker(domain.TierStandard, 0, start)

	tr.Consume(now)
	if !tr.LastReset().Equal(now) || tr.Used() != 1 {
		t.Fatalf("expected re-anchor at first consume, got last=%s used=%d", tr.LastReset(), tr.Used())
	}

	later := now.Add(time.Hour)
	tr.Consume(later)
	if !tr.LastReset().Equal(now) || tr.Used() != 2 {
		t.Fatalf("second consume must not move the anchor, got last=%s used=%d", tr.LastReset(), tr.Used())
	}
}

func TestClearUsedKeepsAnchor(t *testing.T) {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	tr := NewTracker(domain.TierElite, 12, start)

	tr.ClearUsed()
	if tr.Used() != 0 || !tr.LastReset().Equal(start) {
		t.Fatalf("expected cleared counter with anchor kept, got last=%s used=%d", tr.LastReset(), tr.Used())
	}
}
