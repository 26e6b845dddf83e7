package quota

import (
	"time"

	"signal-desk/internal/domain"
)

// ResetWindow is the rolling period after which the used counter drops to zero.
const ResetWindow = 12 * time.Hour

// Unlimited is returned by Limit and Remaining for tiers without a cap.
const Unlimited = -1

const (
	standardLimit = 20
	eliteLimit    = 50
)

// Limit returns the number of signals allowed per window for tier.
func Limit(tier domain.Tier) int {
	switch tier {
	case domain.TierVIP:
		return Unlimited
	case domain.TierElite:
		return eliteLimit
	default:
		return standardLimit
	}
}

// Tracker counts signals consumed since the last reset. It is not safe for
// concurrent use; callers serialize access.
type Tracker struct {
	tier      domain.Tier
	used      int
	lastReset time.Time
}

func NewTracker(tier domain.Tier, used int, lastReset time.Time) *Tracker {
	if !tier.IsValid() {
		tier = domain.TierStandard
	}
	if used < 0 {
		used = 0
	}
	return &Tracker{tier: tier, used: used, lastReset: lastReset}
}

func (t *Tracker) Tier() domain.Tier { return t.tier }

func (t *Tracker) SetTier(tier domain.Tier) { t.tier = tier }

func (t *Tracker) Used() int { return t.used }

func (t *Tracker) LastReset() time.Time { return t.lastReset }

func (t *Tracker) Limit() int { return Limit(t.tier) }

func (t *Tracker) Unlimited() bool { return t.Limit() == Unlimited }

// Remaining returns how many signals are left in the window, or Unlimited.
func (t *Tracker) Remaining() int {
	limit := t.Limit()
	if limit == Unlimited {
		return Unlimited
	}
	if t.used >= limit {
		return 0
	}
	return limit - t.used
}

func (t *Tracker) CanConsume() bool {
	limit := t.Limit()
	return limit == Unlimited || t.used < limit
}

// CheckReset zeroes the counter once ResetWindow has elapsed since the last
// reset. It is level-triggered and safe to call at any frequency. It reports
// whether a reset happened.
func (t *Tracker) CheckReset(now time.Time) bool {
	if now.Sub(t.lastReset) < ResetWindow {
		return false
	}
	t.Reset(now)
	return true
}

// Consume records one generated signal. The first signal after a reset
// re-anchors the window at now.
func (t *Tracker) Consume(now time.Time) {
	if t.used == 0 {
		t.lastReset = now
	}
	t.used++
}

// ClearUsed zeroes the counter and keeps the window anchor.
func (t *Tracker) ClearUsed() {
	t.used = 0
}

func (t *Tracker) Reset(now time.Time) {
	t.used = 0
	t.lastReset = now
}
