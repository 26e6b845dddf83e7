package tier

import (
	"errors"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/quota"
)

// ErrInvalidSecret is returned when an upgrade secret matches no tier.
var ErrInvalidSecret = errors.New("invalid upgrade secret")

// Secrets holds the shared tokens that unlock higher tiers.
type Secrets struct {
	Elite string
	VIP   string
}

var DefaultSecrets = Secrets{Elite: "2741520", VIP: "1448135"}

type Manager struct {
	secrets Secrets
}

func NewManager(secrets Secrets) Manager {
	return Manager{secrets: secrets}
}

// Upgrade compares secret against the configured tokens and applies the
// matching tier to q. ELITE also restarts the quota window; VIP is unbounded
// and keeps the counter as is. On mismatch q is left untouched.
func (m Manager) Upgrade(q *quota.Tracker, secret string, now time.Time) (domain.Tier, error) {
	switch {
	case m.secrets.Elite != "" && secret == m.secrets.Elite:
		q.SetTier(domain.TierElite)
		q.Reset(now)
		return domain.TierElite, nil
	case m.secrets.VIP != "" && secret == m.secrets.VIP:
		q.SetTier(domain.TierVIP)
		return domain.TierVIP, nil
	default:
		return q.Tier(), ErrInvalidSecret
	}
}
