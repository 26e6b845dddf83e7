package market

import (
	"time"

	"signal-desk/internal/domain"
)

// Hours decides whether an asset can be traded at a given instant. Only forex
// has a closed window: Friday, Saturday and Sunday in the configured location.
type Hours struct {
	loc *time.Location
}

func NewHours(loc *time.Location) Hours {
	if loc == nil {
		loc = time.Local
	}
	return Hours{loc: loc}
}

// ForexOpen reports whether the forex market is open on the local calendar day of now.
func (h Hours) ForexOpen(now time.Time) bool {
	switch now.In(h.location()).Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return false
	default:
		return true
	}
}

// Allows reports whether asset may be selected at now.
func (h Hours) Allows(asset domain.Asset, now time.Time) bool {
	if asset.Category != domain.CategoryForex {
		return true
	}
	return h.ForexOpen(now)
}

func (h Hours) location() *time.Location {
	if h.loc == nil {
		return time.Local
	}
	return h.loc
}
