package tui

import (
	"context"
	"time"

	"signal-desk/internal/market"
	"signal-desk/internal/session"
)

// SessionDriver is the slice of *session.Session the TUI needs.
type SessionDriver interface {
	Dispatch(ctx context.Context, ev session.Event) (session.Snapshot, error)
	Snapshot() session.Snapshot
	CheckReset(ctx context.Context) bool
}

// Services bundles the dependencies injected into the TUI.
type Services struct {
	Session       SessionDriver
	AnalysisDelay time.Duration
	RefreshEvery  time.Duration
	Hours         market.Hours
	Now           func() time.Time
	Username      string
}

const (
	defaultAnalysisDelay = 3 * time.Second
	defaultRefreshEvery  = time.Minute
)

func (s Services) analysisDelay() time.Duration {
	if s.AnalysisDelay <= 0 {
		return defaultAnalysisDelay
	}
	return s.AnalysisDelay
}

func (s Services) refreshEvery() time.Duration {
	if s.RefreshEvery <= 0 {
		return defaultRefreshEvery
	}
	return s.RefreshEvery
}

func (s Services) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
