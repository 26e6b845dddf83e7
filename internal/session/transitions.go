package session

import (
	"errors"
	"fmt"
	"time"

	"signal-desk/internal/domain"
)

// apply runs one transition under s.mu and reports which persisted groups changed.
func (s *Session) apply(ev Event, now time.Time) (dirty, error) {
	switch ev.Type {
	case EventStartBrowsing:
		if s.screen != domain.ScreenMain {
			return 0, ErrIllegalTransition
		}
		s.screen = domain.ScreenAssetSelection
		return 0, nil

	case EventSelectAsset:
		return s.selectAsset(ev.Asset, now)

	case EventSelectTimeframe:
		if s.screen != domain.ScreenTimeframeSelection {
			return 0, ErrIllegalTransition
		}
		if !domain.IsSupportedTimeframe(ev.Timeframe) {
			return 0, fmt.Errorf("%w: %q", ErrUnknownTimeframe, ev.Timeframe)
		}
		if s.selectedAsset == nil {
			return 0, ErrMissingSelection
		}
		s.selectedTimeframe = ev.Timeframe
		s.screen = domain.ScreenAnalysis
		return 0, nil

	case EventAnalysisComplete:
		if s.screen != domain.ScreenAnalysis {
			return 0, ErrIllegalTransition
		}
		return s.generate(now)

	case EventNewCycle:
		if s.screen != domain.ScreenResult {
			return 0, ErrIllegalTransition
		}
		return s.generate(now)

	case EventSubmitFeedback:
		return s.applyFeedback(ev.SignalID, ev.Status)

	case EventSubmitUpgrade:
		if _, err := s.opts.Tiers.Upgrade(s.quota, ev.Secret, now); err != nil {
			return 0, err
		}
		return dirtyQuota, nil

	case EventResetQuota:
		if s.quota.Tier() == domain.TierStandard {
			return 0, ErrNotPermitted
		}
		s.quota.ClearUsed()
		return dirtyQuota, nil

	case EventBack:
		s.screen = backTarget(s.screen)
		return 0, nil

	case EventHome:
		s.screen = domain.ScreenMain
		s.selectedAsset = nil
		s.selectedTimeframe = ""
		return 0, nil

	case EventOpenCalendar:
		s.screen = domain.ScreenCalendar
		return 0, nil

	case EventToggleTheme:
		s.theme = s.theme.Toggle()
		return dirtyTheme, nil

	case EventToggleLanguage:
		s.language = s.language.Toggle()
		return dirtyLanguage, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownEvent, ev.Type)
	}
}

func (s *Session) selectAsset(asset domain.Asset, now time.Time) (dirty, error) {
	if s.screen != domain.ScreenMain && s.screen != domain.ScreenAssetSelection {
		return 0, ErrIllegalTransition
	}
	if asset.ID == "" {
		return 0, ErrUnknownAsset
	}
	if !s.opts.Hours.Allows(asset, now) {
		return 0, ErrMarketClosed
	}
	if !s.quota.CanConsume() {
		s.screen = domain.ScreenMain
		return 0, ErrQuotaExhausted
	}
	a := asset
	s.selectedAsset = &a
	s.screen = domain.ScreenTimeframeSelection
	return 0, nil
}

// generate is the analysis completion step: the quota is re-checked because
// back navigation can reach ANALYSIS again without passing selectAsset.
func (s *Session) generate(now time.Time) (dirty, error) {
	if s.selectedAsset == nil || s.selectedTimeframe == "" {
		return 0, ErrMissingSelection
	}
	if !s.quota.CanConsume() {
		s.screen = domain.ScreenMain
		return 0, ErrQuotaExhausted
	}
	sig := s.opts.Generator.Generate(*s.selectedAsset, s.selectedTimeframe, now)
	s.quota.Consume(now)
	s.history.Prepend(sig)
	s.currentSignal = &sig
	s.screen = domain.ScreenResult
	return dirtyQuota | dirtyHistory, nil
}

func (s *Session) applyFeedback(id string, status domain.SignalStatus) (dirty, error) {
	updated, err := s.history.ApplyFeedback(id, status)
	if err != nil {
		return 0, fmt.Errorf("feedback %s: %w", id, err)
	}
	if s.currentSignal != nil && s.currentSignal.ID == updated.ID {
		cur := updated
		s.currentSignal = &cur
	}
	return dirtyHistory, nil
}

func backTarget(screen domain.Screen) domain.Screen {
	switch screen {
	case domain.ScreenResult, domain.ScreenAnalysis:
		return domain.ScreenTimeframeSelection
	case domain.ScreenTimeframeSelection:
		return domain.ScreenAssetSelection
	default:
		return domain.ScreenMain
	}
}

// IsRejection reports whether err is an expected guard failure rather than
// an unknown event.
func IsRejection(err error) bool {
	return err != nil && !errors.Is(err, ErrUnknownEvent)
}
