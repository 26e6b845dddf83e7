package session

import (
	"errors"

	"signal-desk/internal/domain"
)

type EventType string

const (
	EventStartBrowsing    EventType = "start_browsing"
	EventSelectAsset      EventType = "select_asset"
	EventSelectTimeframe  EventType = "select_timeframe"
	EventAnalysisComplete EventType = "analysis_complete"
	EventNewCycle         EventType = "new_cycle"
	EventSubmitFeedback   EventType = "submit_feedback"
	EventSubmitUpgrade    EventType = "submit_upgrade_secret"
	EventBack             EventType = "navigate_back"
	EventHome             EventType = "navigate_home"
	EventOpenCalendar     EventType = "open_calendar"
	EventToggleTheme      EventType = "toggle_theme"
	EventToggleLanguage   EventType = "toggle_language"
	EventResetQuota       EventType = "reset_quota"
)

// Known reports whether t is one of the event types above.
func (t EventType) Known() bool {
	switch t {
	case EventStartBrowsing, EventSelectAsset, EventSelectTimeframe, EventAnalysisComplete,
		EventNewCycle, EventSubmitFeedback, EventSubmitUpgrade, EventBack, EventHome,
		EventOpenCalendar, EventToggleTheme, EventToggleLanguage, EventResetQuota:
		return true
	}
	return false
}

// Event is a single user action. Only the fields relevant to Type are read.
type Event struct {
	Type      EventType
	Asset     domain.Asset
	Timeframe string
	SignalID  string
	Status    domain.SignalStatus
	Secret    string
}

var (
	ErrUnknownEvent      = errors.New("unknown event")
	ErrIllegalTransition = errors.New("event not allowed on current screen")
	ErrMarketClosed      = errors.New("forex market is closed")
	ErrQuotaExhausted    = errors.New("signal quota exhausted")
	ErrUnknownAsset      = errors.New("unknown asset")
	ErrUnknownTimeframe  = errors.New("unsupported timeframe")
	ErrMissingSelection  = errors.New("asset and timeframe must be selected")
	ErrNotPermitted      = errors.New("action not permitted for current tier")
)

func StartBrowsing() Event { return Event{Type: EventStartBrowsing} }

func SelectAsset(a domain.Asset) Event { return Event{Type: EventSelectAsset, Asset: a} }

func SelectTimeframe(tf string) Event { return Event{Type: EventSelectTimeframe, Timeframe: tf} }

func AnalysisComplete() Event { return Event{Type: EventAnalysisComplete} }

func NewCycle() Event { return Event{Type: EventNewCycle} }

func SubmitFeedback(signalID string, status domain.SignalStatus) Event {
	return Event{Type: EventSubmitFeedback, SignalID: signalID, Status: status}
}

func SubmitUpgradeSecret(secret string) Event {
	return Event{Type: EventSubmitUpgrade, Secret: secret}
}

func Back() Event { return Event{Type: EventBack} }

func Home() Event { return Event{Type: EventHome} }

func OpenCalendar() Event { return Event{Type: EventOpenCalendar} }

func ToggleTheme() Event { return Event{Type: EventToggleTheme} }

func ToggleLanguage() Event { return Event{Type: EventToggleLanguage} }

func ResetQuota() Event { return Event{Type: EventResetQuota} }
