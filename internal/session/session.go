package session

import (
	"context"
	"sync"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/market"
	"signal-desk/internal/quota"
	"signal-desk/internal/signal"
	"signal-desk/internal/store"
	"signal-desk/internal/tier"

	"github.com/charmbracelet/log"
)

// Persister receives the post-mutation writes. *store.Preferences satisfies it.
type Persister interface {
	SaveQuota(ctx context.Context, t domain.Tier, used int, lastReset time.Time) error
	SaveTheme(ctx context.Context, theme domain.Theme) error
	SaveLanguage(ctx context.Context, lang domain.Language) error
	SaveHistory(ctx context.Context, history []domain.Signal) error
}

type Options struct {
	Now       func() time.Time
	Hours     market.Hours
	Generator *signal.Generator
	Tiers     tier.Manager
	Persister Persister
	Recorder  Recorder
	Logger    *log.Logger
}

// Recorder receives dispatch outcomes for instrumentation. It is called
// outside the session lock.
type Recorder interface {
	RecordEvent(ev EventType, err error)
	RecordSignal(t domain.Tier)
	RecordReset()
}

// Snapshot is the read-only view handed to presentation layers.
type Snapshot struct {
	SessionID         string          `json:"session_id"`
	Screen            domain.Screen   `json:"screen"`
	SelectedAsset     *domain.Asset   `json:"selected_asset,omitempty"`
	SelectedTimeframe string          `json:"selected_timeframe,omitempty"`
	CurrentSignal     *domain.Signal  `json:"current_signal,omitempty"`
	History           []domain.Signal `json:"history"`
	Tier              domain.Tier     `json:"tier"`
	SignalsUsed       int             `json:"signals_used"`
	Limit             int             `json:"limit"`
	Remaining         int             `json:"remaining"`
	Unlimited         bool            `json:"unlimited"`
	LastReset         time.Time       `json:"last_reset"`
	NextReset         time.Time       `json:"next_reset"`
	Theme             domain.Theme    `json:"theme"`
	Language          domain.Language `json:"language"`
	ForexOpen         bool            `json:"forex_open"`
}

type dirty uint8

const (
	dirtyQuota dirty = 1 << iota
	dirtyTheme
	dirtyLanguage
	dirtyHistory
)

// Session is the root state of one user's flow. All mutations go through
// Dispatch or CheckReset and are serialized by mu.
type Session struct {
	mu   sync.Mutex
	id   string
	opts Options

	screen            domain.Screen
	selectedAsset     *domain.Asset
	selectedTimeframe string
	currentSignal     *domain.Signal
	history           *signal.History
	quota             *quota.Tracker
	theme             domain.Theme
	language          domain.Language

	observers map[int]observer
	nextObs   int
}

// New restores a session from persisted state and runs the quota reset check
// once, so a window that elapsed while the process was down is honoured.
func New(ctx context.Context, id string, st store.State, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Generator == nil {
		opts.Generator = signal.NewGenerator(nil, nil)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if !st.Theme.IsValid() {
		st.Theme = domain.ThemeDark
	}
	if !st.Language.IsValid() {
		st.Language = domain.LanguageRU
	}

	s := &Session{
		id:        id,
		opts:      opts,
		screen:    domain.ScreenMain,
		history:   signal.NewHistory(st.History),
		quota:     quota.NewTracker(st.Tier, st.SignalsUsed, st.LastReset),
		theme:     st.Theme,
		language:  st.Language,
		observers: make(map[int]observer),
	}
	if s.quota.CheckReset(opts.Now()) {
		s.opts.Logger.Info("quota window elapsed on load", "session", id)
		s.persist(ctx, dirtyQuota)
		if opts.Recorder != nil {
			opts.Recorder.RecordReset()
		}
	}
	return s
}

func (s *Session) ID() string { return s.id }

// Dispatch applies ev. A rejected event returns one of the package's sentinel
// errors together with the resulting snapshot; the state is left unchanged
// except for the documented quota fallback to MAIN.
func (s *Session) Dispatch(ctx context.Context, ev Event) (Snapshot, error) {
	s.mu.Lock()
	changed, err := s.apply(ev, s.opts.Now())
	s.persist(ctx, changed)
	snap := s.snapshotLocked()
	observers := s.observerList(false)
	s.mu.Unlock()

	if err != nil {
		s.opts.Logger.Debug("event rejected", "session", s.id, "event", ev.Type, "screen", snap.Screen, "err", err)
	}
	if rec := s.opts.Recorder; rec != nil {
		rec.RecordEvent(ev.Type, err)
		if err == nil && (ev.Type == EventAnalysisComplete || ev.Type == EventNewCycle) {
			rec.RecordSignal(snap.Tier)
		}
	}
	for _, fn := range observers {
		fn(snap)
	}
	return snap, err
}

// CheckReset runs the level-triggered quota reset. It reports whether the
// window was reset.
func (s *Session) CheckReset(ctx context.Context) bool {
	s.mu.Lock()
	fired := s.quota.CheckReset(s.opts.Now())
	if fired {
		s.persist(ctx, dirtyQuota)
	}
	snap := s.snapshotLocked()
	observers := s.observerList(true)
	s.mu.Unlock()

	if fired {
		s.opts.Logger.Info("quota window reset", "session", s.id)
		if s.opts.Recorder != nil {
			s.opts.Recorder.RecordReset()
		}
		for _, fn := range observers {
			fn(snap)
		}
	}
	return fired
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

type observer struct {
	fn         func(Snapshot)
	resetsOnly bool
}

// Observe registers fn to receive a snapshot after every dispatched event and
// every quota reset. The returned func removes the observer.
func (s *Session) Observe(fn func(Snapshot)) func() {
	return s.addObserver(observer{fn: fn})
}

// ObserveResets registers fn for the resets made by CheckReset only. Resets
// caused by dispatched events (upgrade, quota reset) are not reported.
func (s *Session) ObserveResets(fn func(Snapshot)) func() {
	return s.addObserver(observer{fn: fn, resetsOnly: true})
}

func (s *Session) addObserver(o observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = o
	return func() {
		s.mu.Lock()
		delete(s.observers, id)
		s.mu.Unlock()
	}
}

func (s *Session) observerList(reset bool) []func(Snapshot) {
	out := make([]func(Snapshot), 0, len(s.observers))
	for _, o := range s.observers {
		if o.resetsOnly && !reset {
			continue
		}
		out = append(out, o.fn)
	}
	return out
}

// persist writes the changed groups. Failures are logged and dropped.
func (s *Session) persist(ctx context.Context, changed dirty) {
	p := s.opts.Persister
	if p == nil || changed == 0 {
		return
	}
	if changed&dirtyQuota != 0 {
		if err := p.SaveQuota(ctx, s.quota.Tier(), s.quota.Used(), s.quota.LastReset()); err != nil {
			s.opts.Logger.Warn("persist quota failed", "session", s.id, "err", err)
		}
	}
	if changed&dirtyTheme != 0 {
		if err := p.SaveTheme(ctx, s.theme); err != nil {
			s.opts.Logger.Warn("persist theme failed", "session", s.id, "err", err)
		}
	}
	if changed&dirtyLanguage != 0 {
		if err := p.SaveLanguage(ctx, s.language); err != nil {
			s.opts.Logger.Warn("persist language failed", "session", s.id, "err", err)
		}
	}
	if changed&dirtyHistory != 0 {
		if err := p.SaveHistory(ctx, s.history.Items()); err != nil {
			s.opts.Logger.Warn("persist history failed", "session", s.id, "err", err)
		}
	}
}

func (s *Session) snapshotLocked() Snapshot {
	now := s.opts.Now()
	snap := Snapshot{
		SessionID:         s.id,
		Screen:            s.screen,
		SelectedTimeframe: s.selectedTimeframe,
		History:           s.history.Items(),
		Tier:              s.quota.Tier(),
		SignalsUsed:       s.quota.Used(),
		Limit:             s.quota.Limit(),
		Remaining:         s.quota.Remaining(),
		Unlimited:         s.quota.Unlimited(),
		LastReset:         s.quota.LastReset(),
		NextReset:         s.quota.LastReset().Add(quota.ResetWindow),
		Theme:             s.theme,
		Language:          s.language,
		ForexOpen:         s.opts.Hours.ForexOpen(now),
	}
	if s.selectedAsset != nil {
		a := *s.selectedAsset
		snap.SelectedAsset = &a
	}
	if s.currentSignal != nil {
		sig := *s.currentSignal
		snap.CurrentSignal = &sig
	}
	return snap
}
