package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"signal-desk/internal/domain"

	"github.com/charmbracelet/log"
)

const keyPrefix = "signal-desk"

const (
	KeyTheme       = "bt_theme"
	KeyTier        = "bt_user_status"
	KeySignalsUsed = "bt_signals_used"
	KeyLastReset   = "bt_last_reset"
	KeyLanguage    = "bt_lang"
	KeyHistory     = "bt_history"
)

// State is the persisted slice of a session.
type State struct {
	Tier        domain.Tier
	SignalsUsed int
	LastReset   time.Time
	Theme       domain.Theme
	Language    domain.Language
	History     []domain.Signal
}

// DefaultState is what a session starts with when nothing was persisted.
func DefaultState(now time.Time) State {
	return State{
		Tier:      domain.TierStandard,
		LastReset: now,
		Theme:     domain.ThemeDark,
		Language:  domain.LanguageRU,
	}
}

// Preferences maps a session's State onto namespaced KV keys.
type Preferences struct {
	kv     KV
	prefix string
	logger *log.Logger
}

func NewPreferences(kv KV, sessionID string, logger *log.Logger) *Preferences {
	return NewNamespacedPreferences(kv, "", sessionID, logger)
}

// NewNamespacedPreferences keeps the session's keys under
// signal-desk:<namespace>:<id>: so that processes sharing one store do not
// overwrite each other's counters. An empty namespace keeps signal-desk:<id>:.
func NewNamespacedPreferences(kv KV, namespace, sessionID string, logger *log.Logger) *Preferences {
	if logger == nil {
		logger = log.Default()
	}
	prefix := fmt.Sprintf("%s:%s:", keyPrefix, sessionID)
	if namespace != "" {
		prefix = fmt.Sprintf("%s:%s:%s:", keyPrefix, namespace, sessionID)
	}
	return &Preferences{
		kv:     kv,
		prefix: prefix,
		logger: logger,
	}
}

// Load reads every persisted key. Missing or malformed values fall back to
// DefaultState field by field; Load itself never fails.
func (p *Preferences) Load(ctx context.Context, now time.Time) State {
	st := DefaultState(now)

	if v, ok := p.get(ctx, KeyTheme); ok {
		if theme := domain.Theme(v); theme.IsValid() {
			st.Theme = theme
		} else {
			p.malformed(KeyTheme, v)
		}
	}
	if v, ok := p.get(ctx, KeyTier); ok {
		if tier := domain.Tier(v); tier.IsValid() {
			st.Tier = tier
		} else {
			p.malformed(KeyTier, v)
		}
	}
	if v, ok := p.get(ctx, KeySignalsUsed); ok {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			st.SignalsUsed = n
		} else {
			p.malformed(KeySignalsUsed, v)
		}
	}
	if v, ok := p.get(ctx, KeyLastReset); ok {
		if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
			st.LastReset = time.UnixMilli(ms)
		} else {
			p.malformed(KeyLastReset, v)
		}
	}
	if v, ok := p.get(ctx, KeyLanguage); ok {
		if lang := domain.Language(v); lang.IsValid() {
			st.Language = lang
		} else {
			p.malformed(KeyLanguage, v)
		}
	}
	if v, ok := p.get(ctx, KeyHistory); ok {
		var history []domain.Signal
		if err := json.Unmarshal([]byte(v), &history); err == nil && validHistory(history) {
			st.History = history
		} else {
			p.malformed(KeyHistory, v)
		}
	}
	return st
}

// SaveQuota writes tier, counter and reset anchor.
func (p *Preferences) SaveQuota(ctx context.Context, tier domain.Tier, used int, lastReset time.Time) error {
	return errors.Join(
		p.set(ctx, KeyTier, string(tier)),
		p.set(ctx, KeySignalsUsed, strconv.Itoa(used)),
		p.set(ctx, KeyLastReset, strconv.FormatInt(lastReset.UnixMilli(), 10)),
	)
}

func (p *Preferences) SaveTheme(ctx context.Context, theme domain.Theme) error {
	return p.set(ctx, KeyTheme, string(theme))
}

func (p *Preferences) SaveLanguage(ctx context.Context, lang domain.Language) error {
	return p.set(ctx, KeyLanguage, string(lang))
}

func (p *Preferences) SaveHistory(ctx context.Context, history []domain.Signal) error {
	raw, err := json.Marshal(history)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	return p.set(ctx, KeyHistory, string(raw))
}

// validHistory rejects the whole list if any entry is malformed or an id
// repeats.
func validHistory(history []domain.Signal) bool {
	seen := make(map[string]struct{}, len(history))
	for _, s := range history {
		if !s.Valid() {
			return false
		}
		if _, dup := seen[s.ID]; dup {
			return false
		}
		seen[s.ID] = struct{}{}
	}
	return true
}

func (p *Preferences) get(ctx context.Context, key string) (string, bool) {
	v, err := p.kv.Get(ctx, p.prefix+key)
	if errors.Is(err, ErrNotFound) {
		return "", false
	}
	if err != nil {
		p.logger.Warn("preference read failed, using default", "key", key, "err", err)
		return "", false
	}
	return v, true
}

func (p *Preferences) set(ctx context.Context, key, value string) error {
	if err := p.kv.Set(ctx, p.prefix+key, value); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (p *Preferences) malformed(key, value string) {
	p.logger.Warn("malformed preference, using default", "key", key, "value", value)
}
