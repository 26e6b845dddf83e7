package domain

import "time"

type AssetCategory string

const (
	CategoryForex  AssetCategory = "Forex"
	CategoryCrypto AssetCategory = "Crypto"
	CategoryMetals AssetCategory = "Metals"
)

type Asset struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Category  AssetCategory `json:"category"`
	Price     string        `json:"price"`
	AbsChange string        `json:"abs_change"`
	Change    string        `json:"change"`
	Open      string        `json:"open"`
	High      string        `json:"high"`
	Low       string        `json:"low"`
	Prev      string        `json:"prev"`
	Flag      string        `json:"flag"`
}

type SignalDirection string

const (
	DirectionBuy  SignalDirection = "BUY"
	DirectionSell SignalDirection = "SELL"
)

func (d SignalDirection) IsValid() bool {
	return d == DirectionBuy || d == DirectionSell
}

// Signal confidence is always within [MinProbability, MaxProbability].
const (
	MinProbability = 84
	MaxProbability = 94
)

type SignalStatus string

const (
	StatusPending   SignalStatus = "PENDING"
	StatusConfirmed SignalStatus = "CONFIRMED"
	StatusFailed    SignalStatus = "FAILED"
)

// IsTerminal reports whether no further feedback may be applied.
func (s SignalStatus) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusFailed
}

func (s SignalStatus) IsValid() bool {
	return s == StatusPending || s.IsTerminal()
}

type Signal struct {
	ID          string          `json:"id"`
	Asset       Asset           `json:"asset"`
	Timeframe   string          `json:"timeframe"`
	Direction   SignalDirection `json:"direction"`
	Probability int             `json:"probability"`
	Timestamp   time.Time       `json:"timestamp"`
	Status      SignalStatus    `json:"status"`
}

// Valid reports whether s is well-formed: it has an id, a known direction
// and status, and a probability in range.
func (s Signal) Valid() bool {
	return s.ID != "" &&
		s.Direction.IsValid() &&
		s.Status.IsValid() &&
		s.Probability >= MinProbability && s.Probability <= MaxProbability
}

type Tier string

const (
	TierStandard Tier = "STANDARD"
	TierElite    Tier = "ELITE"
	TierVIP      Tier = "VIP"
)

func (t Tier) IsValid() bool {
	return t == TierStandard || t == TierElite || t == TierVIP
}

type Screen string

const (
	ScreenMain               Screen = "MAIN"
	ScreenAssetSelection     Screen = "ASSET_SELECTION"
	ScreenTimeframeSelection Screen = "TIMEFRAME_SELECTION"
	ScreenAnalysis           Screen = "ANALYSIS"
	ScreenResult             Screen = "RESULT"
	ScreenCalendar           Screen = "CALENDAR"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func (t Theme) IsValid() bool {
	return t == ThemeLight || t == ThemeDark
}

// Toggle returns the opposite theme; anything unrecognised toggles to light.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

type Language string

const (
	LanguageRU Language = "RU"
	LanguageEN Language = "EN"
)

func (l Language) IsValid() bool {
	return l == LanguageRU || l == LanguageEN
}

func (l Language) Toggle() Language {
	if l == LanguageEN {
		return LanguageRU
	}
	return LanguageEN
}
