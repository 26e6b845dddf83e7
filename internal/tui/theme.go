package tui

import (
	"signal-desk/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

type palette struct {
	fg, subtle, accent, accentFg, border, up, down, warn lipgloss.Color
}

var (
	darkPalette = palette{
		fg:       lipgloss.Color("#FAFAFA"),
		subtle:   lipgloss.Color("#888888"),
		accent:   lipgloss.Color("#7D56F4"),
		accentFg: lipgloss.Color("#FAFAFA"),
		border:   lipgloss.Color("#555555"),
		up:       lipgloss.Color("#00FF00"),
		down:     lipgloss.Color("#FF0000"),
		warn:     lipgloss.Color("#FFFF00"),
	}
	lightPalette = palette{
		fg:       lipgloss.Color("#1A1A1A"),
		subtle:   lipgloss.Color("#6B6B6B"),
		accent:   lipgloss.Color("#5A3FD1"),
		accentFg: lipgloss.Color("#FFFFFF"),
		border:   lipgloss.Color("#BBBBBB"),
		up:       lipgloss.Color("#0A8A2E"),
		down:     lipgloss.Color("#C62828"),
		warn:     lipgloss.Color("#B26A00"),
	}
)

// Styles is the set of lipgloss styles for one theme.
type Styles struct {
	Header    lipgloss.Style
	Title     lipgloss.Style
	Subtext   lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Disabled  lipgloss.Style
	Border    lipgloss.Style
	Error     lipgloss.Style
	Notice    lipgloss.Style
	Buy       lipgloss.Style
	Sell      lipgloss.Style
	Up        lipgloss.Style
	Down      lipgloss.Style
	Pending   lipgloss.Style
	Confirmed lipgloss.Style
	Failed    lipgloss.Style
	Spinner   lipgloss.Style
}

func NewStyles(theme domain.Theme) Styles {
	p := darkPalette
	if theme == domain.ThemeLight {
		p = lightPalette
	}
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.accentFg).Background(p.accent).Padding(0, 1),
		Title:     lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		Subtext:   lipgloss.NewStyle().Foreground(p.subtle),
		Item:      lipgloss.NewStyle().Foreground(p.fg).PaddingLeft(2),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		Disabled:  lipgloss.NewStyle().Foreground(p.subtle).Strikethrough(true).PaddingLeft(2),
		Border:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.border).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(p.down),
		Notice:    lipgloss.NewStyle().Foreground(p.warn),
		Buy:       lipgloss.NewStyle().Foreground(p.up).Bold(true),
		Sell:      lipgloss.NewStyle().Foreground(p.down).Bold(true),
		Up:        lipgloss.NewStyle().Foreground(p.up),
		Down:      lipgloss.NewStyle().Foreground(p.down),
		Pending:   lipgloss.NewStyle().Foreground(p.warn),
		Confirmed: lipgloss.NewStyle().Foreground(p.up),
		Failed:    lipgloss.NewStyle().Foreground(p.down),
		Spinner:   lipgloss.NewStyle().Foreground(p.accent),
	}
}
