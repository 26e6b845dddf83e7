package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"signal-desk/internal/domain"
	"signal-desk/internal/session"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// snapshotMsg carries the session state after a dispatched event. quiet
// snapshots come from the periodic refresh and leave the notice alone.
type snapshotMsg struct {
	snap  session.Snapshot
	err   error
	ev    session.EventType
	quiet bool
}

type analysisDoneMsg struct{ seq int }
type refreshMsg struct{}

// AppModel is the root Bubble Tea model. It renders the session snapshot and
// turns key presses into session events.
type AppModel struct {
	services Services
	snap     session.Snapshot
	styles   Styles
	cursor   int

	notice      string
	noticeIsErr bool

	secret   textinput.Model
	entering bool

	spinner     spinner.Model
	analysisSeq int

	width    int
	height   int
	quitting bool
}

// NewAppModel creates the root application model for one session.
func NewAppModel(svc Services) AppModel {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 24
	ti.EchoMode = textinput.EchoPassword

	snap := svc.Session.Snapshot()
	st := NewStyles(snap.Theme)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = st.Spinner

	return AppModel{
		services: svc,
		snap:     snap,
		styles:   st,
		secret:   ti,
		spinner:  sp,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.refreshTickCmd()
}

// Update handles incoming messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case snapshotMsg:
		return m.applySnapshot(msg)

	case analysisDoneMsg:
		if msg.seq != m.analysisSeq || m.snap.Screen != domain.ScreenAnalysis {
			return m, nil
		}
		return m, m.dispatchCmd(session.AnalysisComplete())

	case refreshMsg:
		return m, tea.Batch(m.checkResetCmd(), m.refreshTickCmd())

	case spinner.TickMsg:
		if m.snap.Screen != domain.ScreenAnalysis {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.entering {
			return m.updateSecret(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m AppModel) updateSecret(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEnter:
		value := strings.TrimSpace(m.secret.Value())
		m.secret.SetValue("")
		m.secret.Blur()
		m.entering = false
		if value == "" {
			return m, nil
		}
		return m, m.dispatchCmd(session.SubmitUpgradeSecret(value))
	case key.Matches(msg, DefaultKeyMap.Cancel):
		m.secret.SetValue("")
		m.secret.Blur()
		m.entering = false
		return m, nil
	case msg.String() == "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.secret, cmd = m.secret.Update(msg)
	return m, cmd
}

func (m AppModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := DefaultKeyMap
	switch {
	case key.Matches(msg, km.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, km.Home):
		return m, m.dispatchCmd(session.Home())
	case key.Matches(msg, km.Calendar):
		return m, m.dispatchCmd(session.OpenCalendar())
	case key.Matches(msg, km.Theme):
		return m, m.dispatchCmd(session.ToggleTheme())
	case key.Matches(msg, km.Language):
		return m, m.dispatchCmd(session.ToggleLanguage())
	case key.Matches(msg, km.Reset):
		return m, m.dispatchCmd(session.ResetQuota())
	case key.Matches(msg, km.Upgrade):
		m.entering = true
		cmd := m.secret.Focus()
		return m, cmd
	case key.Matches(msg, km.Back):
		return m, m.dispatchCmd(session.Back())
	case key.Matches(msg, km.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, km.Down):
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil
	}

	switch m.snap.Screen {
	case domain.ScreenMain:
		if key.Matches(msg, km.Enter) {
			return m, m.dispatchCmd(session.StartBrowsing())
		}
	case domain.ScreenAssetSelection:
		if key.Matches(msg, km.Enter) && m.cursor < len(domain.Assets) {
			return m, m.dispatchCmd(session.SelectAsset(domain.Assets[m.cursor]))
		}
	case domain.ScreenTimeframeSelection:
		if key.Matches(msg, km.Enter) && m.cursor < len(domain.SupportedTimeframes) {
			return m, m.dispatchCmd(session.SelectTimeframe(domain.SupportedTimeframes[m.cursor]))
		}
	case domain.ScreenResult:
		sig := m.snap.CurrentSignal
		switch {
		case key.Matches(msg, km.Again):
			return m, m.dispatchCmd(session.NewCycle())
		case key.Matches(msg, km.Win) && sig != nil:
			return m, m.dispatchCmd(session.SubmitFeedback(sig.ID, domain.StatusConfirmed))
		case key.Matches(msg, km.Loss) && sig != nil:
			return m, m.dispatchCmd(session.SubmitFeedback(sig.ID, domain.StatusFailed))
		}
	}
	return m, nil
}

func (m AppModel) applySnapshot(msg snapshotMsg) (tea.Model, tea.Cmd) {
	prev := m.snap
	m.snap = msg.snap
	if prev.Theme != m.snap.Theme {
		m.styles = NewStyles(m.snap.Theme)
		m.spinner.Style = m.styles.Spinner
	}
	if prev.Screen != m.snap.Screen {
		m.cursor = 0
	}

	if !msg.quiet {
		switch {
		case msg.err != nil:
			m.notice, m.noticeIsErr = describeError(m.snap.Language, msg.err), true
		case msg.ev == session.EventSubmitUpgrade:
			m.notice, m.noticeIsErr = text(m.snap.Language, lblUpgraded), false
		case msg.ev == session.EventResetQuota:
			m.notice, m.noticeIsErr = text(m.snap.Language, lblQuotaReset), false
		default:
			m.notice = ""
		}
	}

	if m.snap.Screen == domain.ScreenAnalysis && prev.Screen != domain.ScreenAnalysis {
		m.analysisSeq++
		return m, tea.Batch(m.spinner.Tick, m.analysisTickCmd(m.analysisSeq))
	}
	return m, nil
}

func (m AppModel) dispatchCmd(ev session.Event) tea.Cmd {
	drv := m.services.Session
	return func() tea.Msg {
		snap, err := drv.Dispatch(context.Background(), ev)
		return snapshotMsg{snap: snap, err: err, ev: ev.Type}
	}
}

func (m AppModel) checkResetCmd() tea.Cmd {
	drv := m.services.Session
	return func() tea.Msg {
		drv.CheckReset(context.Background())
		return snapshotMsg{snap: drv.Snapshot(), quiet: true}
	}
}

func (m AppModel) analysisTickCmd(seq int) tea.Cmd {
	return tea.Tick(m.services.analysisDelay(), func(_ time.Time) tea.Msg {
		return analysisDoneMsg{seq: seq}
	})
}

func (m AppModel) refreshTickCmd() tea.Cmd {
	return tea.Tick(m.services.refreshEvery(), func(_ time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (m AppModel) listLen() int {
	switch m.snap.Screen {
	case domain.ScreenAssetSelection:
		return len(domain.Assets)
	case domain.ScreenTimeframeSelection:
		return len(domain.SupportedTimeframes)
	default:
		return 0
	}
}

// Snapshot returns the last rendered session state (for testing).
func (m AppModel) Snapshot() session.Snapshot { return m.snap }

// Screen returns the current screen (for testing).
func (m AppModel) Screen() domain.Screen { return m.snap.Screen }

// View renders the header, the active screen and the help line.
func (m AppModel) View() string {
	lang := m.snap.Language
	if m.quitting {
		return text(lang, lblGoodbye) + "\n"
	}

	sections := []string{m.renderHeader(), ""}
	switch m.snap.Screen {
	case domain.ScreenAssetSelection:
		sections = append(sections, m.renderAssets())
	case domain.ScreenTimeframeSelection:
		sections = append(sections, m.renderTimeframes())
	case domain.ScreenAnalysis:
		sections = append(sections, m.renderAnalysis())
	case domain.ScreenResult:
		sections = append(sections, m.renderResult())
	case domain.ScreenCalendar:
		sections = append(sections,
			m.styles.Title.Render(text(lang, lblCalendar)),
			RenderWeek(m.styles, lang, m.services.Hours, m.services.now()))
	default:
		sections = append(sections, m.renderMain())
	}

	if m.entering {
		sections = append(sections, "", text(lang, lblUpgradePrompt)+": "+m.secret.View())
	}
	if m.notice != "" {
		style := m.styles.Notice
		if m.noticeIsErr {
			style = m.styles.Error
		}
		sections = append(sections, "", style.Render(m.notice))
	}
	sections = append(sections, "", m.styles.Subtext.Render(m.helpLine()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m AppModel) renderHeader() string {
	market := text(m.snap.Language, lblMarketOpen)
	if !m.snap.ForexOpen {
		market = text(m.snap.Language, lblMarketClosed)
	}
	title := m.styles.Header.Render(text(m.snap.Language, lblTitle))
	meta := m.styles.Subtext.Render(fmt.Sprintf("%s · %s · %s", market, m.snap.Theme, m.snap.Language))
	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, title, " ", meta),
		RenderQuota(m.styles, m.snap, 20),
	)
}

func (m AppModel) renderMain() string {
	lang := m.snap.Language
	lines := []string{m.styles.Title.Render(text(lang, lblStart)), ""}
	if m.snap.CurrentSignal != nil {
		lines = append(lines, m.styles.Border.Render(m.renderSignalCard(*m.snap.CurrentSignal)), "")
	}
	lines = append(lines, m.styles.Title.Render(text(lang, lblHistory)))
	if len(m.snap.History) == 0 {
		lines = append(lines, m.styles.Subtext.Render(text(lang, lblNoHistory)))
	}
	limit := len(m.snap.History)
	if rows := m.historyRows(); limit > rows {
		limit = rows
	}
	for _, sig := range m.snap.History[:limit] {
		lines = append(lines, FormatSignal(m.styles, sig))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderAssets() string {
	lines := []string{m.styles.Title.Render(text(m.snap.Language, lblChooseAsset))}
	for i, a := range domain.Assets {
		row := FormatAsset(m.styles, a)
		closed := a.Category == domain.CategoryForex && !m.snap.ForexOpen
		switch {
		case i == m.cursor:
			lines = append(lines, m.styles.Selected.Render("> "+row))
		case closed:
			lines = append(lines, m.styles.Disabled.Render(row))
		default:
			lines = append(lines, m.styles.Item.Render(row))
		}
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderTimeframes() string {
	head := text(m.snap.Language, lblChooseTimeframe)
	if m.snap.SelectedAsset != nil {
		head = fmt.Sprintf("%s · %s", m.snap.SelectedAsset.Name, head)
	}
	lines := []string{m.styles.Title.Render(head)}
	for i, tf := range domain.SupportedTimeframes {
		if i == m.cursor {
			lines = append(lines, m.styles.Selected.Render("> "+tf))
		} else {
			lines = append(lines, m.styles.Item.Render(tf))
		}
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderAnalysis() string {
	target := ""
	if m.snap.SelectedAsset != nil {
		target = fmt.Sprintf(" %s %s", m.snap.SelectedAsset.Name, m.snap.SelectedTimeframe)
	}
	return fmt.Sprintf("%s %s%s...", m.spinner.View(), text(m.snap.Language, lblAnalysing), target)
}

func (m AppModel) renderResult() string {
	if m.snap.CurrentSignal == nil {
		return m.styles.Subtext.Render(text(m.snap.Language, lblNoHistory))
	}
	return m.styles.Border.Render(m.renderSignalCard(*m.snap.CurrentSignal))
}

func (m AppModel) renderSignalCard(sig domain.Signal) string {
	lang := m.snap.Language
	return strings.Join([]string{
		m.styles.Title.Render(fmt.Sprintf("%s %s · %s", text(lang, lblResult), sig.Asset.Name, sig.Timeframe)),
		fmt.Sprintf("%s: %s", text(lang, lblDirection), directionStyle(m.styles, sig.Direction).Render(string(sig.Direction))),
		fmt.Sprintf("%s: %d%%", text(lang, lblProbability), sig.Probability),
		statusStyle(m.styles, sig.Status).Render(string(sig.Status)),
		m.styles.Subtext.Render(sig.ID + " · " + sig.Timestamp.Format("15:04:05")),
	}, "\n")
}

func (m AppModel) historyRows() int {
	rows := m.height - 16
	if rows < 5 {
		rows = 5
	}
	return rows
}

func (m AppModel) helpLine() string {
	km := DefaultKeyMap
	var bindings []key.Binding
	switch m.snap.Screen {
	case domain.ScreenMain:
		bindings = []key.Binding{km.Enter}
	case domain.ScreenAssetSelection, domain.ScreenTimeframeSelection:
		bindings = []key.Binding{km.Up, km.Down, km.Enter, km.Back}
	case domain.ScreenResult:
		bindings = []key.Binding{km.Win, km.Loss, km.Again, km.Back}
	default:
		bindings = []key.Binding{km.Back}
	}
	bindings = append(bindings, km.Home, km.Calendar, km.Theme, km.Language, km.Upgrade)
	if m.snap.Tier != domain.TierStandard {
		bindings = append(bindings, km.Reset)
	}
	bindings = append(bindings, km.Quit)

	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, " · ")
}
