package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"

	"github.com/runhub/runhub/internal/chat"
	"github.com/runhub/runhub/internal/core/activity"
	"github.com/runhub/runhub/internal/core/config"
	"github.com/runhub/runhub/internal/core/metrics"
	"github.com/runhub/runhub/internal/runhub"
)

// ViewType identifies which dashboard tab is shown.
type ViewType int

const (
	ViewRuns ViewType = iota
	ViewWeekly
	ViewBadges
	ViewHeatmap
	ViewChat
	viewCount
)

func (v ViewType) String() string {
	switch v {
	case ViewRuns:
		return "Runs"
	case ViewWeekly:
		return "Weekly"
	case ViewBadges:
		return "Badges"
	case ViewHeatmap:
		return "Heatmap"
	case ViewChat:
		return "Chat"
	}
	return "?"
}

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// Model is the main Bubble Tea model for the dashboard.
type Model struct {
	cfg     *config.Config
	service *runhub.Service
	chat    *chat.Session

	spinner  spinner.Model
	input    textinput.Model
	renderer *glamour.TermRenderer

	activeView ViewType
	page       int
	badges     []activity.Badge
	changes    activity.Changes
	synced     bool
	width      int
	height     int
	err        error
	quitting   bool
}

// activitiesLoadedMsg is sent when the initial fetch settles.
type activitiesLoadedMsg struct {
	err error
}

// refreshCompleteMsg is sent when a resync settles.
type refreshCompleteMsg struct {
	changes activity.Changes
	err     error
}

// athleteLoadedMsg is sent when the profile fetch settles.
type athleteLoadedMsg struct{}

// badgesLoadedMsg is sent when badges arrive.
type badgesLoadedMsg struct {
	badges []activity.Badge
	err    error
}

// chatReplyMsg is sent when the assistant answers (or doesn't).
type chatReplyMsg struct {
	reply string
	err   error
}

// New creates a new TUI model.
func New(service *runhub.Service, cfg *config.Config) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	input := textinput.New()
	input.Placeholder = "Ask about your running..."
	input.CharLimit = 500
	input.Prompt = "> "

	return Model{
		cfg:        cfg,
		service:    service,
		chat:       chat.NewSession(log.Logger),
		spinner:    s,
		input:      input,
		activeView: ViewRuns,
		page:       1,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.loadActivities(),
		m.loadAthlete(),
		m.loadBadges(),
		m.spinner.Tick,
	)
}

// loadActivities returns a command that fetches the full collection.
func (m Model) loadActivities() tea.Cmd {
	return func() tea.Msg {
		err := m.service.FetchActivities(context.Background())
		return activitiesLoadedMsg{err: err}
	}
}

// refresh returns a command that asks the backend to resync with Strava.
func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		changes, err := m.service.RefreshActivities(context.Background())
		return refreshCompleteMsg{changes: changes, err: err}
	}
}

func (m Model) loadAthlete() tea.Cmd {
	return func() tea.Msg {
		_ = m.service.FetchAthlete(context.Background())
		return athleteLoadedMsg{}
	}
}

func (m Model) loadBadges() tea.Cmd {
	return func() tea.Msg {
		badges, err := m.service.Badges(context.Background())
		return badgesLoadedMsg{badges: badges, err: err}
	}
}

func (m Model) sendChat(text string) tea.Cmd {
	return func() tea.Msg {
		reply, err := m.service.Chat(context.Background(), text)
		return chatReplyMsg{reply: reply, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if w := msg.Width - 6; w > 10 {
			m.input.Width = w
		}

		wrap := msg.Width - 4
		if wrap > 100 {
			wrap = 100
		}
		if wrap > 10 {
			renderer, err := glamour.NewTermRenderer(
				glamour.WithStandardStyle("tokyo-night"),
				glamour.WithWordWrap(wrap),
			)
			if err == nil {
				m.renderer = renderer
			}
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case activitiesLoadedMsg:
		m.synced = true
		m.err = nil
		if msg.err != nil && !errors.Is(msg.err, runhub.ErrNotConnected) {
			m.err = msg.err
		}
		m.page = m.clampPage(m.page)
		return m, nil

	case refreshCompleteMsg:
		m.err = nil
		if msg.err != nil && !errors.Is(msg.err, runhub.ErrNotConnected) {
			m.err = msg.err
		}
		m.changes = msg.changes
		m.page = m.clampPage(m.page)
		return m, nil

	case athleteLoadedMsg:
		return m, nil

	case badgesLoadedMsg:
		if msg.err == nil {
			m.badges = msg.badges
		}
		return m, nil

	case chatReplyMsg:
		if msg.err != nil {
			m.chat.Fail(msg.err)
		} else {
			m.chat.Resolve(msg.reply)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case "tab":
		return m.switchView((m.activeView + 1) % viewCount), nil

	case "shift+tab":
		return m.switchView((m.activeView + viewCount - 1) % viewCount), nil
	}

	if m.activeView == ViewChat {
		return m.handleChatKey(msg)
	}

	switch key {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit

	case "r":
		return m, m.refresh()

	case "left", "h":
		if m.activeView == ViewRuns {
			m.page = m.clampPage(m.page - 1)
		}
		return m, nil

	case "right", "l":
		if m.activeView == ViewRuns {
			m.page = m.clampPage(m.page + 1)
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m.switchView(ViewRuns), nil

	case "ctrl+l":
		m.chat.Clear()
		m.input.Reset()
		return m, nil

	case keyEnter:
		text := strings.TrimSpace(m.input.Value())
		if err := m.chat.Send(text); err != nil {
			// Empty input, a pending reply, or a full conversation; the
			// transcript footer already explains the latter two.
			return m, nil
		}
		m.input.Reset()
		return m, m.sendChat(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) switchView(v ViewType) Model {
	m.activeView = v
	if v == ViewChat {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

func (m Model) clampPage(page int) int {
	snap := m.service.Snapshot()
	return metrics.ClampPage(page, metrics.TotalPages(len(snap.Activities), m.cfg.PageSize))
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(bannerStyle.Render(banner))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	snap := m.service.Snapshot()

	switch {
	case !snap.Authorized && snap.Collection != runhub.CollectionPopulated && m.synced:
		b.WriteString(m.renderConnectHint())
	case snap.Loading && snap.Collection == runhub.CollectionUnloaded:
		b.WriteString("  " + m.spinner.View() + subtleStyle.Render(" loading your runs..."))
	default:
		b.WriteString(m.renderActiveView(snap))
	}

	b.WriteString("\n\n")
	b.WriteString(m.renderStatus(snap))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.helpLine()))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, int(viewCount))
	for v := ViewType(0); v < viewCount; v++ {
		style := tabInactiveStyle
		if v == m.activeView {
			style = tabActiveStyle
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	return " " + strings.Join(tabs, subtleStyle.Render("•"))
}

func (m Model) renderActiveView(snap runhub.Snapshot) string {
	switch m.activeView {
	case ViewRuns:
		return m.renderRuns(snap)
	case ViewWeekly:
		return m.renderWeekly(snap)
	case ViewBadges:
		return m.renderBadges()
	case ViewHeatmap:
		return m.renderHeatmap(snap)
	case ViewChat:
		return m.renderChat()
	}
	return ""
}

func (m Model) renderConnectHint() string {
	lines := []string{
		"  " + textStyle.Render("Not connected to Strava."),
		"",
		"  " + subtleStyle.Render("Run 'runhub connect' in another terminal, then press r."),
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderStatus(snap runhub.Snapshot) string {
	switch {
	case m.err != nil:
		return "  " + errorStyle.Render("✘ "+m.err.Error())
	case snap.Refreshing:
		return "  " + m.spinner.View() + subtleStyle.Render(" syncing with Strava...")
	case m.changes != (activity.Changes{}):
		return "  " + goodStyle.Render("✔ synced") + subtleStyle.Render(
			formatChanges(m.changes))
	}
	return ""
}

func (m Model) helpLine() string {
	if m.activeView == ViewChat {
		return "enter send • ctrl+l clear • esc back • tab switch view"
	}
	return "tab switch view • r sync • ←/→ page • q quit"
}

func formatChanges(c activity.Changes) string {
	parts := []string{}
	if c.Added > 0 {
		parts = append(parts, plural(c.Added, "new run"))
	}
	if c.Updated > 0 {
		parts = append(parts, plural(c.Updated, "update"))
	}
	if c.Deleted > 0 {
		parts = append(parts, plural(c.Deleted, "removal"))
	}
	if len(parts) == 0 {
		return ""
	}
	return " — " + strings.Join(parts, ", ")
}
