package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yanqian/ai-healthcoach/internal/domain/analyzer"
	"github.com/yanqian/ai-healthcoach/internal/domain/conversation"
	"github.com/yanqian/ai-healthcoach/internal/domain/dashboard"
	"github.com/yanqian/ai-healthcoach/internal/domain/mealplan"
	"github.com/yanqian/ai-healthcoach/internal/domain/navigation"
	"github.com/yanqian/ai-healthcoach/internal/domain/profile"
)

const headerHeight = 4

type activatedMsg struct {
	view navigation.View
	err  error
}

type opDoneMsg struct {
	op  string
	err error
}

// Model is the terminal shell around the view-states. It owns no domain data; every
// frame is rendered from view-state snapshots.
type Model struct {
	ctx    context.Context
	logger *slog.Logger

	router    *navigation.Router
	dashboard *dashboard.State
	profile   *profile.State
	mealPlan  *mealplan.State
	analyzer  *analyzer.State
	chat      *conversation.State

	input    textinput.Model
	spin     spinner.Model
	viewport viewport.Model
	cursor   int
	status   string
	width    int
}

// NewModel wires the shell to the view-states.
func NewModel(
	router *navigation.Router,
	dash *dashboard.State,
	prof *profile.State,
	plan *mealplan.State,
	an *analyzer.State,
	chat *conversation.State,
	logger *slog.Logger,
) *Model {
	in := textinput.New()
	in.CharLimit = 0
	in.Width = 60
	in.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))

	return &Model{
		ctx:       context.Background(),
		logger:    logger.With("component", "tui"),
		router:    router,
		dashboard: dash,
		profile:   prof,
		mealPlan:  plan,
		analyzer:  an,
		chat:      chat,
		input:     in,
		spin:      s,
		viewport:  viewport.New(80, 20),
	}
}

// Run drives the program until the user quits or ctx is cancelled.
func (m *Model) Run(ctx context.Context) error {
	m.ctx = ctx
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m *Model) Init() tea.Cmd {
	m.enterView(m.router.Active())
	m.refresh()
	return tea.Batch(m.spin.Tick, textinput.Blink, m.activate(m.router.Active(), m.router.Start()))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-4, 10)
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-3, 3)
	case tea.KeyMsg:
		cmd, handled := m.handleKey(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		if !handled {
			var inputCmd tea.Cmd
			m.input, inputCmd = m.input.Update(msg)
			cmds = append(cmds, inputCmd)
			if m.router.Active() == navigation.ViewChat {
				m.chat.SetInput(m.input.Value())
			}
		}
	case activatedMsg:
		if msg.err != nil {
			m.logger.Warn("view activation failed", "view", msg.view, "error", msg.err)
		}
		// The field input was filled before the load finished.
		if msg.view == navigation.ViewProfile && m.router.Active() == navigation.ViewProfile {
			m.loadFieldInput()
		}
	case opDoneMsg:
		m.finishOp(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.refresh()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit, true
	case "tab":
		return m.navigate(m.router.Next), true
	case "shift+tab":
		return m.navigate(m.router.Prev), true
	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return cmd, true
	}

	switch m.router.Active() {
	case navigation.ViewDashboard, navigation.ViewMealPlan:
		if msg.String() == "ctrl+r" {
			view := m.router.Active()
			hook := m.dashboard.Activate
			if view == navigation.ViewMealPlan {
				hook = m.mealPlan.Activate
			}
			return m.activate(view, hook), true
		}
		return nil, true
	case navigation.ViewProfile:
		return m.handleProfileKey(msg)
	case navigation.ViewAnalyze:
		if msg.String() == "enter" {
			return m.submitImage(), true
		}
	case navigation.ViewChat:
		if msg.String() == "enter" {
			return m.sendChat(), true
		}
	}
	return nil, false
}

func (m *Model) handleProfileKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "up":
		m.moveCursor(-1)
		return nil, true
	case "down":
		m.moveCursor(1)
		return nil, true
	case "enter":
		field := profile.Fields[m.cursor]
		if err := m.profile.Set(field.Key, m.input.Value()); err != nil {
			m.status = err.Error()
		} else {
			m.status = ""
			m.moveCursor(1)
		}
		return nil, true
	case "ctrl+s":
		if err := m.applyPendingField(); err != nil {
			m.status = err.Error()
			return nil, true
		}
		m.status = ""
		return m.runOp("save", m.profile.Save), true
	}
	return nil, false
}

// applyPendingField commits text typed into the current field but not yet confirmed.
func (m *Model) applyPendingField() error {
	field := profile.Fields[m.cursor]
	current, err := profile.Value(m.profile.Snapshot().Draft, field.Key)
	if err != nil {
		return err
	}
	if m.input.Value() == current {
		return nil
	}
	return m.profile.Set(field.Key, m.input.Value())
}

func (m *Model) moveCursor(delta int) {
	n := len(profile.Fields)
	m.cursor = (m.cursor + delta + n) % n
	m.loadFieldInput()
}

func (m *Model) loadFieldInput() {
	field := profile.Fields[m.cursor]
	value, _ := profile.Value(m.profile.Snapshot().Draft, field.Key)
	m.input.Prompt = field.Label + ": "
	m.input.SetValue(value)
	m.input.CursorEnd()
}

func (m *Model) submitImage() tea.Cmd {
	path := strings.TrimSpace(m.input.Value())
	if path != "" {
		if err := m.analyzer.SelectFile(path); err != nil {
			m.status = err.Error()
			return nil
		}
		m.input.SetValue("")
	}
	m.status = ""
	return m.runOp("analyze", m.analyzer.Submit)
}

func (m *Model) sendChat() tea.Cmd {
	exchange, ok := m.chat.Begin(m.input.Value())
	if !ok {
		return nil
	}
	m.input.SetValue("")
	return m.runOp("chat", exchange.Run)
}

func (m *Model) navigate(step func() func(ctx context.Context) error) tea.Cmd {
	activation := step()
	view := m.router.Active()
	m.status = ""
	m.enterView(view)
	return m.activate(view, activation)
}

func (m *Model) enterView(view navigation.View) {
	m.input.SetValue("")
	switch view {
	case navigation.ViewProfile:
		m.loadFieldInput()
	case navigation.ViewAnalyze:
		m.input.Prompt = "Image path: "
		m.input.Placeholder = "/path/to/meal.jpg"
	case navigation.ViewChat:
		m.input.Prompt = "You> "
		m.input.Placeholder = "Ask about your diet"
		m.input.SetValue(m.chat.Input())
		m.input.CursorEnd()
	default:
		m.input.Prompt = ""
		m.input.Placeholder = ""
	}
	m.viewport.GotoTop()
}

func (m *Model) activate(view navigation.View, fn func(ctx context.Context) error) tea.Cmd {
	if fn == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg {
		return activatedMsg{view: view, err: fn(ctx)}
	}
}

func (m *Model) runOp(op string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func (m *Model) finishOp(msg opDoneMsg) {
	switch {
	case msg.err == nil:
		if msg.op == "save" && m.router.Active() == navigation.ViewProfile {
			m.loadFieldInput()
		}
	case errors.Is(msg.err, analyzer.ErrNoFileSelected), errors.Is(msg.err, analyzer.ErrSubmitInFlight):
	case errors.Is(msg.err, profile.ErrSaveInFlight), errors.Is(msg.err, profile.ErrBusy):
		m.status = msg.err.Error()
	default:
		m.logger.Warn("operation failed", "op", msg.op, "error", msg.err)
	}
}

func (m *Model) refresh() {
	var lines []string
	switch m.router.Active() {
	case navigation.ViewDashboard:
		lines = DashboardLines(m.dashboard.Snapshot())
	case navigation.ViewProfile:
		lines = ProfileLines(m.profile.Snapshot(), m.cursor, m.profile.Issues())
	case navigation.ViewMealPlan:
		lines = MealPlanLines(m.mealPlan.Snapshot())
	case navigation.ViewAnalyze:
		rendered, err := m.analyzer.ResultJSON()
		if err != nil {
			rendered = err.Error()
		}
		lines = AnalyzerLines(m.analyzer.Snapshot(), rendered)
	case navigation.ViewChat:
		lines = TranscriptLines(m.chat.Snapshot())
	}
	m.viewport.SetContent(bodyStyle.Render(strings.Join(lines, "\n")))
	if m.router.Active() == navigation.ViewChat {
		m.viewport.GotoBottom()
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("AI Health Coach"))
	if m.busy() {
		b.WriteString(" " + m.spin.View())
	}
	b.WriteString("\n")
	b.WriteString(m.tabs())
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.router.Active() != navigation.ViewDashboard && m.router.Active() != navigation.ViewMealPlan {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m *Model) tabs() string {
	active := m.router.Active()
	parts := make([]string, 0, len(navigation.Views))
	for _, view := range navigation.Views {
		title := tabTitles[string(view)]
		if view == active {
			parts = append(parts, activeTabStyle.Render(title))
		} else {
			parts = append(parts, tabStyle.Render(title))
		}
	}
	return strings.Join(parts, "  ")
}

func (m *Model) busy() bool {
	switch m.router.Active() {
	case navigation.ViewDashboard:
		return m.dashboard.Snapshot().Status == dashboard.StatusLoading
	case navigation.ViewProfile:
		status := m.profile.Snapshot().Status
		return status == profile.StatusLoading || status == profile.StatusSaving
	case navigation.ViewMealPlan:
		return m.mealPlan.Snapshot().Status == mealplan.StatusLoading
	case navigation.ViewAnalyze:
		return m.analyzer.Snapshot().Status == analyzer.StatusSubmitting
	case navigation.ViewChat:
		return m.chat.Snapshot().Pending > 0
	}
	return false
}

func (m *Model) help() string {
	common := "tab/shift+tab switch view • pgup/pgdown scroll • esc quit"
	switch m.router.Active() {
	case navigation.ViewProfile:
		return "↑/↓ field • enter apply • ctrl+s save • " + common
	case navigation.ViewAnalyze:
		return "enter select path and analyze • " + common
	case navigation.ViewChat:
		return "enter send • " + common
	default:
		return "ctrl+r reload • " + common
	}
}
