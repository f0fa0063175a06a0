package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/manav03panchal/chronos/internal/model"
)

// AttributeSource computes the attribute block for display.
type AttributeSource interface {
	Peek(ctx context.Context) (model.CoreAttributes, error)
}

// DailySource lists and toggles the daily tasks.
type DailySource interface {
	List(ctx context.Context) ([]model.DailyTask, error)
	Toggle(ctx context.Context, id string) ([]model.DailyTask, error)
}

// ProgressSource derives life progress from the settings.
type ProgressSource interface {
	Metrics(ctx context.Context) (model.TimeMetrics, error)
}

// tickMsg is sent when the timer ticks.
type tickMsg time.Time

// refreshMsg is sent when data needs to be refreshed.
type refreshMsg struct{}

// notificationMsg carries one live notification from the ledger.
type notificationMsg model.Notification

// errMsg is sent when an error occurs.
type errMsg struct {
	err error
}

// DashboardModel is the main bubbletea model for the dashboard.
type DashboardModel struct {
	// Data
	attributes model.CoreAttributes
	tasks      []model.DailyTask
	metrics    *model.TimeMetrics
	refreshed  time.Time

	// Sources
	attrs         AttributeSource
	daily         DailySource
	progress      ProgressSource
	notifications <-chan model.Notification

	// UI state
	width    int
	height   int
	cursor   int
	err      error
	toast    *model.Notification
	toastExp time.Time

	// Configuration
	refreshInterval time.Duration
	toastDuration   time.Duration
	now             func() time.Time
}

// DashboardConfig holds configuration for the dashboard.
type DashboardConfig struct {
	Attributes AttributeSource
	Daily      DailySource
	// Progress may be nil, which hides the life panel.
	Progress ProgressSource
	// Notifications is usually a ledger subscription. It may be nil.
	Notifications   <-chan model.Notification
	RefreshInterval time.Duration
	ToastDuration   time.Duration
	Now             func() time.Time
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(config DashboardConfig) *DashboardModel {
	if config.RefreshInterval == 0 {
		config.RefreshInterval = time.Second
	}
	if config.ToastDuration == 0 {
		config.ToastDuration = 4 * time.Second
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &DashboardModel{
		attrs:           config.Attributes,
		daily:           config.Daily,
		progress:        config.Progress,
		notifications:   config.Notifications,
		refreshInterval: config.RefreshInterval,
		toastDuration:   config.ToastDuration,
		now:             config.Now,
	}
}

// Init initializes the model.
func (m *DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		m.refreshCmd(),
		m.listenCmd(),
	)
}

// Update handles messages and updates the model.
func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if m.toast != nil && m.now().After(m.toastExp) {
			m.toast = nil
		}
		m.loadAttributes()
		return m, m.tickCmd()

	case refreshMsg:
		m.loadData()
		return m, nil

	case notificationMsg:
		n := model.Notification(msg)
		m.toast = &n
		m.toastExp = m.now().Add(m.toastDuration)
		return m, m.listenCmd()

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

// handleKeyPress handles keyboard input.
func (m *DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case " ":
		m.toggleSelected()
		return m, nil

	case "r":
		m.loadData()
		return m, nil
	}

	return m, nil
}

// View renders the dashboard.
func (m *DashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	sections := []string{Header(m.now())}

	if m.err != nil {
		sections = append(sections, StyleError.Render(fmt.Sprintf("Error: %v", m.err)))
	}
	if m.toast != nil {
		toast := &ToastComponent{Notification: *m.toast}
		sections = append(sections, toast.View())
	}

	if m.metrics != nil {
		sections = append(sections, NewLifeComponent(*m.metrics, m.width).View())
	}
	attrs := NewAttributesComponent(m.attributes, m.width)
	attrs.Refreshed = m.refreshed
	attrs.Now = m.now()
	sections = append(sections, attrs.View())
	sections = append(sections, NewDailyComponent(m.tasks, m.cursor, m.width).View())
	sections = append(sections, HelpBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// Cursor returns the index of the selected task.
func (m *DashboardModel) Cursor() int {
	return m.cursor
}

// Tasks returns the tasks currently shown.
func (m *DashboardModel) Tasks() []model.DailyTask {
	return m.tasks
}

// Metrics returns the life progress shown, if any.
func (m *DashboardModel) Metrics() *model.TimeMetrics {
	return m.metrics
}

// Toast returns the notification being shown, if any.
func (m *DashboardModel) Toast() *model.Notification {
	return m.toast
}

// loadData loads attributes and tasks.
func (m *DashboardModel) loadData() {
	m.err = nil
	m.loadAttributes()
	if m.err != nil {
		return
	}

	tasks, err := m.daily.List(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.setTasks(tasks)
}

// loadAttributes peeks the attributes so a refresh never moves the baseline.
// Life progress is recomputed alongside.
func (m *DashboardModel) loadAttributes() {
	a, err := m.attrs.Peek(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.attributes = a
	m.refreshed = m.now()

	if m.progress == nil {
		return
	}
	metrics, err := m.progress.Metrics(context.Background())
	if err != nil {
		m.err = err
		return
	}
	m.metrics = &metrics
}

func (m *DashboardModel) toggleSelected() {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return
	}
	tasks, err := m.daily.Toggle(context.Background(), m.tasks[m.cursor].ID)
	if err != nil {
		m.err = err
		return
	}
	m.err = nil
	m.setTasks(tasks)
	// Toggling can grow spirit and mind.
	m.loadAttributes()
}

func (m *DashboardModel) setTasks(tasks []model.DailyTask) {
	m.tasks = tasks
	if m.cursor >= len(tasks) {
		m.cursor = len(tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// tickCmd returns a command that sends a tick message.
func (m *DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd returns a command that sends a refresh message.
func (m *DashboardModel) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		return refreshMsg{}
	}
}

// listenCmd waits for the next ledger notification. It returns nil once the
// subscription is closed.
func (m *DashboardModel) listenCmd() tea.Cmd {
	if m.notifications == nil {
		return nil
	}
	ch := m.notifications
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return notificationMsg(n)
	}
}

// Run starts the dashboard TUI.
func Run(config DashboardConfig) error {
	p := tea.NewProgram(NewDashboardModel(config), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
