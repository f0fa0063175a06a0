package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/manav03panchal/chronos/internal/model"
)

// AttributesComponent displays the six attribute bars.
type AttributesComponent struct {
	Attributes model.CoreAttributes
	Width      int
	// Refreshed is when the values were last computed.
	Refreshed time.Time
	Now       time.Time
}

// NewAttributesComponent creates a new attributes component.
func NewAttributesComponent(a model.CoreAttributes, width int) *AttributesComponent {
	return &AttributesComponent{Attributes: a, Width: width}
}

// View renders the attributes component.
func (ac *AttributesComponent) View() string {
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Attributes"))
	content.WriteString("\n")

	barWidth := ac.Width - 30
	if barWidth < 10 {
		barWidth = 10
	}
	for i, attr := range ac.Attributes.Named() {
		if i > 0 {
			content.WriteString("\n")
		}
		label := StyleLabel.Render(fmt.Sprintf("%-10s", strings.ToUpper(attr.Name)))
		pct := attr.Value * 100
		content.WriteString(label)
		content.WriteString(" ")
		content.WriteString(ProgressBar(pct, barWidth))
		content.WriteString(" ")
		content.WriteString(StyleValue.Render(fmt.Sprintf("%3.0f%%", pct)))
	}

	if !ac.Refreshed.IsZero() && !ac.Now.IsZero() {
		content.WriteString("\n\n")
		content.WriteString(StyleSubtitle.Render("Refreshed " + humanize.RelTime(ac.Refreshed, ac.Now, "ago", "from now")))
	}

	return StyleBox.Width(boxWidth(ac.Width)).Render(content.String())
}

// LifeComponent shows life progress and the year, month and day cycles.
type LifeComponent struct {
	Metrics model.TimeMetrics
	Width   int
}

// NewLifeComponent creates a new life progress component.
func NewLifeComponent(m model.TimeMetrics, width int) *LifeComponent {
	return &LifeComponent{Metrics: m, Width: width}
}

// View renders the life progress component.
func (lc *LifeComponent) View() string {
	m := lc.Metrics
	var content strings.Builder
	content.WriteString(StyleTitle.Render("Life  " + m.LifeProgressText()))
	content.WriteString("  ")
	content.WriteString(StyleSubtitle.Render(fmt.Sprintf("%d of %d years", m.YearsElapsed, m.LifeExpectancy)))
	content.WriteString("\n")

	barWidth := max(lc.Width-30, 10)
	content.WriteString(ProgressBar(m.LifeProgress, barWidth+14))
	for _, cycle := range []struct {
		name  string
		value int
	}{
		{"YEAR", m.YearProgress},
		{"MONTH", m.MonthProgress},
		{"DAY", m.DayProgress},
	} {
		content.WriteString("\n")
		content.WriteString(StyleLabel.Render(fmt.Sprintf("%-10s", cycle.name)))
		content.WriteString(" ")
		content.WriteString(ProgressBar(float64(cycle.value), barWidth))
		content.WriteString(" ")
		content.WriteString(StyleValue.Render(fmt.Sprintf("%3d%%", cycle.value)))
	}

	for _, a := range m.Anniversaries {
		if a.DaysLeft < 0 {
			continue
		}
		content.WriteString("\n")
		content.WriteString(StyleMuted.Render(fmt.Sprintf("%s in %s days", a.Name, humanize.Comma(int64(a.DaysLeft)))))
	}

	return StyleBox.Width(boxWidth(lc.Width)).Render(content.String())
}

// DailyComponent lists today's daily tasks with a cursor.
type DailyComponent struct {
	Tasks  []model.DailyTask
	Cursor int
	Width  int
}

// NewDailyComponent creates a new daily tasks component.
func NewDailyComponent(tasks []model.DailyTask, cursor, width int) *DailyComponent {
	return &DailyComponent{Tasks: tasks, Cursor: cursor, Width: width}
}

// View renders the daily tasks component.
func (dc *DailyComponent) View() string {
	var content strings.Builder

	done := 0
	for _, t := range dc.Tasks {
		if t.Completed {
			done++
		}
	}
	content.WriteString(StyleTitle.Render(fmt.Sprintf("Daily Tasks  %d/%d", done, len(dc.Tasks))))
	content.WriteString("\n")

	if len(dc.Tasks) == 0 {
		content.WriteString(StyleMuted.Render("No daily tasks. Add one with 'chronos daily add'"))
	}
	for i, t := range dc.Tasks {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString(dc.renderTask(i, t))
	}

	return StyleBox.Width(boxWidth(dc.Width)).Render(content.String())
}

func (dc *DailyComponent) renderTask(i int, t model.DailyTask) string {
	pointer := "  "
	if i == dc.Cursor {
		pointer = StyleCursor.Render("> ")
	}
	check := "[ ]"
	title := t.Title
	if t.Completed {
		check = StyleDone.Render("[✓]")
		title = StyleDone.Render(title)
	}
	line := pointer + check + " " + title
	if t.Streak > 0 {
		line += "  " + StyleSubtitle.Render(fmt.Sprintf("streak %d", t.Streak))
	}
	return line
}

// ToastComponent shows the latest notification until it expires.
type ToastComponent struct {
	Notification model.Notification
}

// View renders the toast.
func (tc *ToastComponent) View() string {
	style := StyleSubtitle
	switch tc.Notification.Type {
	case model.NotifySuccess:
		style = StyleSuccess
	case model.NotifyWarning:
		style = StyleWarning
	}
	body := style.Render(tc.Notification.Icon() + " " + tc.Notification.Message)
	return StyleToastBox.Render(body)
}

// HelpBar renders the help bar at the bottom.
func HelpBar() string {
	keys := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "move"},
		{"space", "toggle"},
		{"r", "refresh"},
		{"q", "quit"},
	}

	var parts []string
	for _, k := range keys {
		part := StyleHelpKey.Render(k.key) + " " + StyleHelpDesc.Render(k.desc)
		parts = append(parts, part)
	}

	return StyleHelp.Render(strings.Join(parts, "  •  "))
}

// Header renders the dashboard title line.
func Header(now time.Time) string {
	title := StyleTitle.Render("Chronos")
	ts := StyleSubtitle.Render(now.Format("Mon Jan 2, 15:04:05"))
	return lipgloss.JoinHorizontal(lipgloss.Top, title, "  ", ts) + "\n"
}

func boxWidth(width int) int {
	if width < 24 {
		return 20
	}
	return width - 4
}
