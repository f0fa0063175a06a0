package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/manav03panchal/chronos/internal/model"
)

// Styles for CLI output.
var (
	// Colors
	colorPrimary   = lipgloss.Color("#C5A059") // Gold
	colorSecondary = lipgloss.Color("#10B981") // Green
	colorMuted     = lipgloss.Color("#6B7280") // Gray
	colorWarning   = lipgloss.Color("#F59E0B") // Yellow
	colorError     = lipgloss.Color("#EF4444") // Red
	colorSuccess   = lipgloss.Color("#10B981") // Green

	// Styles
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorSuccess)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorWarning)

	styleError = lipgloss.NewStyle().
			Foreground(colorError)

	styleMuted = lipgloss.NewStyle().
			Foreground(colorMuted)

	styleBold = lipgloss.NewStyle().
			Bold(true)

	styleAccent = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	styleDone = lipgloss.NewStyle().
			Foreground(colorSecondary)

	styleTag = lipgloss.NewStyle().
			Foreground(colorPrimary)
)

// BarWidth is the width of attribute bars.
const BarWidth = 20

// CLIFormatter provides CLI-specific formatting.
type CLIFormatter struct {
	*Formatter
}

// NewCLIFormatter creates a new CLI formatter.
func NewCLIFormatter(f *Formatter) *CLIFormatter {
	return &CLIFormatter{Formatter: f}
}

func (c *CLIFormatter) render(s lipgloss.Style, text string) string {
	if c.IsColorEnabled() {
		return s.Render(text)
	}
	return text
}

// Title prints a title.
func (c *CLIFormatter) Title(text string) {
	c.Println(c.render(styleTitle, text))
}

// Success prints a success message.
func (c *CLIFormatter) Success(text string) {
	c.Println(c.render(styleSuccess, "✓ "+text))
}

// Warning prints a warning message.
func (c *CLIFormatter) Warning(text string) {
	c.Println(c.render(styleWarning, "⚠ "+text))
}

// Error prints an error message.
func (c *CLIFormatter) Error(text string) {
	c.Println(c.render(styleError, "✗ "+text))
}

// Muted prints muted text.
func (c *CLIFormatter) Muted(text string) {
	c.Println(c.render(styleMuted, text))
}

// ProgressBar creates a simple progress bar.
func ProgressBar(percentage float64, width int) string {
	if percentage > 100 {
		percentage = 100
	}
	if percentage < 0 {
		percentage = 0
	}

	filled := int(float64(width) * percentage / 100)
	empty := width - filled

	return strings.Repeat("█", filled) + strings.Repeat("░", empty)
}

// PrintAttributes prints one bar per attribute.
func (c *CLIFormatter) PrintAttributes(a model.CoreAttributes) {
	for _, attr := range a.Named() {
		c.Printf("  %-10s %s %4s\n",
			attr.Name,
			c.render(styleAccent, ProgressBar(attr.Value*100, BarWidth)),
			FormatPercent(attr.Value))
	}
}

// PrintAnalytics prints the self report.
func (c *CLIFormatter) PrintAnalytics(a model.Analytics) {
	c.Title("Attributes")
	c.PrintAttributes(a.Attributes)
	c.Println()
	c.Printf("  Mood stability  %s\n", c.render(styleBold, fmt.Sprintf("%.1f", a.Soul.MoodStability)))
	c.Printf("  Focus score     %s\n", c.render(styleBold, fmt.Sprint(a.Mind.FocusScore)))
	c.Printf("  Books read      %d\n", a.Mind.BooksRead)
}

// PrintDailyTasks prints the active daily tasks.
func (c *CLIFormatter) PrintDailyTasks(tasks []model.DailyTask) {
	if len(tasks) == 0 {
		c.Muted("No daily tasks.")
		c.Muted("Use 'chronos daily add <title>' to create one.")
		return
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = c.render(styleDone, "[✓]")
		}
		c.Printf("%s %s  %s  %s\n", box, t.Title,
			c.render(styleMuted, fmt.Sprintf("streak %d", t.Streak)),
			c.render(styleMuted, t.ID))
	}
}

// PrintHistory prints archived daily tasks.
func (c *CLIFormatter) PrintHistory(entries []model.DailyTaskHistoryEntry) {
	if len(entries) == 0 {
		c.Muted("No archived tasks.")
		return
	}
	rows := make([]TableRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, TableRow{Columns: []string{
			e.ID, e.Title, string(e.Status), fmt.Sprint(e.FinalStreak), FormatAgo(e.Timestamp, c.now()),
		}})
	}
	c.PrintTable([]string{"ID", "TITLE", "STATUS", "STREAK", "ARCHIVED"}, rows)
}

// PrintLog prints one journal entry.
func (c *CLIFormatter) PrintLog(e model.LogEntry) {
	marker := " "
	if e.IsHighlight {
		marker = c.render(styleAccent, "★")
	}
	c.Printf("%s %s %s  %s\n", marker, c.render(styleBold, e.Date), e.Time, c.render(styleMuted, e.ID))
	c.Printf("  %s\n", e.Content)

	var extras []string
	for _, t := range e.Tags {
		extras = append(extras, c.render(styleTag, t.Label))
	}
	if len(e.Images) > 0 {
		extras = append(extras, fmt.Sprintf("%d image(s)", len(e.Images)))
	}
	if e.HasVoice {
		extras = append(extras, "voice "+e.Duration)
	}
	if len(extras) > 0 {
		c.Printf("  %s\n", strings.Join(extras, "  "))
	}
}

// PrintLogPage prints a page of the journal.
func (c *CLIFormatter) PrintLogPage(p model.LogPage, page int) {
	if len(p.Data) == 0 {
		c.Muted("No log entries.")
		return
	}
	for i, e := range p.Data {
		if i > 0 {
			c.Println()
		}
		c.PrintLog(e)
	}
	if p.HasMore {
		c.Println()
		c.Muted(fmt.Sprintf("More entries: chronos log list --page %d", page+1))
	}
}

// PrintLetter prints the future letter as the caller is allowed to see it.
func (c *CLIFormatter) PrintLetter(l model.FutureLetter) {
	switch l.Status {
	case model.LetterNone, "":
		c.Muted("No letter sealed.")
		c.Muted("Use 'chronos letter seal <content> --on <date>' to write one.")
		return
	case model.LetterEncrypted:
		c.Printf("Letter %s\n", c.render(styleWarning, "sealed"))
	case model.LetterOpen:
		c.Printf("Letter %s\n", c.render(styleSuccess, "open"))
	}
	if !l.TargetDate.IsZero() {
		c.Printf("  Target:  %s (%s)\n", FormatDate(l.TargetDate), FormatRemaining(l.Remaining(c.now())))
	}
	if !l.CreatedAt.IsZero() {
		c.Printf("  Written: %s\n", FormatAgo(l.CreatedAt, c.now()))
	}
	c.Println()
	c.Println(l.Content)
}

// PrintNotifications prints the notification history.
func (c *CLIFormatter) PrintNotifications(ns []model.Notification) {
	if len(ns) == 0 {
		c.Muted("No notifications.")
		return
	}
	for _, n := range ns {
		icon := n.Icon()
		switch n.Type {
		case model.NotifySuccess:
			icon = c.render(styleSuccess, icon)
		case model.NotifyWarning:
			icon = c.render(styleWarning, icon)
		}
		c.Printf("%s %s  %s\n", icon, n.Message, c.render(styleMuted, FormatAgo(n.Timestamp, c.now())))
	}
}

// PrintMilestones prints the milestone list.
func (c *CLIFormatter) PrintMilestones(ms []model.Milestone) {
	if len(ms) == 0 {
		c.Muted("No milestones.")
		return
	}
	rows := make([]TableRow, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, TableRow{Columns: []string{m.ID, m.Title, m.Category, m.Date, string(m.Status)}})
	}
	c.PrintTable([]string{"ID", "TITLE", "CATEGORY", "YEAR", "STATUS"}, rows)
	c.Println()
	c.Muted(fmt.Sprintf("%d of %d completed", model.CountCompleted(ms), len(ms)))
}

// PrintSettings prints the time-allocation settings.
func (c *CLIFormatter) PrintSettings(s model.UserSettings) {
	c.Title("Settings")
	c.Printf("  Born          %s %s\n", s.BirthDate, s.BirthTime)
	c.Printf("  Expectancy    %d years (%s)\n", s.LifeExpectancy(), s.LifeExpectancyPreset)
	c.Printf("  Sleep today   %gh\n", s.TodaySleepTime)
	c.Printf("  Work today    %gh (%s-%s)\n", s.TodayWorkTime, s.WorkStart, s.WorkEnd)
	c.Printf("  Language      %s\n", s.Language)
	for _, a := range s.Anniversaries {
		c.Printf("  Anniversary   %s on %s\n", a.Name, a.Date)
	}
}

// PrintTimeMetrics prints life progress, the current cycles and the
// anniversary countdowns.
func (c *CLIFormatter) PrintTimeMetrics(m model.TimeMetrics) {
	c.Title("Life")
	c.Printf("  %s  %s\n",
		c.render(styleAccent, ProgressBar(m.LifeProgress, BarWidth)),
		c.render(styleBold, m.LifeProgressText()))
	c.Muted(fmt.Sprintf("  %d of %d years", m.YearsElapsed, m.LifeExpectancy))
	c.Println()
	for _, cycle := range []struct {
		name  string
		value int
	}{
		{"Year", m.YearProgress},
		{"Month", m.MonthProgress},
		{"Day", m.DayProgress},
		{"Awake", m.ActiveClarity},
	} {
		c.Printf("  %-10s %s %3d%%\n", cycle.name, ProgressBar(float64(cycle.value), BarWidth), cycle.value)
	}
	if len(m.Anniversaries) == 0 {
		return
	}
	c.Println()
	for _, a := range m.Anniversaries {
		c.Printf("  %-20s %s\n", a.Name, c.render(styleMuted, FormatCountdown(a.DaysLeft)))
	}
}

// FormatCountdown describes a whole number of days until a date.
func FormatCountdown(days int) string {
	switch {
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days == -1:
		return "yesterday"
	case days < 0:
		return humanize.Comma(int64(-days)) + " days ago"
	}
	return "in " + humanize.Comma(int64(days)) + " days"
}

// PrintProfile prints the displayed identity.
func (c *CLIFormatter) PrintProfile(p model.UserProfile) {
	c.Printf("%s\n", c.render(styleAccent, p.Name))
	if p.AvatarURL != "" {
		c.Muted("  avatar " + p.AvatarURL)
	}
}

// TableRow is one row of PrintTable.
type TableRow struct {
	Columns []string
}

// PrintTable prints a simple table.
func (c *CLIFormatter) PrintTable(headers []string, rows []TableRow) {
	if len(rows) == 0 {
		return
	}

	// Calculate column widths
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, col := range row.Columns {
			if i < len(widths) && lipgloss.Width(col) > widths[i] {
				widths[i] = lipgloss.Width(col)
			}
		}
	}

	pad := func(s string, w int) string {
		return s + strings.Repeat(" ", w-lipgloss.Width(s)) + "  "
	}

	var headerLine strings.Builder
	for i, h := range headers {
		headerLine.WriteString(pad(h, widths[i]))
	}
	c.Println(strings.TrimRight(c.render(styleBold, headerLine.String()), " "))

	var sep strings.Builder
	for _, w := range widths {
		sep.WriteString(strings.Repeat("─", w) + "  ")
	}
	c.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var rowLine strings.Builder
		for i, col := range row.Columns {
			if i < len(widths) {
				rowLine.WriteString(pad(col, widths[i]))
			}
		}
		c.Println(strings.TrimRight(rowLine.String(), " "))
	}
}
