// Terminal rendering for habits, stats, and quotes.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"habitchain/internal/model"
	"habitchain/internal/stats"
)

const defaultAccent = "#7D56F4"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	faintStyle  = lipgloss.NewStyle().Faint(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	quoteStyle  = lipgloss.NewStyle().Italic(true).PaddingLeft(2)
	authorStyle = lipgloss.NewStyle().Faint(true).PaddingLeft(4)
)

// accentStyle returns a style colored with the habit's accent, falling
// back to the default when the habit has none.
func accentStyle(h model.Habit) lipgloss.Style {
	color := h.Color
	if color == "" {
		color = defaultAccent
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// renderHabitLine renders one habit as a single list row.
func renderHabitLine(h model.Habit) string {
	check := "[ ]"
	if h.Completed {
		check = doneStyle.Render("[x]")
	}

	name := accentStyle(h).Render(h.Name)
	if h.Icon != "" {
		name = h.Icon + " " + name
	}

	progress := fmt.Sprintf("%d/%d %s", h.Progress, h.Goal, h.Unit)
	line := fmt.Sprintf("%s %s  %s", check, name, faintStyle.Render(progress))
	if h.Category != "" {
		line += faintStyle.Render("  #" + h.Category)
	}
	return line
}

func renderHabitList(date time.Time, habits []model.Habit) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Habits for " + date.Format("Mon, Jan 2 2006")))
	b.WriteString("\n")
	for _, h := range habits {
		b.WriteString(fmt.Sprintf("%3d  %s\n", h.ID, renderHabitLine(h)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderHabitDetail(h model.Habit) string {
	var b strings.Builder

	name := h.Name
	if h.Icon != "" {
		name = h.Icon + " " + name
	}
	b.WriteString(titleStyle.Render(name))
	b.WriteString("\n")

	rows := []struct{ label, value string }{
		{"Category", h.Category},
		{"Goal", fmt.Sprintf("%d %s", h.Goal, h.Unit)},
		{"Frequency", string(h.Frequency)},
		{"Tracking days", strings.Join(h.TrackingDays, ", ")},
		{"Reminders", strings.Join(h.Reminders, ", ")},
		{"Reminder message", h.ReminderMessage},
		{"Progress today", fmt.Sprintf("%d/%d", h.Progress, h.Goal)},
		{"Created", h.CreatedAt.Format("2006-01-02")},
	}
	for _, row := range rows {
		if row.value == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("  %-17s %s\n", faintStyle.Render(row.label), row.value))
	}

	if h.Completed {
		b.WriteString(doneStyle.Render("  Completed today"))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderProgressLine shows a habit's progress after a track command,
// with a simple bar scaled to the goal.
func renderProgressLine(h model.Habit) string {
	const width = 20
	filled := 0
	if h.Goal > 0 {
		filled = h.Progress * width / h.Goal
	}
	bar := accentStyle(h).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", width-filled))

	line := fmt.Sprintf("%s %s %d/%d %s", h.Name, bar, h.Progress, h.Goal, h.Unit)
	if h.Completed {
		line += " " + doneStyle.Render("✓")
	}
	return line
}

// renderStats shows the Monday-first weekly series as a bar chart plus
// today's rollup.
func renderStats(weekly []stats.DayCount, today stats.TodaySnapshot) string {
	max := 0
	for _, d := range weekly {
		if d.Completed > max {
			max = d.Completed
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Last 7 days"))
	b.WriteString("\n")
	for _, d := range weekly {
		bar := ""
		if max > 0 {
			bar = strings.Repeat("█", d.Completed*20/max)
		}
		b.WriteString(fmt.Sprintf("  %s %s %d\n", faintStyle.Render(d.Day), doneStyle.Render(bar), d.Completed))
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Today"))
	b.WriteString(fmt.Sprintf("\n  %d started, %d completed, %d to go", today.Started, today.Completed, today.NotDone))
	return b.String()
}

func renderQuote(q model.Quote) string {
	return quoteStyle.Render("“"+q.Text+"”") + "\n" + authorStyle.Render("— "+q.Author)
}
