package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lifecodex theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconSparkle = "✨"
	IconGoal    = "🎯"
	IconDone    = "✅"
	IconOpen    = "⬜"
	IconSkill   = "🛠️"
	IconScroll  = "📜"
	IconBolt    = "⚡"
	IconTrophy  = "🏆"
	IconError   = "🧨"
	IconBook    = "📖"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// Bar renders a simple progress bar like ███░░░░░░░.
func Bar(current, total, width int) string {
	if width <= 0 {
		width = 10
	}
	if total <= 0 {
		total = 1
	}
	filled := current * width / total
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return Good.Render(strings.Repeat("█", filled)) + Muted.Render(strings.Repeat("░", width-filled))
}

func StatIcon(stat string) string {
	switch strings.ToLower(stat) {
	case "intelligence":
		return "🧠"
	case "strength":
		return "💪"
	case "discipline":
		return "🧭"
	case "wisdom":
		return "🧘"
	case "charisma":
		return "💬"
	case "resilience":
		return "🛡️"
	default:
		return "❔"
	}
}

func CompletionIcon(done bool) string {
	if done {
		return IconDone
	}
	return IconOpen
}
