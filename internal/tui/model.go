package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lifecodex/internal/engine"
	"lifecodex/internal/ui"
)

type dashboardModel struct {
	ctx context.Context
	eng *engine.Engine

	width  int
	height int

	stats  []engine.Stat
	skills []engine.Skill
	goals  []engine.Goal

	selected int
	lastLog  string
	loading  bool
}

type loadedMsg struct {
	stats  []engine.Stat
	skills []engine.Skill
	goals  []engine.Goal
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

func newDashboardModel(ctx context.Context, eng *engine.Engine) dashboardModel {
	return dashboardModel{
		ctx:     ctx,
		eng:     eng,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m dashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{
			stats:  m.eng.Stats().All(),
			skills: m.eng.Skills().List(),
			goals:  m.eng.Goals().SortedByDeadline(),
		}
	}
}

func (m dashboardModel) toggleCmd(id string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.eng.Goals().ToggleComplete(m.ctx, id)
		return toggledMsg{res: res, err: err}
	}
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.stats = msg.stats
		m.skills = msg.skills
		m.goals = msg.goals
		if m.selected >= len(m.goals) {
			m.selected = len(m.goals) - 1
		}
		if m.selected < 0 {
			m.selected = 0
		}
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if msg.res == nil {
			m.lastLog = "Goal not found."
			return m, m.loadCmd()
		}
		verb := "Reopened"
		if msg.res.Completed {
			verb = "Completed"
		}
		m.lastLog = fmt.Sprintf("%s goal: %+d XP to %d skill(s)", verb, msg.res.XPDelta, len(msg.res.SkillIDs))
		if msg.res.Stat != "" {
			m.lastLog += fmt.Sprintf(", %+d %s", msg.res.XPDelta, msg.res.Stat)
		}
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.goals)-1 {
				m.selected++
			}
			return m, nil
		case "enter", " ":
			if m.selected < 0 || m.selected >= len(m.goals) {
				return m, nil
			}
			g := m.goals[m.selected]
			m.lastLog = fmt.Sprintf("Toggling %q…", g.Title)
			return m, m.toggleCmd(g.ID)
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.loading {
		return ui.Muted.Render("Loading…")
	}

	left := ui.Panel.Render(m.statsView() + "\n\n" + m.skillsView())
	right := ui.Panel.Render(m.goalsView())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)

	footer := ui.Muted.Render("↑/↓ move · space toggle · r refresh · q quit")
	log := ui.Muted.Render(m.lastLog)

	return ui.Heading(ui.IconSparkle, "Life Codex") + "\n" + body + "\n" + log + "\n" + footer + "\n"
}

func (m dashboardModel) statsView() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitle.Render("Stats") + "\n")
	for _, s := range m.stats {
		level := engine.StatLevel(s.XP)
		progress := engine.StatProgress(s.XP)
		fmt.Fprintf(&b, "%s %-13s lvl %-2d %s %d xp\n",
			ui.StatIcon(string(s.Name)), s.Name, level, ui.Bar(progress, 100, 10), s.XP)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) skillsView() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitle.Render("Skills") + "\n")
	if len(m.skills) == 0 {
		b.WriteString(ui.Muted.Render("No skills discovered yet."))
		return b.String()
	}
	for _, s := range m.skills {
		fmt.Fprintf(&b, "%s %-16s lvl %-2d %-12s %d/%d xp\n",
			ui.IconSkill, s.Name, s.Level, s.Title, s.XP, s.XPToNext)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m dashboardModel) goalsView() string {
	var b strings.Builder
	b.WriteString(ui.PanelTitle.Render("Goals") + "\n")
	if len(m.goals) == 0 {
		b.WriteString(ui.Muted.Render("No goals yet."))
		return b.String()
	}
	for i, g := range m.goals {
		line := fmt.Sprintf("%s %s", ui.CompletionIcon(g.IsComplete), g.Title)
		if g.Reward.Type == engine.RewardXP && g.Reward.Stat != "" {
			line += ui.Muted.Render(fmt.Sprintf("  (+%d %s)", g.Reward.Value, g.Reward.Stat))
		}
		if !g.Deadline.IsZero() {
			line += ui.Muted.Render("  due " + g.Deadline.Format("2006-01-02"))
		}
		if i == m.selected {
			line = ui.SelectedRow.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
