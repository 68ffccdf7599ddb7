package status

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	guarddto "humanguard/internal/modules/guard/dto"
	"humanguard/internal/ui/theme"
)

// RefreshInterval is how often the live view re-evaluates the guard.
const RefreshInterval = time.Second

type StatusPort interface {
	Status(ctx context.Context) (guarddto.ReportOutput, error)
}

type reportMsg struct {
	report guarddto.ReportOutput
	err    error
}

type tickMsg time.Time

type Model struct {
	port   StatusPort
	report guarddto.ReportOutput
	err    error
	loaded bool
	width  int
	height int
}

func New(port StatusPort) Model {
	return Model{port: port}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			return m, m.loadCmd()
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case reportMsg:
		m.report, m.err, m.loaded = msg.report, msg.err, true
		return m, tick()
	case tickMsg:
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) View() string {
	if !m.loaded {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			theme.Muted.Render("Evaluating guard…"))
	}
	if m.err != nil {
		return theme.Blocked.Render("error: ") + m.err.Error() + "\n"
	}
	body := Render(m.report, time.Now())
	return body + "\n" + theme.Muted.Render("r: refresh  q: quit") + "\n"
}

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		report, err := m.port.Status(context.Background())
		return reportMsg{report: report, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(RefreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Render draws a report as a bordered panel. Countdowns are measured from
// now so the live view can redraw without re-projecting.
func Render(report guarddto.ReportOutput, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("human-guard") + "  ")
	sb.WriteString(theme.Outcome(string(report.Outcome)).Render(strings.ToUpper(string(report.Outcome))) + "\n\n")
	if !report.ConfigFound {
		sb.WriteString(theme.Muted.Render("no configuration found, guard is passing everything through"))
		return theme.Pane.Render(sb.String())
	}

	row := func(label, value string) {
		sb.WriteString(theme.Label.Render(fmt.Sprintf("%-12s", label)) + value + "\n")
	}
	row("config", report.ConfigPath)
	row("local time", report.At.Format("Mon 15:04"))
	row("enforcement", report.Enforcement)
	schedule := report.Status
	if report.Reason != "" {
		schedule += " (" + report.Reason
		if report.PeriodName != "" {
			schedule += ": " + report.PeriodName
		}
		schedule += ")"
	}
	row("schedule", schedule)
	if report.Break != nil {
		if report.Break.OK {
			row("break", "rested")
		} else {
			row("break", fmt.Sprintf("%d min still owed", report.Break.MinutesLeft))
		}
	}
	if snap := report.Snapshot; snap != nil {
		if snap.WindDownEpoch != 0 {
			row("wind-down", countdown(time.Unix(snap.WindDownEpoch, 0), now))
		}
		row("day ends", countdown(time.Unix(snap.EndAllowedEpoch, 0), now))
		for _, period := range snap.BlockedPeriods {
			start, end := time.Unix(period.StartEpoch, 0), time.Unix(period.EndEpoch, 0)
			if !now.Before(start) && now.Before(end) {
				row(period.Name, "now, "+countdown(end, now)+" left")
				continue
			}
			row(period.Name, countdown(start, now))
		}
	}
	if report.Message != "" {
		sb.WriteString("\n" + theme.Outcome(string(report.Outcome)).Render(report.Message) + "\n")
	}
	return theme.Pane.Render(strings.TrimRight(sb.String(), "\n"))
}

func countdown(at, now time.Time) string {
	d := at.Sub(now).Round(time.Minute)
	if d <= 0 {
		return theme.Muted.Render("passed")
	}
	return fmt.Sprintf("in %dh%02dm", int(d.Hours()), int(d.Minutes())%60)
}
