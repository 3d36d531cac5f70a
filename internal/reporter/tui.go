package reporter

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ppiankov/rollcall/internal/check"
)

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// TUI styles
var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	failedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // red
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14")) // cyan
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // green
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))  // gray
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// maxLogLines bounds the scrollback of past checks shown in the TUI.
const maxLogLines = 12

type tickMsg time.Time

// CheckStartedMsg is sent when a check begins running.
type CheckStartedMsg struct{}

// CheckDoneMsg carries a finished check outcome into the TUI.
type CheckDoneMsg struct {
	Outcome *check.Outcome
}

// TUIModel is the Bubbletea model for rollcall watch mode.
type TUIModel struct {
	command []string
	trigger func() // called on 'r' to force a re-check
	cancel  func() // called on 'q' to stop the watch loop

	running bool
	last    *check.Outcome
	log     []*check.Outcome
	checks  int
	passes  int
	frame   int
	width   int
	height  int
}

// NewTUIModel creates a watch TUI model.
// trigger requests an immediate re-check; cancel stops the watch loop.
func NewTUIModel(command []string, trigger, cancel func()) TUIModel {
	return TUIModel{
		command: command,
		trigger: trigger,
		cancel:  cancel,
	}
}

// Init implements tea.Model.
func (m TUIModel) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case "r":
			if !m.running && m.trigger != nil {
				m.trigger()
			}
		}

	case CheckStartedMsg:
		m.running = true

	case CheckDoneMsg:
		m.running = false
		m.last = msg.Outcome
		m.checks++
		if msg.Outcome.Passed {
			m.passes++
		}
		m.log = append(m.log, msg.Outcome)
		if len(m.log) > maxLogLines {
			m.log = m.log[len(m.log)-maxLogLines:]
		}

	case tickMsg:
		m.frame++
		return m, tickCmd()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	return m, nil
}

// View implements tea.Model.
func (m TUIModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("rollcall watch") +
		dimStyle.Render("  "+strings.Join(m.command, " ")) + "\n\n")

	switch {
	case m.running:
		spinner := spinnerChars[m.frame%len(spinnerChars)]
		b.WriteString(runStyle.Render(spinner+" checking...") + "\n")
	case m.last == nil:
		b.WriteString(dimStyle.Render("waiting for first check") + "\n")
	case m.last.Passed:
		b.WriteString(doneStyle.Render("✓ Yes") +
			dimStyle.Render(fmt.Sprintf("  %s", m.last.Duration.Truncate(time.Millisecond))) + "\n")
	default:
		b.WriteString(failedStyle.Render("✗ No — "+m.last.Detail) +
			dimStyle.Render(fmt.Sprintf("  %s", m.last.Duration.Truncate(time.Millisecond))) + "\n")
	}

	if m.last != nil && !m.last.Passed && m.last.Report != nil {
		rep := m.last.Report
		if len(rep.Missing) > 0 {
			b.WriteString(failedStyle.Render("  missing: "+strings.Join(rep.Missing, ", ")) + "\n")
		}
		if len(rep.Duplicate) > 0 {
			b.WriteString(failedStyle.Render("  duplicated: "+strings.Join(rep.Duplicate, ", ")) + "\n")
		}
		if len(rep.Extra) > 0 {
			b.WriteString(failedStyle.Render("  unexpected: "+strings.Join(rep.Extra, ", ")) + "\n")
		}
		if n := len(rep.Malformed); n > 0 {
			b.WriteString(failedStyle.Render(fmt.Sprintf("  malformed lines: %d", n)) + "\n")
		}
	}

	if len(m.log) > 0 {
		b.WriteString("\n" + headerStyle.Render("recent") + "\n")
		for i := len(m.log) - 1; i >= 0; i-- {
			out := m.log[i]
			line := fmt.Sprintf("  %s %s (%s)",
				out.StartedAt.Format("15:04:05"),
				out.Answer(),
				out.Duration.Truncate(time.Millisecond))
			if out.Passed {
				b.WriteString(doneStyle.Render(line) + "\n")
			} else {
				b.WriteString(failedStyle.Render(line+" — "+out.Detail) + "\n")
			}
		}
	}

	b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("%d checks, %d passed", m.checks, m.passes)) + "\n")
	b.WriteString(helpStyle.Render("r re-check · q quit") + "\n")

	return b.String()
}
