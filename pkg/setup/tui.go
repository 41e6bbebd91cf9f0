package setup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	salmonPink = lipgloss.Color("#FFB3BA")
	mintGreen  = lipgloss.Color("#A8E6CF")
	mutedGray  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(mintGreen)

	pendingStyle = lipgloss.NewStyle().
			Foreground(mutedGray)

	instructionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(salmonPink).
				Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(mutedGray).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(salmonPink).
			Bold(true)
)

// navigatedMsg reports that the browser finished loading a step's page.
type navigatedMsg struct {
	step int
	err  error
}

type model struct {
	steps   []Step
	nav     Navigator
	current int
	loading bool
	spinner spinner.Model

	done    bool
	aborted bool
	err     error
}

func newModel(nav Navigator, steps []Step) model {
	return model{
		steps:   steps,
		nav:     nav,
		loading: len(steps) > 0,
		done:    len(steps) == 0,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(salmonPink)),
		),
	}
}

func (m model) navigate() tea.Cmd {
	i := m.current
	url := m.steps[i].URL
	nav := m.nav
	return func() tea.Msg {
		debugLog.Infof("Opening %s", url)
		return navigatedMsg{step: i, err: nav.Navigate(url)}
	}
}

func (m model) Init() tea.Cmd {
	if m.done {
		return tea.Quit
	}
	return tea.Batch(m.spinner.Tick, m.navigate())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case navigatedMsg:
		if msg.step != m.current {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.err = fmt.Errorf("failed to open %s: %w", m.steps[msg.step].URL, msg.err)
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.aborted = true
			return m, tea.Quit
		case "enter":
			if m.loading || m.done {
				return m, nil
			}
			m.current++
			if m.current >= len(m.steps) {
				m.done = true
				return m, tea.Quit
			}
			m.loading = true
			return m, m.navigate()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("sapweb setup"))
	b.WriteString("\n\n")

	for i, step := range m.steps {
		switch {
		case i < m.current || m.done:
			b.WriteString(doneStyle.Render("✓ " + step.Title))
		case i == m.current && m.loading:
			b.WriteString(m.spinner.View() + " " + step.Title)
		case i == m.current:
			b.WriteString(titleStyle.Render("▶ " + step.Title))
		default:
			b.WriteString(pendingStyle.Render("· " + step.Title))
		}
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}
	if m.done {
		b.WriteString("\n")
		b.WriteString(doneStyle.Render("Profile ready."))
		b.WriteString("\n")
		return b.String()
	}

	if !m.loading && !m.aborted {
		b.WriteString("\n")
		b.WriteString(instructionStyle.Render(m.steps[m.current].Instructions))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q abort"))
		b.WriteString("\n")
	}
	return b.String()
}

// Run shows the steps one at a time, opening each step's page in the
// browser and waiting for the user to press enter. It returns ErrAborted
// when the user quits early.
func Run(ctx context.Context, nav Navigator, steps []Step, in io.Reader, out io.Writer) error {
	var opts []tea.ProgramOption
	opts = append(opts, tea.WithContext(ctx))
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(newModel(nav, steps), opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, tea.ErrProgramKilled) {
			return ErrAborted
		}
		return fmt.Errorf("setup interface failed: %w", err)
	}

	return result(final.(model))
}

func result(m model) error {
	switch {
	case m.err != nil:
		return m.err
	case m.aborted || !m.done:
		return ErrAborted
	default:
		return nil
	}
}
