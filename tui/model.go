package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"xtouch-bridge/theme"
)

// ErrCancelled is returned by Pick when the user quits without choosing
var ErrCancelled = errors.New("selection cancelled")

// Model is a single-choice list, used to pick MIDI ports
type Model struct {
	Title   string
	Options []string
	Theme   *theme.Theme

	cursor   int
	chosen   int
	quitting bool
}

func NewModel(title string, options []string, th *theme.Theme) Model {
	return Model{
		Title:   title,
		Options: options,
		Theme:   th,
		chosen:  -1,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch s := key.String(); s {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}

	case "j", "down":
		if m.cursor < len(m.Options)-1 {
			m.cursor++
		}

	case "enter", " ":
		if len(m.Options) > 0 {
			m.chosen = m.cursor
			m.quitting = true
			return m, tea.Quit
		}

	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		// jump to a port by its index
		if idx := int(s[0] - '0'); idx < len(m.Options) {
			m.cursor = idx
		}
	}

	return m, nil
}

// Chosen returns the selected index, or false if the picker was cancelled
func (m Model) Chosen() (int, bool) {
	return m.chosen, m.chosen >= 0
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	selStyle := lipgloss.NewStyle().Foreground(m.Theme.FG()).Background(m.Theme.Panel())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render(m.Title))
	out.WriteString("\n\n")

	if len(m.Options) == 0 {
		out.WriteString(dimStyle.Render("  no ports found"))
		out.WriteString("\n")
	}
	for i, opt := range m.Options {
		line := fmt.Sprintf("%2d  %s", i, opt)
		if i == m.cursor {
			out.WriteString(fmt.Sprintf("%c ", m.Theme.Symbols.Cursor))
			out.WriteString(selStyle.Render(line))
		} else {
			out.WriteString("  ")
			out.WriteString(line)
		}
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render("j/k:move  0-9:jump  enter:select  q:cancel"))
	return out.String()
}

// Pick shows the options and blocks until one is selected
func Pick(title string, options []string, th *theme.Theme) (int, error) {
	if len(options) == 0 {
		return -1, fmt.Errorf("%s: no options", title)
	}
	p := tea.NewProgram(NewModel(title, options, th), tea.WithOutput(os.Stderr))
	final, err := p.Run()
	if err != nil {
		return -1, err
	}
	idx, ok := final.(Model).Chosen()
	if !ok {
		return -1, ErrCancelled
	}
	return idx, nil
}
