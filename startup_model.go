package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/shadows/internal/ui"
)

type startupPhase uint8

const (
	phaseMenu startupPhase = iota
	phaseScene
)

// sceneEntry is one menu row. open builds a fresh scene each time it is picked.
type sceneEntry struct {
	name string
	hint string
	open func() (tea.Model, error)
}

type startupModel struct {
	scenes []sceneEntry
	cursor int
	phase  startupPhase
	active tea.Model
	errMsg string
	width  int
	height int
}

func newStartupModel(scenes []sceneEntry) startupModel {
	return startupModel{scenes: scenes, phase: phaseMenu}
}

func (m startupModel) Init() tea.Cmd {
	if m.active != nil {
		return m.active.Init()
	}
	return tea.SetWindowTitle("shadows")
}

// openScene switches to the named scene. The returned command starts it and
// replays the last known window size.
func (m startupModel) openScene(name string) (startupModel, tea.Cmd, error) {
	for i, s := range m.scenes {
		if s.name != name {
			continue
		}
		scene, err := s.open()
		if err != nil {
			return m, nil, err
		}
		m.cursor = i
		m.phase = phaseScene
		m.active = scene
		m.errMsg = ""

		cmds := []tea.Cmd{scene.Init()}
		if m.width > 0 || m.height > 0 {
			w, h := m.width, m.height
			cmds = append(cmds, func() tea.Msg {
				return tea.WindowSizeMsg{Width: w, Height: h}
			})
		}
		return m, tea.Batch(cmds...), nil
	}
	return m, nil, fmt.Errorf("unknown scene %q", name)
}

func (m startupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case ui.BackMsg:
		m.phase = phaseMenu
		m.active = nil
		return m, tea.SetWindowTitle("shadows")
	}

	if m.phase == phaseScene && m.active != nil {
		var cmd tea.Cmd
		m.active, cmd = m.active.Update(msg)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenes)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(m.scenes) == 0 {
			return m, nil
		}
		next, cmd, err := m.openScene(m.scenes[m.cursor].name)
		if err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		return next, cmd
	}
	return m, nil
}

func (m startupModel) View() string {
	if m.phase == phaseScene && m.active != nil {
		return m.active.View()
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(startupHeaderStyle.Render("shadows"))
	b.WriteString("\n\n")
	for i, s := range m.scenes {
		cursor := "  "
		style := startupStatusStyle
		if i == m.cursor {
			cursor = "> "
			style = startupSelectedStyle
		}
		b.WriteString("  " + cursor + style.Render(s.name))
		if s.hint != "" {
			b.WriteString("  " + startupHelpStyle.Render(s.hint))
		}
		b.WriteString("\n")
	}
	if m.errMsg != "" {
		b.WriteString("\n  " + startupErrorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n  ")
	b.WriteString(startupHelpStyle.Render("enter open  j/k move  q quit"))
	b.WriteString("\n")
	return b.String()
}

var (
	startupHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"})
	startupStatusStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})
	startupSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FFD700"))
	startupHelpStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
	startupErrorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#FF8080"})
)
