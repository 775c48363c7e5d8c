package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/shadows/internal/stage"
	"github.com/olivier-w/shadows/internal/util"
)

// Burst size and spark lifetime for the manual burst key.
const (
	manualBurst   = 6
	manualBurstMs = 600
)

// FlameModel presents the phoenix flame scene.
type FlameModel struct {
	flame    *stage.Flame
	scene    int
	interval time.Duration
	last     time.Time
	width    int
	height   int
	paused   bool
	speed    Speed
}

func NewFlame(f *stage.Flame, interval time.Duration) FlameModel {
	return FlameModel{flame: f, scene: nextSceneID(), interval: interval}
}

func (m FlameModel) Flame() *stage.Flame { return m.flame }

func (m FlameModel) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.scene, m.interval), tea.SetWindowTitle("shadows - flame"))
}

func (m FlameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m FlameModel) handleMsg(msg tea.Msg) (FlameModel, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.scene != m.scene {
			return m, nil
		}
		if !m.last.IsZero() && !m.paused {
			m.flame.OnTick(frameDelta(msg.at.Sub(m.last), m.speed))
		}
		m.last = msg.at
		return m, frameCmd(m.scene, m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vp := viewportFor(m.rasterSize())
		m.flame.OnViewportResize(vp.Width, vp.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case isQuit(msg):
			m.flame.Stop()
			return m, tea.Quit
		case isBack(msg):
			m.flame.Stop()
			return m, backCmd
		}
		switch msg.String() {
		case " ":
			m.paused = !m.paused
		case "f":
			m.speed = m.speed.Next()
		case "b":
			m.flame.Simulator().Burst(manualBurst, manualBurstMs)
		}
	}
	return m, nil
}

func (m FlameModel) rasterSize() (int, int) {
	cols, rows := m.width, m.height-chromeLines
	if cols <= 0 {
		cols = 100
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

func (m FlameModel) View() string {
	var b strings.Builder
	b.WriteString(flameTitleStyle.Render("phoenix"))
	if icon := m.speed.Icon(); icon != "" {
		b.WriteString("  " + statusStyle.Render(icon))
	}
	if m.paused {
		b.WriteString("  " + statusStyle.Render("paused"))
	}
	b.WriteString("\n\n")

	cols, rows := m.rasterSize()
	r := newRaster(cols, rows, viewportFor(cols, rows))
	for _, p := range m.flame.Poses() {
		r.particle(p)
	}
	b.WriteString(r.String())
	b.WriteString("\n\n")

	sim := m.flame.Simulator()
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d/%d alive", sim.Count(), sim.Limit())))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(util.Plural(sim.Spawned(), "particle") + " spawned"))
	b.WriteString("  ")
	b.WriteString(timeStyle.Render(util.FormatClock(m.flame.Now())))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText(false, false)))
	return b.String()
}
