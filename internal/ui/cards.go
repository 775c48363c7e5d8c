package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/shadows/internal/scheduler"
	"github.com/olivier-w/shadows/internal/stage"
	"github.com/olivier-w/shadows/internal/util"
)

// Lines around the raster: title, blank, blank, counts, status, help.
const chromeLines = 6

// maxFrameGap caps the delta handed to a scene after a stall.
const maxFrameGap = 250 * time.Millisecond

// Sounder plays the landing cue.
type Sounder interface {
	Play()
}

// landingFeed is shared between the model copies and the OnLand hook.
type landingFeed struct {
	cue      Sounder
	sound    SoundMode
	last     string
	landings int
}

func (f *landingFeed) land(t *scheduler.Transfer) {
	f.landings++
	id := -1
	if t.Card != nil {
		id = t.Card.ID()
	}
	f.last = fmt.Sprintf("card %d  %d -> %d", id, t.From, t.To)
	if t.Flight != nil && t.Flight.TimedOut() {
		f.last += " (late)"
	}
	if f.cue != nil && f.sound == SoundOn {
		f.cue.Play()
	}
}

// CardsModel presents the card redistribution scene.
type CardsModel struct {
	stage    *stage.Stage
	scene    int
	interval time.Duration
	last     time.Time
	width    int
	height   int
	paused   bool
	speed    Speed
	notice   string
	noticeAt int
	feed     *landingFeed
	spinner  spinner.Model
	progress progress.Model
}

// NewCards wraps st. cue may be nil, which hides the sound toggle.
func NewCards(st *stage.Stage, interval time.Duration, cue Sounder) CardsModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	p := progress.New(
		progress.WithScaledGradient("#9A60FF", "#FFD700"),
		progress.WithoutPercentage(),
	)
	p.Width = 24

	feed := &landingFeed{cue: cue}
	if cue != nil {
		feed.sound = SoundOn
	}
	st.OnLand(feed.land)

	return CardsModel{
		stage:    st,
		scene:    nextSceneID(),
		interval: interval,
		feed:     feed,
		spinner:  s,
		progress: p,
	}
}

// Stage returns the wrapped scene.
func (m CardsModel) Stage() *stage.Stage { return m.stage }

func (m CardsModel) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.scene, m.interval), m.spinner.Tick, tea.SetWindowTitle("shadows - cards"))
}

func (m CardsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return m.handleMsg(msg)
}

func (m CardsModel) handleMsg(msg tea.Msg) (CardsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if msg.scene != m.scene {
			return m, nil
		}
		if !m.last.IsZero() && !m.paused {
			m.stage.OnTick(frameDelta(msg.at.Sub(m.last), m.speed))
		}
		m.last = msg.at
		return m, frameCmd(m.scene, m.interval)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vp := viewportFor(m.rasterSize())
		m.stage.OnViewportResize(vp.Width, vp.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case isQuit(msg):
			m.stage.Stop()
			return m, tea.Quit
		case isBack(msg):
			m.stage.Stop()
			return m, backCmd
		}
		switch msg.String() {
		case " ":
			m.paused = !m.paused
		case "f":
			m.speed = m.speed.Next()
		case "m":
			out := m.stage.Scheduler().PerformTransfer(m.stage.Now())
			m.notice = out.String()
			m.noticeAt = m.feed.landings
		case "s":
			if m.feed.cue != nil {
				m.feed.sound = m.feed.sound.Toggle()
			}
		}
		return m, nil
	}
	return m, nil
}

// frameDelta converts a wall-clock gap to scene milliseconds.
func frameDelta(gap time.Duration, speed Speed) float64 {
	if gap < 0 {
		gap = 0
	}
	if gap > maxFrameGap {
		gap = maxFrameGap
	}
	return float64(gap) / float64(time.Millisecond) * speed.Factor()
}

func (m CardsModel) rasterSize() (int, int) {
	cols, rows := m.width, m.height-chromeLines
	if cols <= 0 {
		cols = 100
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

func (m CardsModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("shadows"))
	if m.stage.Scheduler().Busy() {
		b.WriteString(" " + m.spinner.View())
	}
	for _, icon := range []string{m.speed.Icon(), m.feed.sound.Icon()} {
		if icon != "" {
			b.WriteString("  " + statusStyle.Render(icon))
		}
	}
	if m.paused {
		b.WriteString("  " + statusStyle.Render("paused"))
	}
	b.WriteString("\n\n")

	cols, rows := m.rasterSize()
	r := newRaster(cols, rows, m.stage.Board().Viewport())
	geo := m.stage.Board().Geometry()
	var flying []int
	cards := m.stage.Cards()
	for i, c := range cards {
		if c.InTransition() {
			flying = append(flying, i)
			continue
		}
		r.card(c.Pose(), geo)
	}
	for _, i := range flying {
		r.card(cards[i].Pose(), geo)
	}
	for _, p := range m.stage.Sparkles().Poses() {
		r.particle(p)
	}
	b.WriteString(r.String())
	b.WriteString("\n\n")

	counts := m.stage.Counts()
	parts := make([]string, len(counts))
	for i, n := range counts {
		parts[i] = fmt.Sprintf("%d", n)
	}
	b.WriteString(countStyle.Render("stacks " + strings.Join(parts, " ")))
	b.WriteString("\n")

	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(helpText(true, m.feed.cue != nil)))
	return b.String()
}

func (m CardsModel) renderStatus() string {
	var b strings.Builder
	pct := 0.0
	if job := m.stage.Scheduler().Current(); job != nil && job.Flight != nil {
		pct = job.Flight.Progress(m.stage.Now())
	}
	b.WriteString(m.progress.ViewAs(pct))

	st := m.stage.Scheduler().Stats()
	b.WriteString("  ")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s  %s",
		util.Plural(st.Transferred, "move"),
		util.Plural(st.Busy, "skip"),
	)))
	switch {
	case m.notice != "" && m.noticeAt == m.feed.landings:
		b.WriteString("  " + statusStyle.Render(m.notice))
	case m.feed.last != "":
		b.WriteString("  " + statusStyle.Render(m.feed.last))
	}
	b.WriteString("  ")
	b.WriteString(timeStyle.Render(util.FormatClock(m.stage.Now())))
	return b.String()
}
