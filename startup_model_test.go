package main

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/olivier-w/shadows/internal/config"
	"github.com/olivier-w/shadows/internal/ui"
	"go.uber.org/zap"
)

type stubScene struct {
	got []tea.Msg
}

func (s *stubScene) Init() tea.Cmd { return nil }

func (s *stubScene) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *stubScene) View() string { return "stub scene" }

func stubScenes(scene *stubScene) []sceneEntry {
	return []sceneEntry{
		{name: "first", open: func() (tea.Model, error) { return scene, nil }},
		{name: "broken", open: func() (tea.Model, error) { return nil, errors.New("boom") }},
	}
}

func TestStartupModelOpensSelectedScene(t *testing.T) {
	scene := &stubScene{}
	m := newStartupModel(stubScenes(scene))
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected scene start command")
	}
	startup := model.(startupModel)
	if startup.phase != phaseScene {
		t.Fatalf("expected phaseScene, got %v", startup.phase)
	}
	if startup.View() != "stub scene" {
		t.Fatalf("expected scene view, got %q", startup.View())
	}

	startup.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if len(scene.got) != 1 {
		t.Fatalf("expected key delegated to the scene, got %d messages", len(scene.got))
	}
}

func TestStartupModelBackReturnsToMenu(t *testing.T) {
	scene := &stubScene{}
	m, _, err := newStartupModel(stubScenes(scene)).openScene("first")
	if err != nil {
		t.Fatalf("openScene returned error: %v", err)
	}
	model, _ := m.Update(ui.BackMsg{})
	startup := model.(startupModel)
	if startup.phase != phaseMenu || startup.active != nil {
		t.Fatal("expected menu phase with no active scene")
	}
	if !strings.Contains(startup.View(), "first") {
		t.Fatal("expected menu rows in view")
	}
}

func TestStartupModelReportsOpenError(t *testing.T) {
	m := newStartupModel(stubScenes(&stubScene{}))
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no command on open error")
	}
	startup := model.(startupModel)
	if startup.phase != phaseMenu {
		t.Fatalf("expected phaseMenu, got %v", startup.phase)
	}
	if startup.errMsg != "boom" {
		t.Fatalf("expected error message, got %q", startup.errMsg)
	}
}

func TestStartupModelCursorBounds(t *testing.T) {
	m := newStartupModel(stubScenes(&stubScene{}))
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if model.(startupModel).cursor != 0 {
		t.Fatal("expected cursor to stay at the top")
	}
	for iter := 0; iter < 5; iter++ {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	if got := model.(startupModel).cursor; got != 1 {
		t.Fatalf("expected cursor clamped to 1, got %d", got)
	}
}

func TestStartupModelUnknownScene(t *testing.T) {
	if _, _, err := newStartupModel(nil).openScene("nope"); err == nil {
		t.Fatal("expected error for unknown scene")
	}
}

func TestBuildScenesOpenRealScenes(t *testing.T) {
	scenes := buildScenes(config.Default(), rand.New(rand.NewSource(1)), zap.NewNop(), nil)
	if len(scenes) != 2 {
		t.Fatalf("expected 2 scenes, got %d", len(scenes))
	}
	for _, s := range scenes {
		model, err := s.open()
		if err != nil {
			t.Fatalf("%s: open returned error: %v", s.name, err)
		}
		if model.View() == "" {
			t.Fatalf("%s: expected a non-empty view", s.name)
		}
	}
	if _, ok := mustOpen(t, scenes[0]).(ui.CardsModel); !ok {
		t.Fatal("expected cards model")
	}
	if _, ok := mustOpen(t, scenes[1]).(ui.FlameModel); !ok {
		t.Fatal("expected flame model")
	}
}

func mustOpen(t *testing.T, s sceneEntry) tea.Model {
	t.Helper()
	m, err := s.open()
	if err != nil {
		t.Fatalf("open returned error: %v", err)
	}
	return m
}
