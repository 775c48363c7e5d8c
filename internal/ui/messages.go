package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg drives one scene frame. scene identifies the model that scheduled
// it so a stale chain from a closed scene is dropped.
type frameMsg struct {
	scene int
	at    time.Time
}

// BackMsg asks the parent model to close the scene and return to the menu.
type BackMsg struct{}

func frameCmd(scene int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return frameMsg{scene: scene, at: t}
	})
}

func backCmd() tea.Msg { return BackMsg{} }

var lastSceneID int

func nextSceneID() int {
	lastSceneID++
	return lastSceneID
}
