package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "ctrl+c":
		return true
	}
	return false
}

func isBack(msg tea.KeyMsg) bool {
	return msg.String() == "esc"
}

func helpText(cards bool, hasCue bool) string {
	s := "space pause  f speed"
	if cards {
		s += "  m move now"
		if hasCue {
			s += "  s sound"
		}
	} else {
		s += "  b burst"
	}
	s += "  esc menu  q quit"
	return s
}
