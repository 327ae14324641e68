package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"vitae/internal/editor"
)

func (m *model) handleNavigation(key string, speed int) (tea.Model, tea.Cmd) {
	switch {
	case m.mode == ModeMove:
		return m.handleNudge(key, speed), nil
	case m.ed.Tool == editor.ToolPan:
		return m.handlePan(key, speed), nil
	}
	return m.handleCursorMove(key, speed), nil
}

// handlePan moves the page under a fixed cursor, a cell at a time.
func (m *model) handlePan(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.ed.View.Pan(float64(-dx*speed*charWidth), float64(-dy*speed*charHeight))
	return m
}

func (m *model) handleCursorMove(key string, speed int) tea.Model {
	dx, dy := direction(key)
	m.cursorX += dx * speed
	m.cursorY += dy * speed
	m.ensureCursorInBounds()
	return m
}

func (m *model) handleNudge(key string, speed int) tea.Model {
	dx, dy := direction(key)
	if !m.ed.Nudge(float64(dx*speed*nudgeStep), float64(dy*speed*nudgeStep)) {
		m.mode = ModeNormal
		m.moveOrigin = nil
	}
	return m
}

func direction(key string) (dx, dy int) {
	switch key {
	case "h", "left", "H", "shift+left":
		return -1, 0
	case "l", "right", "L", "shift+right":
		return 1, 0
	case "k", "up", "K", "shift+up":
		return 0, -1
	case "j", "down", "J", "shift+down":
		return 0, 1
	}
	return 0, 0
}

func (m *model) getMoveSpeed(key string) int {
	switch key {
	case "H", "L", "K", "J", "shift+left", "shift+right", "shift+up", "shift+down":
		return 4
	default:
		return 1
	}
}

func (m *model) ensureCursorInBounds() {
	if m.cursorX < 0 {
		m.cursorX = 0
	}
	if m.cursorY < 0 {
		m.cursorY = 0
	}
	if m.width > 0 && m.cursorX >= m.width {
		m.cursorX = m.width - 1
	}
	maxY := m.canvasRows() - 1
	if maxY < 0 {
		maxY = 0
	}
	if m.cursorY > maxY {
		m.cursorY = maxY
	}
}

func (m *model) canvasRows() int {
	return m.height - statusRows
}
