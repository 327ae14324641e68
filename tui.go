package main

import (
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vitae/internal/editor"
	"vitae/internal/render"
)

func runTUI(s *session, log *slog.Logger) error {
	p := tea.NewProgram(
		newModel(s, log),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}

func newModel(s *session, log *slog.Logger) model {
	m := model{
		ed:       s.ed,
		renderer: render.New(render.NewFontCache(), s.images, log),
		images:   s.images,
		resume:   s.resume,
		db:       s.db,
		config:   s.cfg,
		log:      log,
		mode:     ModeNormal,
		preview:  &previewCache{},
	}
	if s.resume == nil && !s.saved {
		m.mode = ModeBlocked
	}
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		first := m.width == 0
		m.width = msg.Width
		m.height = msg.Height
		if first {
			m.fitPage()
			m.cursorX, m.cursorY = m.width/2, m.canvasRows()/2
		}
		m.ensureCursorInBounds()
		return m, nil

	case exportDoneMsg:
		m.exporting = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			m.successMessage = ""
		} else {
			m.errorMessage = ""
			m.successMessage = "Exported " + msg.path
		}
		return m, nil

	case tea.MouseMsg:
		if m.mode != ModeNormal {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg.String())
		}
		switch m.mode {
		case ModeBlocked:
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return m, tea.Quit
			}
			return m, nil
		case ModeInput:
			return m.handleInputKey(msg)
		case ModeConfirm:
			return m.handleConfirmKey(msg.String())
		case ModeMove:
			return m.handleMoveKey(msg.String())
		}
		return m.handleNormalKey(msg.String())
	}
	return m, nil
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Y >= m.canvasRows() {
		return m, nil
	}
	sx, sy := cellCenter(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp && msg.Action == tea.MouseActionPress:
		m.ed.Do(editor.ActionZoomIn)
	case msg.Button == tea.MouseButtonWheelDown && msg.Action == tea.MouseActionPress:
		m.ed.Do(editor.ActionZoomOut)
	case msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		m.cursorX, m.cursorY = msg.X, msg.Y
		m.clearMessages()
		m.ed.PointerDown(sx, sy)
	case msg.Action == tea.MouseActionMotion:
		m.ed.PointerMove(sx, sy)
	case msg.Action == tea.MouseActionRelease:
		m.ed.PointerUp()
	}
	return m, nil
}

func (m *model) fitPage() {
	pw, ph := m.ed.Doc.PageSize()
	m.ed.View.Fit(float64(m.width*charWidth), float64(m.canvasRows()*charHeight), pw, ph, fitMargin)
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.mode == ModeBlocked {
		return blockedView()
	}

	rows := m.canvasRows()
	if m.width < 1 || rows < 1 {
		return ""
	}
	cells := m.preview.get(m.renderer, m.ed, m.width, rows)
	lines := paintCells(cells, m.cursorX, m.cursorY, m.mode != ModeInput)

	var result strings.Builder
	result.WriteString(strings.Join(lines, "\n"))
	result.WriteString("\n")
	result.WriteString(m.statusLine())
	return result.String()
}

func blockedView() string {
	return strings.Join([]string{
		"",
		"  No resume data available.",
		"",
		"  Please go back to the resume builder and export your résumé as JSON,",
		"  then open it with:   vitae edit path/to/resume.json",
		"  or reopen the last saved canvas with:   vitae edit --saved",
		"",
		"  q to quit",
	}, "\n")
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeInput:
		prompt := "Property (field=value)"
		if m.inputOp == InputImage {
			prompt = "Image file"
		}
		status := fmt.Sprintf("Mode: INPUT | %s: %s█ | Enter=apply, Esc=cancel", prompt, m.inputText)
		if m.errorMessage != "" {
			status += " | ERROR: " + m.errorMessage
		}
		return status
	case ModeConfirm:
		var message string
		switch m.confirmAction {
		case ConfirmDelete:
			message = "Delete the selected element? (y/n)"
		case ConfirmQuit:
			message = "Quit vitae? Unsaved changes will be lost. (y/n)"
		case ConfirmOverwriteFile:
			message = fmt.Sprintf("File %s already exists. Overwrite? (y/n)", m.pendingPath)
		}
		return "Mode: CONFIRM | " + message
	case ModeMove:
		return fmt.Sprintf("Mode: MOVE | %s | hjkl/arrows=move, Enter=finish, Esc=cancel", m.ed.Doc.SelectedID())
	}

	status := fmt.Sprintf("Mode: %s | Tool: %s | Zoom: %d%%", m.modeString(), m.ed.Tool, int(m.ed.View.Zoom*100+0.5))
	if sel, ok := m.ed.Doc.Selected(); ok {
		status += fmt.Sprintf(" | Selected: %s (%s %.0f,%.0f %.0fx%.0f)", sel.ID, sel.Kind(), sel.X, sel.Y, sel.Width, sel.Height)
	}
	if m.exporting {
		status += " | Exporting..."
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeBlocked:
		return "BLOCKED"
	case ModeNormal:
		if m.ed.Tool == editor.ToolPan {
			return "PAN"
		}
		return "NORMAL"
	case ModeMove:
		return "MOVE"
	case ModeInput:
		return "INPUT"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

var helpLines = []string{
	"vitae Help",
	"==========",
	"",
	"Navigation:",
	"-----------",
	"  h/←/j/↓/k/↑/l/→  Move cursor (pan the page while the pan tool is active)",
	"  Shift+h/j/k/l    Move 4x faster",
	"  Enter / click    Click at the cursor with the current tool",
	"  Space            Toggle the pan tool (mouse drag pans too)",
	"  +/= and -        Zoom in / out (mouse wheel too)",
	"  0                Fit the page to the window",
	"",
	"Tools:",
	"------",
	"  s                Select tool",
	"  t                Add text at the next click",
	"  b / B            Add a rectangle / circle at the next click",
	"  i                Add an image from a file at the cursor",
	"  p                Paste clipboard text as a new text element",
	"",
	"Selection:",
	"----------",
	"  e                Edit a property: field=value (x, y, width, height, rotation,",
	"                   content, fontSize, fontFamily, fontWeight, fontStyle, textAlign,",
	"                   textDecoration, color, fill, stroke, strokeWidth, cornerRadius, shape)",
	"  m                Move mode: hjkl/arrows nudge by 20, Enter=finish, Esc=cancel",
	"  c                Duplicate",
	"  d                Delete",
	"  Esc              Clear selection and return to the select tool",
	"",
	"Document:",
	"---------",
	"  u                Undo",
	"  U / Ctrl+R       Redo",
	"  g                Toggle grid",
	"  T                Toggle dark theme",
	"  w                Save the canvas",
	"  x                Export PDF",
	"  X                Export PNG",
	"",
	"General:",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

func (m model) handleHelpKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		maxScroll := len(helpLines) - (m.height - 1)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}

func (m model) helpView() string {
	visibleHeight := m.height - 1
	if visibleHeight < 1 {
		visibleHeight = 1
	}
	start := m.helpScroll
	if start > len(helpLines)-1 {
		start = len(helpLines) - 1
	}
	end := start + visibleHeight
	if end > len(helpLines) {
		end = len(helpLines)
	}
	result := strings.Join(helpLines[start:end], "\n")
	result += fmt.Sprintf("\nHelp (%d-%d of %d lines) | j/k to scroll, Esc to close", start+1, end, len(helpLines))
	return result
}
