package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"vitae/internal/editor"
	"vitae/internal/element"
	"vitae/internal/export"
	"vitae/internal/storage"
)

func (m model) handleNormalKey(key string) (tea.Model, tea.Cmd) {
	ed := m.ed
	m.clearMessages()

	switch key {
	case "q", "ctrl+c":
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
	case "esc":
		ed.SetTool(editor.ToolSelect)
		ed.Doc.ClearSelection()

	case "s":
		ed.SetTool(editor.ToolSelect)
	case "t":
		ed.SetTool(editor.ToolAddText)
		m.successMessage = "Enter or click to place text"
	case "b", "B":
		ed.ShapeVariant = element.Rectangle
		if key == "B" {
			ed.ShapeVariant = element.Circle
		}
		ed.SetTool(editor.ToolAddShape)
		m.successMessage = fmt.Sprintf("Enter or click to place a %s", ed.ShapeVariant)
	case " ":
		if ed.Tool == editor.ToolPan {
			ed.SetTool(editor.ToolSelect)
		} else {
			ed.SetTool(editor.ToolPan)
		}
	case "i":
		m.startInput(InputImage, "")
	case "p":
		m.pasteClipboard()
	case "enter":
		m.click()

	case "u":
		if !ed.Do(editor.ActionUndo) {
			m.errorMessage = "Nothing to undo"
		}
	case "U", "ctrl+r":
		if !ed.Do(editor.ActionRedo) {
			m.errorMessage = "Nothing to redo"
		}
	case "+", "=":
		ed.Do(editor.ActionZoomIn)
	case "-":
		ed.Do(editor.ActionZoomOut)
	case "0":
		m.fitPage()
	case "g":
		ed.Do(editor.ActionToggleGrid)
	case "T":
		ed.Dark = !ed.Dark

	case "c":
		if !ed.Do(editor.ActionDuplicateSelected) {
			m.errorMessage = editor.ErrNoSelection.Error()
		}
	case "d":
		if ed.Doc.SelectedID() == "" {
			m.errorMessage = editor.ErrNoSelection.Error()
			break
		}
		if m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmDelete
			return m, nil
		}
		ed.Do(editor.ActionDeleteSelected)
	case "m":
		sel, ok := ed.Doc.Selected()
		if !ok {
			m.errorMessage = editor.ErrNoSelection.Error()
			break
		}
		m.moveOrigin = &element.Point{X: sel.X, Y: sel.Y}
		m.mode = ModeMove
	case "e":
		sel, ok := ed.Doc.Selected()
		if !ok {
			m.errorMessage = editor.ErrNoSelection.Error()
			break
		}
		prefill := ""
		if t, ok := sel.Text(); ok {
			prefill = "content=" + strings.ReplaceAll(t.Content, "\n", `\n`)
		}
		m.startInput(InputProperty, prefill)

	case "w":
		m.save()
	case "x", "X":
		format := export.FormatPDF
		if key == "X" {
			format = export.FormatPNG
		}
		return m.startExport(format, false)

	default:
		return m.handleNavigation(key, m.getMoveSpeed(key))
	}
	return m, nil
}

// click presses the pointer at the cursor cell.
func (m *model) click() {
	sx, sy := cellCenter(m.cursorX, m.cursorY)
	id := m.ed.PointerDown(sx, sy)
	m.ed.PointerUp()
	if id != "" {
		m.log.Debug("pointer down", "id", id, "tool", m.ed.Tool.String())
	}
}

func (m *model) cursorPage() element.Point {
	sx, sy := cellCenter(m.cursorX, m.cursorY)
	return m.ed.View.ToPage(sx, sy)
}

func (m *model) startInput(op InputOperation, prefill string) {
	m.mode = ModeInput
	m.inputOp = op
	m.inputText = prefill
}

func (m model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = ModeNormal
		m.inputText = ""
		m.clearMessages()
		return m, nil
	case tea.KeyEnter:
		return m.applyInput()
	case tea.KeyBackspace:
		if r := []rune(m.inputText); len(r) > 0 {
			m.inputText = string(r[:len(r)-1])
		}
	case tea.KeySpace:
		m.inputText += " "
	case tea.KeyRunes:
		m.inputText += string(msg.Runes)
	}
	return m, nil
}

func (m model) applyInput() (tea.Model, tea.Cmd) {
	text := strings.TrimSpace(m.inputText)
	switch m.inputOp {
	case InputProperty:
		field, value, ok := strings.Cut(text, "=")
		if !ok {
			m.errorMessage = "expected field=value"
			return m, nil
		}
		if err := m.ed.SetProperty(strings.TrimSpace(field), strings.TrimSpace(value)); err != nil {
			m.errorMessage = err.Error()
			return m, nil
		}
	case InputImage:
		if text == "" {
			m.errorMessage = "no file given"
			return m, nil
		}
		p := m.cursorPage()
		m.ed.Doc.AddElement(element.KindImage, element.Patch{X: &p.X, Y: &p.Y, SourceRef: &text})
	}
	m.mode = ModeNormal
	m.inputText = ""
	m.clearMessages()
	return m, nil
}

func (m model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "Y":
		m.mode = ModeNormal
		switch m.confirmAction {
		case ConfirmDelete:
			m.ed.Do(editor.ActionDeleteSelected)
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOverwriteFile:
			format := export.FormatPDF
			if strings.HasSuffix(strings.ToLower(m.pendingPath), ".png") {
				format = export.FormatPNG
			}
			return m.startExport(format, true)
		}
	case "n", "N", "esc":
		m.mode = ModeNormal
		m.pendingPath = ""
	}
	return m, nil
}

func (m model) handleMoveKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "enter":
		m.mode = ModeNormal
		m.moveOrigin = nil
		return m, nil
	case "esc":
		if o := m.moveOrigin; o != nil {
			if id := m.ed.Doc.SelectedID(); id != "" {
				m.ed.Doc.UpdateElement(id, element.Patch{X: &o.X, Y: &o.Y})
			}
		}
		m.mode = ModeNormal
		m.moveOrigin = nil
		return m, nil
	}
	return m.handleNavigation(key, m.getMoveSpeed(key))
}

func (m *model) save() {
	if err := m.db.SaveElements(storage.CanvasKey, m.ed.Doc.Elements()); err != nil {
		m.log.Error("save failed", "err", err)
		m.errorMessage = err.Error()
		return
	}
	m.log.Info("canvas saved", "elements", m.ed.Doc.Len())
	m.successMessage = "Canvas saved"
}

func (m *model) pasteClipboard() {
	text, err := readClipboardText()
	if err != nil {
		m.errorMessage = fmt.Sprintf("clipboard: %v", err)
		return
	}
	text = cleanClipboardText(text)
	if text == "" {
		m.errorMessage = "clipboard is empty"
		return
	}
	p := m.cursorPage()
	m.ed.Doc.AddElement(element.KindText, element.Patch{X: &p.X, Y: &p.Y, Content: &text})
}

// startExport runs the export in the background. The document is laid out
// before this returns, so editing can continue right away.
func (m model) startExport(format export.Format, overwrite bool) (tea.Model, tea.Cmd) {
	if m.exporting {
		m.errorMessage = "export already running"
		return m, nil
	}
	s := &session{cfg: m.config, resume: m.resume, ed: m.ed, images: m.images}
	req := s.exportRequest(format)
	req.Log = m.log

	if !overwrite && m.config.Confirmations {
		if _, err := os.Stat(req.Path); err == nil {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.pendingPath = req.Path
			return m, nil
		}
	}
	m.pendingPath = ""
	m.exporting = true

	done := export.Start(context.Background(), req)
	return m, func() tea.Msg {
		res := <-done
		return exportDoneMsg{path: res.Path, err: res.Err}
	}
}
