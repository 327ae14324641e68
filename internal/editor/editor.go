// Package editor turns pointer input, tool changes and toolbar actions into
// document operations, and describes the current frame for the renderer.
package editor

import (
	"errors"
	"fmt"

	"vitae/internal/document"
	"vitae/internal/element"
	"vitae/internal/render"
)

type Tool int

const (
	ToolSelect Tool = iota
	ToolAddText
	ToolAddShape
	ToolPan
)

func (t Tool) String() string {
	switch t {
	case ToolSelect:
		return "select"
	case ToolAddText:
		return "add-text"
	case ToolAddShape:
		return "add-shape"
	case ToolPan:
		return "pan"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

func ParseTool(s string) (Tool, error) {
	for _, t := range []Tool{ToolSelect, ToolAddText, ToolAddShape, ToolPan} {
		if t.String() == s {
			return t, nil
		}
	}
	return ToolSelect, fmt.Errorf("unknown tool %q", s)
}

type Action string

const (
	ActionUndo              Action = "undo"
	ActionRedo              Action = "redo"
	ActionZoomIn            Action = "zoom-in"
	ActionZoomOut           Action = "zoom-out"
	ActionToggleGrid        Action = "toggle-grid"
	ActionDuplicateSelected Action = "duplicate-selected"
	ActionDeleteSelected    Action = "delete-selected"
)

var ErrNoSelection = errors.New("nothing selected")

type Editor struct {
	Doc  *document.Store
	View Viewport
	Tool Tool

	// ShapeVariant is what the add-shape tool creates.
	ShapeVariant   element.ShapeVariant
	ShowGrid       bool
	Dark           bool
	RotatedHitTest bool

	drag *element.Point
}

func New(doc *document.Store) *Editor {
	return &Editor{
		Doc:          doc,
		View:         DefaultViewport(),
		Tool:         ToolSelect,
		ShapeVariant: element.Rectangle,
		ShowGrid:     true,
	}
}

func (e *Editor) SetTool(t Tool) {
	e.Tool = t
	e.drag = nil
}

// PointerDown handles a press at a screen position relative to the drawing
// surface. With an add tool the press creates an element there and the tool
// falls back to select; with select it picks the topmost element or clears
// the selection. It returns the id that ended up selected, if any.
func (e *Editor) PointerDown(screenX, screenY float64) string {
	p := e.View.ToPage(screenX, screenY)
	switch e.Tool {
	case ToolAddText:
		id := e.Doc.AddElement(element.KindText, element.Patch{X: &p.X, Y: &p.Y})
		e.Tool = ToolSelect
		return id
	case ToolAddShape:
		v := e.ShapeVariant
		id := e.Doc.AddElement(element.KindShape, element.Patch{Variant: &v, X: &p.X, Y: &p.Y})
		e.Tool = ToolSelect
		return id
	case ToolPan:
		e.drag = &element.Point{X: screenX, Y: screenY}
		return e.Doc.SelectedID()
	}

	hit, ok := HitTest(e.Doc.Painted(), p, e.RotatedHitTest)
	if !ok {
		e.Doc.ClearSelection()
		return ""
	}
	e.Doc.Select(hit.ID)
	return hit.ID
}

// PointerMove drags the viewport while the pan tool holds the pointer.
func (e *Editor) PointerMove(screenX, screenY float64) {
	if e.Tool != ToolPan || e.drag == nil {
		return
	}
	e.View.Pan(screenX-e.drag.X, screenY-e.drag.Y)
	e.drag = &element.Point{X: screenX, Y: screenY}
}

func (e *Editor) PointerUp() {
	e.drag = nil
}

// Do runs a toolbar action and reports whether anything changed.
func (e *Editor) Do(a Action) bool {
	switch a {
	case ActionUndo:
		return e.Doc.Undo()
	case ActionRedo:
		return e.Doc.Redo()
	case ActionZoomIn:
		before := e.View.Zoom
		e.View.ZoomIn()
		return e.View.Zoom != before
	case ActionZoomOut:
		before := e.View.Zoom
		e.View.ZoomOut()
		return e.View.Zoom != before
	case ActionToggleGrid:
		e.ShowGrid = !e.ShowGrid
		return true
	case ActionDuplicateSelected:
		_, ok := e.Doc.DuplicateElement(e.Doc.SelectedID())
		return ok
	case ActionDeleteSelected:
		return e.Doc.DeleteElement(e.Doc.SelectedID())
	}
	return false
}

// SetProperty parses a property-panel value and applies it to the selection.
// A value that does not parse leaves the document untouched.
func (e *Editor) SetProperty(field, raw string) error {
	id := e.Doc.SelectedID()
	if id == "" {
		return ErrNoSelection
	}
	p, err := element.ParseField(field, raw)
	if err != nil {
		return err
	}
	e.Doc.UpdateElement(id, p)
	return nil
}

// Nudge moves the selection by dx, dy page units.
func (e *Editor) Nudge(dx, dy float64) bool {
	sel, ok := e.Doc.Selected()
	if !ok {
		return false
	}
	x, y := sel.X+dx, sel.Y+dy
	return e.Doc.UpdateElement(sel.ID, element.Patch{X: &x, Y: &y})
}

// Scene describes what the renderer should draw right now.
func (e *Editor) Scene() render.Scene {
	w, h := e.Doc.PageSize()
	return render.Scene{
		PageWidth:  w,
		PageHeight: h,
		Elements:   e.Doc.Painted(),
		SelectedID: e.Doc.SelectedID(),
		Zoom:       e.View.Zoom,
		PanX:       e.View.PanX,
		PanY:       e.View.PanY,
		ShowGrid:   e.ShowGrid,
		Dark:       e.Dark,
	}
}
