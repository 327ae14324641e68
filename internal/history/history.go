// Package history keeps full snapshots of a document's element list for
// linear undo and redo.
package history

import "vitae/internal/element"

// Manager is a list of snapshots plus a cursor. Pushing after an undo
// discards every entry past the cursor.
type Manager struct {
	entries [][]element.Element
	cursor  int
	limit   int
}

// New starts a history whose only entry is initial. A positive limit caps the
// number of entries kept; the oldest ones are dropped first.
func New(initial []element.Element, limit int) *Manager {
	m := &Manager{limit: limit}
	m.Reset(initial)
	return m
}

// Reset forgets every entry and starts over from initial.
func (m *Manager) Reset(initial []element.Element) {
	m.entries = [][]element.Element{snapshot(initial)}
	m.cursor = 0
}

func (m *Manager) Push(elems []element.Element) {
	m.entries = append(m.entries[:m.cursor+1], snapshot(elems))
	if m.limit > 0 && len(m.entries) > m.limit {
		drop := len(m.entries) - m.limit
		m.entries = append([][]element.Element(nil), m.entries[drop:]...)
	}
	m.cursor = len(m.entries) - 1
}

// Undo moves the cursor back and returns a copy of that entry.
func (m *Manager) Undo() ([]element.Element, bool) {
	if !m.CanUndo() {
		return nil, false
	}
	m.cursor--
	return snapshot(m.entries[m.cursor]), true
}

// Redo moves the cursor forward and returns a copy of that entry.
func (m *Manager) Redo() ([]element.Element, bool) {
	if !m.CanRedo() {
		return nil, false
	}
	m.cursor++
	return snapshot(m.entries[m.cursor]), true
}

func (m *Manager) CanUndo() bool { return m.cursor > 0 }
func (m *Manager) CanRedo() bool { return m.cursor < len(m.entries)-1 }
func (m *Manager) Len() int      { return len(m.entries) }
func (m *Manager) Cursor() int   { return m.cursor }

// Current returns a copy of the entry under the cursor.
func (m *Manager) Current() []element.Element {
	return snapshot(m.entries[m.cursor])
}

func snapshot(elems []element.Element) []element.Element {
	out := element.CloneAll(elems)
	if out == nil {
		out = []element.Element{}
	}
	return out
}
