package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitae/internal/element"
)

func texts(ids ...string) []element.Element {
	out := make([]element.Element, 0, len(ids))
	for i, id := range ids {
		e := element.NewText(id)
		e.ZOrder = i + 1
		out = append(out, e)
	}
	return out
}

func TestManager_InitialState(t *testing.T) {
	m := New(nil, 0)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Cursor())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())
	assert.Equal(t, []element.Element{}, m.Current())

	_, ok := m.Undo()
	assert.False(t, ok)
	_, ok = m.Redo()
	assert.False(t, ok)
}

func TestManager_UndoRedoInverse(t *testing.T) {
	m := New(nil, 0)
	a := texts("a")
	ab := texts("a", "b")
	m.Push(a)
	m.Push(ab)

	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, a, got)

	got, ok = m.Redo()
	require.True(t, ok)
	assert.Equal(t, ab, got)

	_, ok = m.Redo()
	assert.False(t, ok, "redo at the last entry is a no-op")
}

func TestManager_PushDiscardsRedoTail(t *testing.T) {
	m := New(nil, 0)
	m.Push(texts("a"))
	m.Push(texts("a", "b"))
	m.Push(texts("a", "b", "c"))

	_, _ = m.Undo()
	_, _ = m.Undo()
	m.Push(texts("a", "d"))

	assert.Equal(t, 3, m.Len())
	assert.False(t, m.CanRedo())
	_, ok := m.Redo()
	assert.False(t, ok)

	got, _ := m.Undo()
	assert.Equal(t, texts("a"), got)
}

func TestManager_SnapshotsAreDeepCopies(t *testing.T) {
	m := New(nil, 0)
	live := texts("a")
	m.Push(live)

	txt, _ := live[0].Text()
	txt.Content = "mutated after push"

	m.Push(texts("a", "b"))
	got, _ := m.Undo()
	gotText, _ := got[0].Text()
	assert.Equal(t, "New Text", gotText.Content)

	gotText.Content = "mutated after undo"
	again := m.Current()
	againText, _ := again[0].Text()
	assert.Equal(t, "New Text", againText.Content)
}

func TestManager_Limit(t *testing.T) {
	m := New(nil, 3)
	m.Push(texts("a"))
	m.Push(texts("a", "b"))
	m.Push(texts("a", "b", "c"))

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Cursor())

	_, _ = m.Undo()
	got, ok := m.Undo()
	require.True(t, ok)
	assert.Equal(t, texts("a"), got)
	assert.False(t, m.CanUndo(), "the empty initial entry was dropped")
}

func TestManager_Reset(t *testing.T) {
	m := New(nil, 0)
	m.Push(texts("a"))
	m.Reset(texts("x", "y"))
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, texts("x", "y"), m.Current())
}
