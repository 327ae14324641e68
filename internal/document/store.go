// Package document owns the element list of one editing session, the single
// selection and the undo history.
package document

import (
	"log/slog"

	"github.com/google/uuid"

	"vitae/internal/element"
	"vitae/internal/history"
)

// DuplicateOffset is how far a duplicate is shifted from its source.
const DuplicateOffset = 20

// IDFunc returns a fresh element id for the given kind.
type IDFunc func(kind element.Kind) string

func RandomID(kind element.Kind) string {
	return kind.String() + "-" + uuid.NewString()
}

type Store struct {
	pageWidth  float64
	pageHeight float64

	elements []element.Element
	selected string
	history  *history.Manager

	newID   IDFunc
	version uint64
	log     *slog.Logger
}

type Option func(*Store)

func WithIDFunc(f IDFunc) Option {
	return func(s *Store) { s.newID = f }
}

func WithHistoryLimit(n int) Option {
	return func(s *Store) { s.history = history.New(nil, n) }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// New creates an empty document. The page size is fixed for the life of the
// store.
func New(pageWidth, pageHeight float64, opts ...Option) *Store {
	s := &Store{
		pageWidth:  pageWidth,
		pageHeight: pageHeight,
		elements:   []element.Element{},
		newID:      RandomID,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = history.New(nil, 0)
	}
	return s
}

func (s *Store) PageSize() (width, height float64) {
	return s.pageWidth, s.pageHeight
}

// Version increases on every change to elements or selection.
func (s *Store) Version() uint64 { return s.version }

func (s *Store) Len() int { return len(s.elements) }

// Elements returns a copy of the elements in insertion order.
func (s *Store) Elements() []element.Element {
	return element.CloneAll(s.elements)
}

// Painted returns a copy of the elements in paint order: ascending zOrder,
// ties in insertion order.
func (s *Store) Painted() []element.Element {
	return element.PaintOrder(s.elements)
}

func (s *Store) Get(id string) (element.Element, bool) {
	i := s.index(id)
	if i < 0 {
		return element.Element{}, false
	}
	return s.elements[i].Clone(), true
}

func (s *Store) index(id string) int {
	for i := range s.elements {
		if s.elements[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) SelectedID() string { return s.selected }

func (s *Store) Selected() (element.Element, bool) {
	if s.selected == "" {
		return element.Element{}, false
	}
	return s.Get(s.selected)
}

// Select marks id as the selection. Unknown ids leave the selection alone.
func (s *Store) Select(id string) bool {
	if s.index(id) < 0 {
		return false
	}
	if s.selected != id {
		s.selected = id
		s.touch()
	}
	return true
}

func (s *Store) ClearSelection() {
	if s.selected != "" {
		s.selected = ""
		s.touch()
	}
}

// AddElement builds a new element from the kind's defaults overlaid with
// origin, puts it on top, selects it and records a snapshot.
func (s *Store) AddElement(kind element.Kind, origin element.Patch) string {
	e := element.New(kind, s.newID(kind), origin)
	e.ZOrder = s.nextZ()
	s.elements = append(s.elements, e)
	s.selected = e.ID
	s.commit("add", e.ID)
	return e.ID
}

// UpdateElement merges p into the element. It does not record a snapshot.
func (s *Store) UpdateElement(id string, p element.Patch) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	updated, rejected := s.elements[i].Apply(p)
	if len(rejected) > 0 {
		s.log.Debug("rejected element fields", "id", id, "fields", rejected)
	}
	s.elements[i] = updated
	s.touch()
	return true
}

func (s *Store) DeleteElement(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.elements = append(s.elements[:i], s.elements[i+1:]...)
	if s.selected == id {
		s.selected = ""
	}
	s.commit("delete", id)
	return true
}

// DuplicateElement copies the element under a fresh id, shifted by
// DuplicateOffset, on top of everything else, and selects the copy.
func (s *Store) DuplicateElement(id string) (string, bool) {
	i := s.index(id)
	if i < 0 {
		return "", false
	}
	dup := s.elements[i].Clone()
	dup.ID = s.newID(dup.Kind())
	dup.X += DuplicateOffset
	dup.Y += DuplicateOffset
	dup.ZOrder = s.nextZ()
	s.elements = append(s.elements, dup)
	s.selected = dup.ID
	s.commit("duplicate", dup.ID)
	return dup.ID, true
}

func (s *Store) Undo() bool {
	elems, ok := s.history.Undo()
	if !ok {
		return false
	}
	s.restore(elems)
	return true
}

func (s *Store) Redo() bool {
	elems, ok := s.history.Redo()
	if !ok {
		return false
	}
	s.restore(elems)
	return true
}

func (s *Store) CanUndo() bool { return s.history.CanUndo() }
func (s *Store) CanRedo() bool { return s.history.CanRedo() }

// Seed replaces the document with elems and makes them the initial history
// entry. Invalid elements are dropped.
func (s *Store) Seed(elems []element.Element) {
	valid := make([]element.Element, 0, len(elems))
	for _, e := range elems {
		if err := e.Validate(); err != nil {
			s.log.Warn("dropping invalid element", "id", e.ID, "err", err)
			continue
		}
		valid = append(valid, e.Clone())
	}
	s.elements = valid
	s.selected = ""
	s.history.Reset(s.elements)
	s.touch()
}

// nextZ is the element count plus one, raised above the current maximum when
// deletions have left a higher zOrder behind.
func (s *Store) nextZ() int {
	z := len(s.elements) + 1
	for _, e := range s.elements {
		if e.ZOrder >= z {
			z = e.ZOrder + 1
		}
	}
	return z
}

func (s *Store) commit(op, id string) {
	s.history.Push(s.elements)
	s.touch()
	s.log.Debug("document changed", "op", op, "id", id, "elements", len(s.elements))
}

func (s *Store) restore(elems []element.Element) {
	s.elements = elems
	s.selected = ""
	s.touch()
}

func (s *Store) touch() { s.version++ }
