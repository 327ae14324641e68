// Package element holds the data model of one positioned, styled object on
// the résumé canvas. An element is either text, a shape or an image; the
// variant-specific attributes live in a closed set of Body implementations.
package element

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

type Kind int

const (
	KindText Kind = iota
	KindShape
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindShape:
		return "shape"
	case KindImage:
		return "image"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(s) {
	case "text":
		return KindText, nil
	case "shape":
		return KindShape, nil
	case "image":
		return KindImage, nil
	}
	return 0, fmt.Errorf("unknown element kind %q", s)
}

type FontWeight string

const (
	WeightNormal FontWeight = "normal"
	WeightBold   FontWeight = "bold"
)

func (w FontWeight) Valid() bool { return w == WeightNormal || w == WeightBold }

type FontStyle string

const (
	StyleNormal FontStyle = "normal"
	StyleItalic FontStyle = "italic"
)

func (s FontStyle) Valid() bool { return s == StyleNormal || s == StyleItalic }

type TextAlign string

const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

func (a TextAlign) Valid() bool {
	return a == AlignLeft || a == AlignCenter || a == AlignRight
}

type TextDecoration string

const (
	DecorationNone      TextDecoration = "none"
	DecorationUnderline TextDecoration = "underline"
)

func (d TextDecoration) Valid() bool {
	return d == DecorationNone || d == DecorationUnderline
}

type ShapeVariant string

const (
	Rectangle ShapeVariant = "rectangle"
	Circle    ShapeVariant = "circle"
)

func (v ShapeVariant) Valid() bool { return v == Rectangle || v == Circle }

// Body is the kind-specific part of an element. The set of implementations
// is closed: *Text, *Shape and *Image.
type Body interface {
	Kind() Kind
	clone() Body
}

type Text struct {
	Content        string
	FontSizePt     float64
	FontFamily     string
	FontWeight     FontWeight
	FontStyle      FontStyle
	TextAlign      TextAlign
	TextDecoration TextDecoration
	ColorHex       string
}

func (t *Text) Kind() Kind { return KindText }

func (t *Text) clone() Body {
	c := *t
	return &c
}

// Lines splits the content on line breaks.
func (t *Text) Lines() []string {
	return strings.Split(strings.ReplaceAll(t.Content, "\r\n", "\n"), "\n")
}

// LineHeight is the distance between two baselines.
func (t *Text) LineHeight() float64 {
	return t.FontSizePt * LineHeightFactor
}

// Baseline returns the baseline y of line i relative to the element top.
func (t *Text) Baseline(i int) float64 {
	return float64(i)*t.LineHeight() + t.FontSizePt
}

// Anchor returns the x anchor of every line inside a box of the given width
// and the fraction of the measured line width that lies left of it.
func (t *Text) Anchor(width float64) (x, frac float64) {
	switch t.TextAlign {
	case AlignCenter:
		return width / 2, 0.5
	case AlignRight:
		return width, 1
	}
	return 0, 0
}

type Shape struct {
	Variant ShapeVariant
	// Empty colors mean no fill or no stroke.
	FillColorHex   string
	StrokeColorHex string
	StrokeWidthPx  float64
	CornerRadiusPx float64
}

func (s *Shape) Kind() Kind { return KindShape }

func (s *Shape) clone() Body {
	c := *s
	return &c
}

type Image struct {
	SourceRef string
}

func (i *Image) Kind() Kind { return KindImage }

func (i *Image) clone() Body {
	c := *i
	return &c
}

// Element is one object of the document. Geometry is in page units.
type Element struct {
	ID              string
	X, Y            float64
	Width, Height   float64
	RotationDegrees float64
	ZOrder          int
	Body            Body
}

func (e Element) Kind() Kind { return e.Body.Kind() }

func (e Element) Bounds() Rect {
	return Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

func (e Element) Clone() Element {
	c := e
	if e.Body != nil {
		c.Body = e.Body.clone()
	}
	return c
}

// CloneAll deep-copies a list of elements.
func CloneAll(elems []Element) []Element {
	if elems == nil {
		return nil
	}
	out := make([]Element, len(elems))
	for i, e := range elems {
		out[i] = e.Clone()
	}
	return out
}

// PaintOrder returns a copy sorted by ascending zOrder, ties kept in
// insertion order.
func PaintOrder(elems []Element) []Element {
	out := CloneAll(elems)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ZOrder < out[j].ZOrder })
	return out
}

func (e Element) Text() (*Text, bool) {
	t, ok := e.Body.(*Text)
	return t, ok
}

func (e Element) Shape() (*Shape, bool) {
	s, ok := e.Body.(*Shape)
	return s, ok
}

func (e Element) Image() (*Image, bool) {
	i, ok := e.Body.(*Image)
	return i, ok
}

var (
	ErrNoBody       = errors.New("element has no body")
	ErrBadGeometry  = errors.New("element geometry is not finite")
	ErrEmptyElement = errors.New("element width and height must be positive")
)

// Validate reports whether the element satisfies the model invariants.
func (e Element) Validate() error {
	if e.Body == nil {
		return ErrNoBody
	}
	for _, v := range []float64{e.X, e.Y, e.Width, e.Height, e.RotationDegrees} {
		if !finite(v) {
			return ErrBadGeometry
		}
	}
	if e.Width <= 0 || e.Height <= 0 {
		return ErrEmptyElement
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
