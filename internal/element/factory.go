package element

const (
	LineHeightFactor = 1.4

	DefaultFontSizePt = 16
	DefaultFontFamily = "Arial"
	DefaultTextColor  = "#000000"
	DefaultContent    = "New Text"

	DefaultFill        = "#f0f0f0"
	DefaultStroke      = "#000000"
	DefaultStrokeWidth = 2

	defaultOriginX = 100
	defaultOriginY = 100
)

// Fonts offered by the property editor.
var Fonts = []string{"Arial", "Helvetica", "Times New Roman", "Georgia", "Verdana", "Courier New"}

func NewText(id string) Element {
	return Element{
		ID:     id,
		X:      defaultOriginX,
		Y:      defaultOriginY,
		Width:  200,
		Height: 40,
		Body: &Text{
			Content:        DefaultContent,
			FontSizePt:     DefaultFontSizePt,
			FontFamily:     DefaultFontFamily,
			FontWeight:     WeightNormal,
			FontStyle:      StyleNormal,
			TextAlign:      AlignLeft,
			TextDecoration: DecorationNone,
			ColorHex:       DefaultTextColor,
		},
	}
}

// NewShape builds a rectangle or a circle. A circle is the same shape with a
// square default box.
func NewShape(id string, v ShapeVariant) Element {
	if !v.Valid() {
		v = Rectangle
	}
	w, h := 150.0, 60.0
	if v == Circle {
		w, h = 100, 100
	}
	return Element{
		ID:     id,
		X:      defaultOriginX,
		Y:      defaultOriginY,
		Width:  w,
		Height: h,
		Body: &Shape{
			Variant:        v,
			FillColorHex:   DefaultFill,
			StrokeColorHex: DefaultStroke,
			StrokeWidthPx:  DefaultStrokeWidth,
		},
	}
}

func NewImage(id, ref string) Element {
	return Element{
		ID:     id,
		X:      defaultOriginX,
		Y:      defaultOriginY,
		Width:  200,
		Height: 200,
		Body:   &Image{SourceRef: ref},
	}
}

// New builds an element of the given kind with its defaults and then applies
// p on top of them. Invalid fields in p are ignored.
func New(kind Kind, id string, p Patch) Element {
	var e Element
	switch kind {
	case KindText:
		e = NewText(id)
	case KindShape:
		v := Rectangle
		if p.Variant != nil {
			v = *p.Variant
		}
		e = NewShape(id, v)
	case KindImage:
		e = NewImage(id, "")
	default:
		e = NewText(id)
	}
	e, _ = e.Apply(p)
	return e
}
