// Package render draws a document page onto a gg context: grid, page,
// elements in paint order and the selection affordance.
package render

import (
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/fogleman/gg"

	"vitae/internal/element"
)

const (
	GridSize        = 20.0
	SelectionMargin = 5.0
	HandleSize      = 8.0
	SelectionDash   = 5.0
)

// Scene is everything one frame depends on.
type Scene struct {
	PageWidth  float64
	PageHeight float64
	// Elements must already be in paint order.
	Elements   []element.Element
	SelectedID string

	Zoom       float64
	PanX, PanY float64
	ShowGrid   bool
	Dark       bool

	// Background overrides the theme's surface color when set.
	Background color.Color
}

type Palette struct {
	Surface   color.Color
	Page      color.Color
	Grid      color.Color
	Border    color.Color
	Selection color.Color
}

var (
	Light = Palette{
		Surface:   color.NRGBA{0xe9, 0xec, 0xef, 0xff},
		Page:      color.White,
		Grid:      element.ColorOr("#f0f0f0", color.White),
		Border:    element.ColorOr("#cccccc", color.Gray{0xcc}),
		Selection: element.ColorOr("#007bff", color.Black),
	}
	Dark = Palette{
		Surface:   color.NRGBA{0x12, 0x12, 0x12, 0xff},
		Page:      color.White,
		Grid:      element.ColorOr("#333333", color.Black),
		Border:    element.ColorOr("#666666", color.Gray{0x66}),
		Selection: element.ColorOr("#007bff", color.White),
	}
)

type Renderer struct {
	fonts  *FontCache
	images ImageResolver
	log    *slog.Logger
}

// New returns a renderer. A nil font cache gets a private one, nil images
// draw every image element as a placeholder.
func New(fonts *FontCache, images ImageResolver, log *slog.Logger) *Renderer {
	if fonts == nil {
		fonts = NewFontCache()
	}
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{fonts: fonts, images: images, log: log}
}

// Frame renders the scene into a new width x height image.
func (r *Renderer) Frame(width, height int, s Scene) image.Image {
	dc := gg.NewContext(width, height)
	r.Render(dc, s)
	return dc.Image()
}

// Render redraws the whole surface for s.
func (r *Renderer) Render(dc *gg.Context, s Scene) {
	pal := Light
	if s.Dark {
		pal = Dark
	}
	zoom := s.Zoom
	if zoom <= 0 || !finite(zoom) {
		zoom = 1
	}

	dc.Push()
	defer dc.Pop()

	bg := s.Background
	if bg == nil {
		bg = pal.Surface
	}
	dc.SetColor(bg)
	dc.Clear()

	dc.Scale(zoom, zoom)
	dc.Translate(s.PanX/zoom, s.PanY/zoom)

	dc.SetColor(pal.Page)
	dc.DrawRectangle(0, 0, s.PageWidth, s.PageHeight)
	dc.Fill()

	// grid goes over the paper fill, otherwise the page hides it
	if s.ShowGrid {
		r.drawGrid(dc, s.PageWidth, s.PageHeight, pal.Grid)
	}

	dc.SetColor(pal.Border)
	dc.SetLineWidth(2)
	dc.DrawRectangle(0, 0, s.PageWidth, s.PageHeight)
	dc.Stroke()

	var selected *element.Element
	for i := range s.Elements {
		r.DrawElement(dc, s.Elements[i])
		if s.Elements[i].ID == s.SelectedID && s.SelectedID != "" {
			selected = &s.Elements[i]
		}
	}
	if selected != nil {
		drawSelection(dc, *selected, zoom, pal.Selection)
	}
}

// gg strokes in device pixels, so widths here are the on-screen widths.
func (r *Renderer) drawGrid(dc *gg.Context, w, h float64, c color.Color) {
	dc.SetColor(c)
	dc.SetLineWidth(1)
	for x := 0.0; x <= w; x += GridSize {
		dc.DrawLine(x, 0, x, h)
	}
	for y := 0.0; y <= h; y += GridSize {
		dc.DrawLine(0, y, w, y)
	}
	dc.Stroke()
}

func drawSelection(dc *gg.Context, e element.Element, zoom float64, c color.Color) {
	box := e.Bounds().Expand(SelectionMargin)
	dc.SetColor(c)
	dc.SetLineWidth(2)
	dc.SetDash(SelectionDash, SelectionDash)
	dc.DrawRectangle(box.X, box.Y, box.Width, box.Height)
	dc.Stroke()
	dc.SetDash()

	hs := HandleSize / zoom
	for _, p := range []element.Point{
		{X: e.X, Y: e.Y},
		{X: e.X + e.Width, Y: e.Y},
		{X: e.X, Y: e.Y + e.Height},
		{X: e.X + e.Width, Y: e.Y + e.Height},
	} {
		dc.DrawRectangle(p.X-hs/2, p.Y-hs/2, hs, hs)
	}
	dc.Fill()
}

// DrawElement draws one element in page units under the context's current
// transform.
func (r *Renderer) DrawElement(dc *gg.Context, e element.Element) {
	dc.Push()
	defer dc.Pop()

	cx, cy := e.X+e.Width/2, e.Y+e.Height/2
	dc.Translate(cx, cy)
	dc.Rotate(gg.Radians(e.RotationDegrees))
	dc.Translate(-e.Width/2, -e.Height/2)

	switch b := e.Body.(type) {
	case *element.Text:
		if err := DrawText(dc, r.fonts, b, LayoutText(b, e.Width)); err != nil {
			r.log.Warn("skipping text element", "id", e.ID, "err", err)
		}
	case *element.Shape:
		DrawShape(dc, e.Width, e.Height, b)
	case *element.Image:
		DrawImage(dc, r.resolve(e.ID, b), e.Width, e.Height)
	}
}

func (r *Renderer) resolve(id string, img *element.Image) image.Image {
	if r.images == nil || img.SourceRef == "" {
		return nil
	}
	src, err := r.images.Resolve(img.SourceRef)
	if err != nil {
		r.log.Debug("image unresolved", "id", id, "ref", img.SourceRef, "err", err)
		return nil
	}
	return src
}

// TextLine is one laid out line of a text element, relative to the element's
// top-left corner. Frac is the share of the measured width left of X.
type TextLine struct {
	Text      string
	X         float64
	Baseline  float64
	Frac      float64
	Underline bool
}

// LayoutText splits a text body into lines positioned inside a box of the
// given width.
func LayoutText(t *element.Text, width float64) []TextLine {
	ax, frac := t.Anchor(width)
	lines := t.Lines()
	out := make([]TextLine, len(lines))
	for i, l := range lines {
		out[i] = TextLine{
			Text:      l,
			X:         ax,
			Baseline:  t.Baseline(i),
			Frac:      frac,
			Underline: t.TextDecoration == element.DecorationUnderline && l != "",
		}
	}
	return out
}

// DrawText draws laid out lines in the style of t. Glyphs are rasterized at
// device size: the face is scaled by the current transform and the context
// is scaled back down while drawing.
func DrawText(dc *gg.Context, fonts *FontCache, t *element.Text, lines []TextLine) error {
	k := scaleOf(dc)
	sized := *t
	sized.FontSizePt = t.FontSizePt * k
	face, err := fonts.Face(&sized)
	if err != nil {
		return err
	}

	dc.Push()
	defer dc.Pop()
	dc.Scale(1/k, 1/k)
	dc.SetFontFace(face)
	dc.SetColor(element.ColorOr(t.ColorHex, color.Black))
	dc.SetLineWidth(math.Max(1, k))

	for _, l := range lines {
		x, y := l.X*k, l.Baseline*k
		dc.DrawStringAnchored(l.Text, x, y, l.Frac, 0)
		if l.Underline {
			tw, _ := dc.MeasureString(l.Text)
			start := x - l.Frac*tw
			dc.DrawLine(start, y+2*k, start+tw, y+2*k)
			dc.Stroke()
		}
	}
	return nil
}

// DrawShape fills then strokes a shape occupying (0,0)-(w,h).
func DrawShape(dc *gg.Context, w, h float64, s *element.Shape) {
	path := func() {
		switch {
		case s.Variant == element.Circle:
			dc.DrawCircle(w/2, h/2, math.Min(w, h)/2)
		case s.CornerRadiusPx > 0:
			rad := math.Min(s.CornerRadiusPx, math.Min(w, h)/2)
			dc.DrawRoundedRectangle(0, 0, w, h, rad)
		default:
			dc.DrawRectangle(0, 0, w, h)
		}
	}

	if fill, err := element.ParseColor(s.FillColorHex); err == nil {
		dc.SetColor(fill)
		path()
		dc.Fill()
	}
	if stroke, err := element.ParseColor(s.StrokeColorHex); err == nil && s.StrokeWidthPx > 0 {
		dc.SetColor(stroke)
		dc.SetLineWidth(s.StrokeWidthPx * scaleOf(dc))
		path()
		dc.Stroke()
	}
}

// DrawImage stretches src over (0,0)-(w,h). A nil or empty src draws a
// placeholder box with a cross.
func DrawImage(dc *gg.Context, src image.Image, w, h float64) {
	if src == nil || src.Bounds().Empty() {
		drawPlaceholder(dc, w, h)
		return
	}
	b := src.Bounds()
	dc.Push()
	dc.Scale(w/float64(b.Dx()), h/float64(b.Dy()))
	dc.DrawImage(src, -b.Min.X, -b.Min.Y)
	dc.Pop()
}

func drawPlaceholder(dc *gg.Context, w, h float64) {
	dc.SetColor(color.NRGBA{0xee, 0xee, 0xee, 0xff})
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()
	dc.SetColor(color.NRGBA{0xbb, 0xbb, 0xbb, 0xff})
	dc.SetLineWidth(1)
	dc.DrawRectangle(0, 0, w, h)
	dc.DrawLine(0, 0, w, h)
	dc.DrawLine(w, 0, 0, h)
	dc.Stroke()
}

// scaleOf is the length of a unit vector under the current transform.
func scaleOf(dc *gg.Context) float64 {
	x0, y0 := dc.TransformPoint(0, 0)
	x1, y1 := dc.TransformPoint(1, 0)
	k := math.Hypot(x1-x0, y1-y0)
	if k <= 0 || !finite(k) {
		return 1
	}
	return k
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
