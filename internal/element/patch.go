package element

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Patch is a partial update. Nil fields are left alone. Fields that do not
// belong to the element's kind are ignored.
type Patch struct {
	X, Y            *float64
	Width, Height   *float64
	RotationDegrees *float64

	Content        *string
	FontSizePt     *float64
	FontFamily     *string
	FontWeight     *FontWeight
	FontStyle      *FontStyle
	TextAlign      *TextAlign
	TextDecoration *TextDecoration
	ColorHex       *string

	Variant        *ShapeVariant
	FillColorHex   *string
	StrokeColorHex *string
	StrokeWidthPx  *float64
	CornerRadiusPx *float64

	SourceRef *string
}

func Ptr[T any](v T) *T { return &v }

// Apply returns a copy of e with p merged in, plus the names of the fields
// that were rejected. A rejected field keeps its previous value.
func (e Element) Apply(p Patch) (Element, []string) {
	out := e.Clone()
	var rejected []string
	reject := func(name string) { rejected = append(rejected, name) }

	setFloat := func(name string, dst *float64, v *float64, ok func(float64) bool) {
		if v == nil {
			return
		}
		if !finite(*v) || (ok != nil && !ok(*v)) {
			reject(name)
			return
		}
		*dst = *v
	}
	positive := func(v float64) bool { return v > 0 }
	nonNegative := func(v float64) bool { return v >= 0 }

	setFloat("x", &out.X, p.X, nil)
	setFloat("y", &out.Y, p.Y, nil)
	setFloat("width", &out.Width, p.Width, positive)
	setFloat("height", &out.Height, p.Height, positive)
	setFloat("rotation", &out.RotationDegrees, p.RotationDegrees, nil)

	switch b := out.Body.(type) {
	case *Text:
		if p.Content != nil {
			b.Content = *p.Content
		}
		setFloat("fontSize", &b.FontSizePt, p.FontSizePt, positive)
		if p.FontFamily != nil {
			if f := strings.TrimSpace(*p.FontFamily); f != "" {
				b.FontFamily = f
			} else {
				reject("fontFamily")
			}
		}
		if p.FontWeight != nil {
			if p.FontWeight.Valid() {
				b.FontWeight = *p.FontWeight
			} else {
				reject("fontWeight")
			}
		}
		if p.FontStyle != nil {
			if p.FontStyle.Valid() {
				b.FontStyle = *p.FontStyle
			} else {
				reject("fontStyle")
			}
		}
		if p.TextAlign != nil {
			if p.TextAlign.Valid() {
				b.TextAlign = *p.TextAlign
			} else {
				reject("textAlign")
			}
		}
		if p.TextDecoration != nil {
			if p.TextDecoration.Valid() {
				b.TextDecoration = *p.TextDecoration
			} else {
				reject("textDecoration")
			}
		}
		if p.ColorHex != nil {
			if _, err := ParseColor(*p.ColorHex); err == nil {
				b.ColorHex = *p.ColorHex
			} else {
				reject("color")
			}
		}
	case *Shape:
		if p.Variant != nil {
			if p.Variant.Valid() {
				b.Variant = *p.Variant
			} else {
				reject("shape")
			}
		}
		if p.FillColorHex != nil {
			if *p.FillColorHex == "" || validColor(*p.FillColorHex) {
				b.FillColorHex = *p.FillColorHex
			} else {
				reject("fill")
			}
		}
		if p.StrokeColorHex != nil {
			if *p.StrokeColorHex == "" || validColor(*p.StrokeColorHex) {
				b.StrokeColorHex = *p.StrokeColorHex
			} else {
				reject("stroke")
			}
		}
		setFloat("strokeWidth", &b.StrokeWidthPx, p.StrokeWidthPx, nonNegative)
		setFloat("cornerRadius", &b.CornerRadiusPx, p.CornerRadiusPx, nonNegative)
	case *Image:
		if p.SourceRef != nil {
			b.SourceRef = *p.SourceRef
		}
	}
	return out, rejected
}

func validColor(s string) bool {
	_, err := ParseColor(s)
	return err == nil
}

var ErrUnknownField = errors.New("unknown property")

// Field names accepted by ParseField.
var Fields = []string{
	"x", "y", "width", "height", "rotation",
	"content", "fontSize", "fontFamily", "fontWeight", "fontStyle",
	"textAlign", "textDecoration", "color",
	"shape", "fill", "stroke", "strokeWidth", "cornerRadius", "src",
}

// ParseField turns a raw property-panel value into a patch. Numbers are
// clamped to the ranges the panel allows.
func ParseField(field, raw string) (Patch, error) {
	var p Patch
	num := func(lo, hi float64) (*float64, error) {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil || !finite(v) {
			return nil, fmt.Errorf("%s: %q is not a number", field, raw)
		}
		if !math.IsInf(lo, 0) && v < lo {
			v = lo
		}
		if !math.IsInf(hi, 0) && v > hi {
			v = hi
		}
		return &v, nil
	}
	inf := math.Inf(1)
	var err error

	value := strings.TrimSpace(raw)
	switch strings.ToLower(field) {
	case "x":
		p.X, err = num(-inf, inf)
	case "y":
		p.Y, err = num(-inf, inf)
	case "width", "w":
		p.Width, err = num(10, inf)
	case "height", "h":
		p.Height, err = num(10, inf)
	case "rotation", "rotate":
		p.RotationDegrees, err = num(-inf, inf)
	case "content", "text":
		p.Content = Ptr(strings.ReplaceAll(raw, `\n`, "\n"))
	case "fontsize", "size":
		p.FontSizePt, err = num(8, 72)
	case "fontfamily", "font":
		p.FontFamily = Ptr(value)
	case "fontweight", "weight":
		p.FontWeight = Ptr(FontWeight(strings.ToLower(value)))
	case "fontstyle", "style":
		p.FontStyle = Ptr(FontStyle(strings.ToLower(value)))
	case "textalign", "align":
		p.TextAlign = Ptr(TextAlign(strings.ToLower(value)))
	case "textdecoration", "decoration":
		p.TextDecoration = Ptr(TextDecoration(strings.ToLower(value)))
	case "color":
		p.ColorHex = Ptr(value)
	case "shape", "variant":
		p.Variant = Ptr(ShapeVariant(strings.ToLower(value)))
	case "fill", "background":
		p.FillColorHex = Ptr(value)
	case "stroke", "border":
		p.StrokeColorHex = Ptr(value)
	case "strokewidth", "borderwidth":
		p.StrokeWidthPx, err = num(0, 20)
	case "cornerradius", "radius":
		p.CornerRadiusPx, err = num(0, inf)
	case "src", "source":
		p.SourceRef = Ptr(value)
	default:
		return p, fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	return p, err
}
