package element

import (
	"encoding/json"
	"fmt"
)

// wireElement is the flat JSON shape used for local snapshots.
type wireElement struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
	ZIndex   int     `json:"zIndex"`

	Content        *string  `json:"content,omitempty"`
	FontSize       *float64 `json:"fontSize,omitempty"`
	FontFamily     string   `json:"fontFamily,omitempty"`
	FontWeight     string   `json:"fontWeight,omitempty"`
	FontStyle      string   `json:"fontStyle,omitempty"`
	TextAlign      string   `json:"textAlign,omitempty"`
	Color          string   `json:"color,omitempty"`
	TextDecoration string   `json:"textDecoration,omitempty"`

	BackgroundColor string   `json:"backgroundColor,omitempty"`
	BorderColor     string   `json:"borderColor,omitempty"`
	BorderWidth     *float64 `json:"borderWidth,omitempty"`
	BorderRadius    *float64 `json:"borderRadius,omitempty"`
	Shape           string   `json:"shape,omitempty"`

	Src string `json:"src,omitempty"`
}

func (e Element) MarshalJSON() ([]byte, error) {
	if err := e.Validate(); err != nil {
		return nil, fmt.Errorf("marshal element %s: %w", e.ID, err)
	}
	w := wireElement{
		ID:       e.ID,
		Type:     e.Kind().String(),
		X:        e.X,
		Y:        e.Y,
		Width:    e.Width,
		Height:   e.Height,
		Rotation: e.RotationDegrees,
		ZIndex:   e.ZOrder,
	}
	switch b := e.Body.(type) {
	case *Text:
		w.Content = &b.Content
		w.FontSize = &b.FontSizePt
		w.FontFamily = b.FontFamily
		w.FontWeight = string(b.FontWeight)
		w.FontStyle = string(b.FontStyle)
		w.TextAlign = string(b.TextAlign)
		w.Color = b.ColorHex
		w.TextDecoration = string(b.TextDecoration)
	case *Shape:
		w.Shape = string(b.Variant)
		w.BackgroundColor = b.FillColorHex
		w.BorderColor = b.StrokeColorHex
		w.BorderWidth = &b.StrokeWidthPx
		if b.CornerRadiusPx != 0 {
			w.BorderRadius = &b.CornerRadiusPx
		}
	case *Image:
		w.Src = b.SourceRef
	}
	return json.Marshal(w)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	kind, err := ParseKind(w.Type)
	if err != nil {
		return fmt.Errorf("element %s: %w", w.ID, err)
	}
	out := Element{
		ID:              w.ID,
		X:               w.X,
		Y:               w.Y,
		Width:           w.Width,
		Height:          w.Height,
		RotationDegrees: w.Rotation,
		ZOrder:          w.ZIndex,
	}
	switch kind {
	case KindText:
		t := NewText("").Body.(*Text)
		if w.Content != nil {
			t.Content = *w.Content
		}
		if w.FontSize != nil && finite(*w.FontSize) && *w.FontSize > 0 {
			t.FontSizePt = *w.FontSize
		}
		if w.FontFamily != "" {
			t.FontFamily = w.FontFamily
		}
		if fw := FontWeight(w.FontWeight); fw.Valid() {
			t.FontWeight = fw
		}
		if fs := FontStyle(w.FontStyle); fs.Valid() {
			t.FontStyle = fs
		}
		if ta := TextAlign(w.TextAlign); ta.Valid() {
			t.TextAlign = ta
		}
		if td := TextDecoration(w.TextDecoration); td.Valid() {
			t.TextDecoration = td
		}
		if validColor(w.Color) {
			t.ColorHex = w.Color
		}
		out.Body = t
	case KindShape:
		s := &Shape{
			Variant:        ShapeVariant(w.Shape),
			FillColorHex:   w.BackgroundColor,
			StrokeColorHex: w.BorderColor,
		}
		if !s.Variant.Valid() {
			s.Variant = Rectangle
		}
		if w.BorderWidth != nil && finite(*w.BorderWidth) && *w.BorderWidth >= 0 {
			s.StrokeWidthPx = *w.BorderWidth
		}
		if w.BorderRadius != nil && finite(*w.BorderRadius) && *w.BorderRadius >= 0 {
			s.CornerRadiusPx = *w.BorderRadius
		}
		out.Body = s
	case KindImage:
		out.Body = &Image{SourceRef: w.Src}
	}
	if err := out.Validate(); err != nil {
		return fmt.Errorf("element %s: %w", w.ID, err)
	}
	*e = out
	return nil
}
