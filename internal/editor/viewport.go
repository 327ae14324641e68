package editor

import (
	"math"

	"vitae/internal/element"
)

const (
	MinZoom  = 0.1
	MaxZoom  = 3.0
	ZoomStep = 0.1
)

// Viewport maps page units to screen pixels: screen = page*Zoom + Pan.
type Viewport struct {
	Zoom float64
	PanX float64
	PanY float64
}

func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ToPage converts a screen position, already relative to the surface origin,
// to page units.
func (v Viewport) ToPage(screenX, screenY float64) element.Point {
	return element.Point{
		X: (screenX - v.PanX) / v.Zoom,
		Y: (screenY - v.PanY) / v.Zoom,
	}
}

func (v Viewport) ToScreen(p element.Point) (x, y float64) {
	return p.X*v.Zoom + v.PanX, p.Y*v.Zoom + v.PanY
}

func (v *Viewport) ZoomIn()  { v.SetZoom(v.Zoom + ZoomStep) }
func (v *Viewport) ZoomOut() { v.SetZoom(v.Zoom - ZoomStep) }

// SetZoom clamps z to [MinZoom, MaxZoom]; steps are kept on a 0.01 grid so
// repeated zooming does not drift.
func (v *Viewport) SetZoom(z float64) {
	if math.IsNaN(z) || math.IsInf(z, 0) {
		return
	}
	z = math.Round(z*100) / 100
	v.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}

func (v *Viewport) Pan(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
}

// Fit picks the largest zoom at which a page fits the screen with margin
// pixels to spare, and centers the page horizontally.
func (v *Viewport) Fit(screenW, screenH, pageW, pageH, margin float64) {
	zx := (screenW - 2*margin) / pageW
	zy := (screenH - 2*margin) / pageH
	v.SetZoom(math.Min(zx, zy))
	v.PanX = (screenW - pageW*v.Zoom) / 2
	v.PanY = margin
}
