package export

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"vitae/internal/render"
)

// DefaultScale is the supersampling factor for print output.
const DefaultScale = 2.0

// Rasterize paints the container on an opaque white bitmap of
// width*scale x height*scale pixels. A panic while drawing is returned as an
// error.
func Rasterize(c *Container, scale float64, fonts *render.FontCache) (im image.Image, err error) {
	defer func() {
		if p := recover(); p != nil {
			im = nil
			err = fmt.Errorf("rasterizer panic: %v", p)
		}
	}()

	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		scale = DefaultScale
	}
	if fonts == nil {
		fonts = render.NewFontCache()
	}
	w := int(math.Ceil(c.Width * scale))
	h := int(math.Ceil(c.Height * scale))
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()
	dc.Scale(scale, scale)

	for _, b := range c.Boxes {
		if err := drawBox(dc, b, fonts); err != nil {
			return nil, fmt.Errorf("box %s: %w", b.ID, err)
		}
	}
	return dc.Image(), nil
}

func drawBox(dc *gg.Context, b Box, fonts *render.FontCache) error {
	dc.Push()
	defer dc.Pop()

	f := b.Frame
	dc.Translate(f.X+f.Width/2, f.Y+f.Height/2)
	dc.Rotate(gg.Radians(b.RotationDegrees))
	dc.Translate(-f.Width/2, -f.Height/2)

	switch {
	case b.Style != nil:
		return render.DrawText(dc, fonts, b.Style, b.Lines)
	case b.Shape != nil:
		render.DrawShape(dc, f.Width, f.Height, b.Shape)
	case b.IsImage:
		render.DrawImage(dc, b.Bitmap, f.Width, f.Height)
	}
	return nil
}
