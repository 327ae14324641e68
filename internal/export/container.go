package export

import (
	"image"
	"log/slog"
	"sync/atomic"

	"vitae/internal/element"
	"vitae/internal/render"
)

// Box is one element laid out on the off-screen page. Only the field for the
// box's kind is set.
type Box struct {
	ID              string
	Frame           element.Rect
	RotationDegrees float64

	Style *element.Text
	Lines []render.TextLine

	Shape *element.Shape

	Bitmap  image.Image
	IsImage bool
}

// Container is a page-sized off-screen layout owned by exactly one export.
type Container struct {
	Width, Height float64
	Boxes         []Box

	released atomic.Bool
}

var live atomic.Int64

// Live reports how many containers have been built and not yet released.
func Live() int64 { return live.Load() }

// Build lays out elems in paint order; no elements gives a blank page. Image
// references are resolved here so the container no longer depends on
// anything the editor owns.
func Build(elems []element.Element, width, height float64, images render.ImageResolver, log *slog.Logger) (*Container, error) {
	if log == nil {
		log = slog.Default()
	}
	if width <= 0 || height <= 0 {
		return nil, &Error{Stage: StageLayout, Err: ErrPageSize}
	}

	c := &Container{Width: width, Height: height}
	for _, e := range element.PaintOrder(elems) {
		if err := e.Validate(); err != nil {
			log.Warn("export skipping element", "id", e.ID, "err", err)
			continue
		}
		b := Box{ID: e.ID, Frame: e.Bounds(), RotationDegrees: e.RotationDegrees}
		switch body := e.Body.(type) {
		case *element.Text:
			b.Style = body
			b.Lines = render.LayoutText(body, e.Width)
		case *element.Shape:
			b.Shape = body
		case *element.Image:
			b.IsImage = true
			if images != nil && body.SourceRef != "" {
				im, err := images.Resolve(body.SourceRef)
				if err != nil {
					log.Warn("export image unresolved", "id", e.ID, "ref", body.SourceRef, "err", err)
				}
				b.Bitmap = im
			}
		}
		c.Boxes = append(c.Boxes, b)
	}
	live.Add(1)
	return c, nil
}

// Release hands the container back. Calling it more than once is harmless.
func (c *Container) Release() {
	if c.released.CompareAndSwap(false, true) {
		live.Add(-1)
	}
}
