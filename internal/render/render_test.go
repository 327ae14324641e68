package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitae/internal/element"
)

var (
	red   = color.NRGBA{0xff, 0, 0, 0xff}
	green = color.NRGBA{0, 0x80, 0, 0xff}
	white = color.NRGBA{0xff, 0xff, 0xff, 0xff}
)

func at(im image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(im.At(x, y)).(color.NRGBA)
}

func rect(id string, x, y, w, h float64, fill string) element.Element {
	e := element.NewShape(id, element.Rectangle)
	e.X, e.Y, e.Width, e.Height = x, y, w, h
	s, _ := e.Shape()
	s.FillColorHex = fill
	s.StrokeColorHex = ""
	return e
}

func scene(elems ...element.Element) Scene {
	return Scene{
		PageWidth:  100,
		PageHeight: 100,
		Elements:   element.PaintOrder(elems),
		Zoom:       1,
		PanX:       50,
		PanY:       50,
	}
}

func TestRender_PageAndSurface(t *testing.T) {
	r := New(nil, nil, nil)
	im := r.Frame(200, 200, scene())
	assert.Equal(t, Light.Surface, color.Color(at(im, 10, 10)))
	assert.Equal(t, white, at(im, 100, 100))
}

func TestRender_Background(t *testing.T) {
	r := New(nil, nil, nil)
	s := scene()
	s.Background = color.White
	im := r.Frame(200, 200, s)
	assert.Equal(t, white, at(im, 10, 10))
}

func TestRender_DarkKeepsPaperWhite(t *testing.T) {
	s := scene()
	s.Dark = true
	s.ShowGrid = false
	im := New(nil, nil, nil).Frame(200, 200, s)
	assert.Equal(t, white, at(im, 100, 100))
	assert.Equal(t, Dark.Surface, color.Color(at(im, 10, 10)))
}

func TestRender_GridShowsOnPaper(t *testing.T) {
	s := scene()
	s.ShowGrid = true
	im := New(nil, nil, nil).Frame(200, 200, s)
	assert.NotEqual(t, white, at(im, 70, 65), "line at page x=20")
	assert.Equal(t, white, at(im, 80, 65))

	s.ShowGrid = false
	im = New(nil, nil, nil).Frame(200, 200, s)
	assert.Equal(t, white, at(im, 70, 65))
}

func TestRender_ShapeUnderViewport(t *testing.T) {
	r := New(nil, nil, nil)
	im := r.Frame(200, 200, scene(rect("a", 10, 10, 30, 30, "#ff0000")))
	assert.Equal(t, red, at(im, 75, 75))
	assert.Equal(t, white, at(im, 55, 55))

	s := scene(rect("a", 10, 10, 10, 10, "#ff0000"))
	s.Zoom, s.PanX, s.PanY = 2, 0, 0
	im = r.Frame(200, 200, s)
	assert.Equal(t, red, at(im, 30, 30))
	assert.NotEqual(t, red, at(im, 15, 15))
}

func TestRender_CircleIsRound(t *testing.T) {
	c := rect("c", 0, 0, 40, 40, "#ff0000")
	sh, _ := c.Shape()
	sh.Variant = element.Circle

	im := New(nil, nil, nil).Frame(200, 200, scene(c))
	assert.Equal(t, red, at(im, 70, 70))
	assert.Equal(t, white, at(im, 52, 52))
}

func TestRender_PaintOrder(t *testing.T) {
	below := rect("below", 0, 0, 50, 50, "#ff0000")
	below.ZOrder = 1
	above := rect("above", 0, 0, 50, 50, "#008000")
	above.ZOrder = 2

	im := New(nil, nil, nil).Frame(200, 200, scene(above, below))
	assert.Equal(t, green, at(im, 75, 75))
}

func TestRender_Rotation(t *testing.T) {
	bar := rect("bar", 0, 45, 100, 10, "#ff0000")
	bar.RotationDegrees = 90

	im := New(nil, nil, nil).Frame(200, 200, scene(bar))
	assert.Equal(t, red, at(im, 100, 60), "bar now runs vertically through the page center")
	assert.Equal(t, white, at(im, 55, 100))
}

func TestRender_SelectionHandles(t *testing.T) {
	e := rect("sel", 20, 20, 40, 40, "#ff0000")
	s := scene(e)
	s.SelectedID = "sel"

	im := New(nil, nil, nil).Frame(200, 200, s)
	blue := color.NRGBA{0x00, 0x7b, 0xff, 0xff}
	assert.Equal(t, blue, at(im, 70, 70))
	assert.Equal(t, blue, at(im, 110, 110))
	assert.Equal(t, red, at(im, 90, 90))

	s.SelectedID = ""
	im = New(nil, nil, nil).Frame(200, 200, s)
	assert.Equal(t, red, at(im, 71, 71))
}

func TestRender_TextInk(t *testing.T) {
	e := element.NewText("t")
	e.X, e.Y, e.Width, e.Height = 0, 0, 100, 60
	txt, _ := e.Text()
	txt.Content = "WWW\nWWW"
	txt.FontSizePt = 20

	im := New(nil, nil, nil).Frame(200, 200, scene(e))
	dark := 0
	for y := 50; y < 110; y++ {
		for x := 50; x < 150; x++ {
			if at(im, x, y).R < 0x80 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 50)
}

func TestRender_ImageAndPlaceholder(t *testing.T) {
	solid := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(solid.Pix); i += 4 {
		copy(solid.Pix[i:], []byte{0, 0x80, 0, 0xff})
	}
	resolver := ImageResolverFunc(func(ref string) (image.Image, error) {
		if ref == "logo.png" {
			return solid, nil
		}
		return nil, errors.New("missing")
	})

	logo := element.NewImage("logo", "logo.png")
	logo.X, logo.Y, logo.Width, logo.Height = 0, 0, 40, 40
	im := New(nil, resolver, nil).Frame(200, 200, scene(logo))
	assert.Equal(t, green, at(im, 70, 70))

	missing := element.NewImage("gone", "gone.png")
	missing.X, missing.Y, missing.Width, missing.Height = 0, 0, 40, 40
	im = New(nil, resolver, nil).Frame(200, 200, scene(missing))
	assert.Equal(t, color.NRGBA{0xee, 0xee, 0xee, 0xff}, at(im, 60, 70))
}

func TestFontCache_ReusesFaces(t *testing.T) {
	c := NewFontCache()
	txt := &element.Text{FontSizePt: 16, FontFamily: "Arial", FontWeight: element.WeightBold}
	a, err := c.Face(txt)
	require.NoError(t, err)
	b, err := c.Face(txt)
	require.NoError(t, err)
	assert.Same(t, a, b)

	mono := *txt
	mono.FontFamily = "Courier New"
	m, err := c.Face(&mono)
	require.NoError(t, err)
	assert.NotSame(t, a, m)
}
