package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fogleman/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitae/internal/element"
	"vitae/internal/render"
)

func sample() []element.Element {
	name := element.NewText("name")
	txt, _ := name.Text()
	txt.Content = "Jane Doe\nEngineer"
	txt.TextAlign = element.AlignCenter
	txt.TextDecoration = element.DecorationUnderline
	name.ZOrder = 2

	bar := element.NewShape("bar", element.Rectangle)
	bar.X, bar.Y, bar.Width, bar.Height = 10, 10, 50, 20
	s, _ := bar.Shape()
	s.FillColorHex = "#ff0000"
	s.StrokeColorHex = ""
	bar.ZOrder = 1

	return []element.Element{name, bar}
}

func TestFilename(t *testing.T) {
	cases := []struct {
		name string
		f    Format
		want string
	}{
		{"Jane Doe", FormatPDF, "Jane_Doe_Resume.pdf"},
		{"  José   Álvarez ", FormatPDF, "Jose_Alvarez_Resume.pdf"},
		{"Jane\tQ. Doe", FormatPNG, "Jane_Q._Doe_Resume.png"},
		{"AC/DC", FormatPDF, "ACDC_Resume.pdf"},
		{"", FormatPDF, "Resume.pdf"},
		{"   ", FormatPNG, "Resume.png"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, Filename(tc.name, tc.f))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, f)
	f, err = ParseFormat("png")
	require.NoError(t, err)
	assert.Equal(t, FormatPNG, f)
	_, err = ParseFormat("docx")
	assert.Error(t, err)
}

func TestBuild_LaysOutInPaintOrder(t *testing.T) {
	before := Live()
	elems := sample()
	c, err := Build(elems, 1200, 1600, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, before+1, Live())

	require.Len(t, c.Boxes, 2)
	assert.Equal(t, "bar", c.Boxes[0].ID)
	assert.Equal(t, "name", c.Boxes[1].ID)

	lines := c.Boxes[1].Lines
	require.Len(t, lines, 2)
	assert.Equal(t, "Engineer", lines[1].Text)
	assert.Equal(t, 100.0, lines[0].X, "centered in a 200 wide box")
	assert.Equal(t, 0.5, lines[0].Frac)
	assert.Equal(t, 16.0, lines[0].Baseline)
	assert.InDelta(t, 16+16*1.4, lines[1].Baseline, 1e-9)
	assert.True(t, lines[0].Underline)

	txt, _ := elems[0].Text()
	txt.Content = "changed"
	assert.Equal(t, "Jane Doe\nEngineer", c.Boxes[1].Style.Content)

	c.Release()
	c.Release()
	assert.Equal(t, before, Live())
}

func TestBuild_BadPageSize(t *testing.T) {
	_, err := Build(sample(), 0, 1600, nil, nil)
	require.ErrorIs(t, err, ErrPageSize)
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, StageLayout, exportErr.Stage)
}

func TestExport_EmptyDocumentIsBlankPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blank.png")
	_, err := Export(context.Background(), Request{
		PageWidth:  40,
		PageHeight: 30,
		Format:     FormatPNG,
		Path:       path,
		Scale:      1,
	})
	require.NoError(t, err)

	im, err := gg.LoadPNG(path)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 40, 30), im.Bounds())
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			require.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, color.NRGBAModel.Convert(im.At(x, y)))
		}
	}

	pdf := filepath.Join(t.TempDir(), "blank.pdf")
	_, err = Export(context.Background(), Request{PageWidth: 40, PageHeight: 30, Path: pdf})
	require.NoError(t, err)
	data, err := os.ReadFile(pdf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestRasterize_ScaledOnWhite(t *testing.T) {
	c, err := Build(sample(), 100, 80, nil, nil)
	require.NoError(t, err)
	defer c.Release()

	im, err := Rasterize(c, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 160), im.Bounds())

	at := func(x, y int) color.NRGBA { return color.NRGBAModel.Convert(im.At(x, y)).(color.NRGBA) }
	assert.Equal(t, color.NRGBA{0xff, 0xff, 0xff, 0xff}, at(1, 159))
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0xff}, at(40, 30))
}

type panicImage struct{}

func (panicImage) ColorModel() color.Model { return color.RGBAModel }
func (panicImage) Bounds() image.Rectangle { return image.Rect(0, 0, 2, 2) }
func (panicImage) At(int, int) color.Color { panic("broken bitmap") }

func TestExport_RasterizePanicIsReported(t *testing.T) {
	before := Live()
	logo := element.NewImage("logo", "logo.png")
	logo.X, logo.Y, logo.Width, logo.Height = 0, 0, 50, 50
	dir := t.TempDir()

	_, err := Export(context.Background(), Request{
		Elements:   []element.Element{logo},
		PageWidth:  100,
		PageHeight: 100,
		Dir:        dir,
		Images: render.ImageResolverFunc(func(string) (image.Image, error) {
			return panicImage{}, nil
		}),
	})
	var exportErr *Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, StageRasterize, exportErr.Stage)
	assert.Contains(t, err.Error(), "broken bitmap")
	assert.Equal(t, before, Live())

	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestExport_Cancelled(t *testing.T) {
	before := Live()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Export(ctx, Request{Elements: sample(), PageWidth: 100, PageHeight: 100, Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, before, Live())
}

func TestExport_PDF(t *testing.T) {
	dir := t.TempDir()
	res := <-Start(context.Background(), Request{
		Elements:   sample(),
		PageWidth:  300,
		PageHeight: 400,
		Name:       "Jane Doe",
		Dir:        dir,
	})
	require.NoError(t, res.Err)
	assert.Equal(t, filepath.Join(dir, "Jane_Doe_Resume.pdf"), res.Path)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestExport_PNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "page.png")
	got, err := Export(context.Background(), Request{
		Elements:   sample(),
		PageWidth:  120,
		PageHeight: 160,
		Format:     FormatPNG,
		Path:       path,
		Scale:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, path, got)

	im, err := gg.LoadPNG(path)
	require.NoError(t, err)
	assert.Equal(t, 240, im.Bounds().Dx())
	assert.Equal(t, 320, im.Bounds().Dy())
}

func TestWrite_RemovesPartialFile(t *testing.T) {
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	for _, f := range []Format{FormatPNG, FormatPDF} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "page."+string(f))
			err := write(path, f, empty, 10, 10)
			require.Error(t, err)
			_, statErr := os.Stat(path)
			assert.True(t, os.IsNotExist(statErr))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	err := &Error{Stage: StagePackage, Err: os.ErrPermission}
	assert.True(t, errors.Is(err, os.ErrPermission))
	assert.Equal(t, "export failed during package: permission denied", err.Error())
}
