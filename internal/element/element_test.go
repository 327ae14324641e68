package element

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText_Defaults(t *testing.T) {
	e := NewText("text-1")
	txt, ok := e.Text()
	require.True(t, ok)
	assert.Equal(t, KindText, e.Kind())
	assert.Equal(t, "New Text", txt.Content)
	assert.Equal(t, 16.0, txt.FontSizePt)
	assert.Equal(t, AlignLeft, txt.TextAlign)
	assert.Equal(t, "#000000", txt.ColorHex)
	assert.NoError(t, e.Validate())
}

func TestNewShape_CircleIsSquare(t *testing.T) {
	c := NewShape("circle-1", Circle)
	assert.Equal(t, 100.0, c.Width)
	assert.Equal(t, 100.0, c.Height)

	r := NewShape("rectangle-1", Rectangle)
	assert.Equal(t, 150.0, r.Width)
	assert.Equal(t, 60.0, r.Height)
	s, _ := r.Shape()
	assert.Equal(t, DefaultFill, s.FillColorHex)
	assert.Equal(t, 2.0, s.StrokeWidthPx)
}

func TestNew_AppliesOriginDefaults(t *testing.T) {
	e := New(KindShape, "shape-1", Patch{
		Variant: Ptr(Circle),
		X:       Ptr(100.0), Y: Ptr(100.0),
		Width: Ptr(100.0), Height: Ptr(100.0),
	})
	s, ok := e.Shape()
	require.True(t, ok)
	assert.Equal(t, Circle, s.Variant)
	assert.Equal(t, Rect{X: 100, Y: 100, Width: 100, Height: 100}, e.Bounds())
}

func TestApply_RejectsNonFinite(t *testing.T) {
	e := NewText("text-1")
	out, rejected := e.Apply(Patch{
		X:          Ptr(math.NaN()),
		Width:      Ptr(math.Inf(1)),
		Height:     Ptr(-3.0),
		FontSizePt: Ptr(24.0),
	})
	assert.ElementsMatch(t, []string{"x", "width", "height"}, rejected)
	assert.Equal(t, e.X, out.X)
	assert.Equal(t, e.Width, out.Width)
	assert.Equal(t, e.Height, out.Height)
	txt, _ := out.Text()
	assert.Equal(t, 24.0, txt.FontSizePt)
	assert.NoError(t, out.Validate())
}

func TestApply_DoesNotAliasSource(t *testing.T) {
	e := NewText("text-1")
	out, _ := e.Apply(Patch{Content: Ptr("Jane Doe")})
	orig, _ := e.Text()
	assert.Equal(t, "New Text", orig.Content)
	got, _ := out.Text()
	assert.Equal(t, "Jane Doe", got.Content)
}

func TestApply_IgnoresOtherKindFields(t *testing.T) {
	e := NewShape("shape-1", Rectangle)
	out, rejected := e.Apply(Patch{FontSizePt: Ptr(30.0), ColorHex: Ptr("#ff0000")})
	assert.Empty(t, rejected)
	assert.Equal(t, e.Body, out.Body)
}

func TestApply_InvalidEnumsAndColors(t *testing.T) {
	e := NewText("text-1")
	_, rejected := e.Apply(Patch{
		TextAlign: Ptr(TextAlign("justify")),
		ColorHex:  Ptr("blue"),
	})
	assert.ElementsMatch(t, []string{"textAlign", "color"}, rejected)

	s := NewShape("shape-1", Rectangle)
	out, rejected := s.Apply(Patch{FillColorHex: Ptr(""), StrokeColorHex: Ptr("#abc")})
	assert.Empty(t, rejected)
	shape, _ := out.Shape()
	assert.Equal(t, "", shape.FillColorHex)
	assert.Equal(t, "#abc", shape.StrokeColorHex)
}

func TestParseField(t *testing.T) {
	p, err := ParseField("fontSize", "24")
	require.NoError(t, err)
	assert.Equal(t, 24.0, *p.FontSizePt)

	p, err = ParseField("fontSize", "200")
	require.NoError(t, err)
	assert.Equal(t, 72.0, *p.FontSizePt)

	p, err = ParseField("width", "2")
	require.NoError(t, err)
	assert.Equal(t, 10.0, *p.Width)

	_, err = ParseField("x", "abc")
	assert.Error(t, err)

	_, err = ParseField("x", "NaN")
	assert.Error(t, err)

	_, err = ParseField("opacity", "1")
	assert.ErrorIs(t, err, ErrUnknownField)

	p, err = ParseField("content", `line one\nline two`)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", *p.Content)
}

func TestRect_ContainsEdges(t *testing.T) {
	r := Rect{X: 100, Y: 100, Width: 100, Height: 100}
	assert.True(t, r.Contains(Point{100, 100}))
	assert.True(t, r.Contains(Point{200, 200}))
	assert.False(t, r.Contains(Point{200.5, 150}))
}

func TestContainsRotated(t *testing.T) {
	e := NewShape("shape-1", Rectangle)
	e.X, e.Y, e.Width, e.Height = 0, 0, 200, 20
	e.RotationDegrees = 90
	// the bar now stands upright around its center (100, 10)
	assert.True(t, e.ContainsRotated(Point{100, 80}))
	assert.False(t, e.ContainsRotated(Point{190, 10}))
	assert.True(t, e.Bounds().Contains(Point{190, 10}))
}

func TestTextLayoutRules(t *testing.T) {
	txt := &Text{Content: "a\nb", FontSizePt: 10, TextAlign: AlignRight}
	assert.Equal(t, []string{"a", "b"}, txt.Lines())
	assert.InDelta(t, 14.0, txt.LineHeight(), 1e-9)
	assert.InDelta(t, 24.0, txt.Baseline(1), 1e-9)
	x, frac := txt.Anchor(300)
	assert.Equal(t, 300.0, x)
	assert.Equal(t, 1.0, frac)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#1DA1F2")
	require.NoError(t, err)
	r, g, b, a := c.RGBA()
	assert.Equal(t, uint32(0x1d1d), r)
	assert.Equal(t, uint32(0xa1a1), g)
	assert.Equal(t, uint32(0xf2f2), b)
	assert.Equal(t, uint32(0xffff), a)

	_, err = ParseColor("#12")
	assert.Error(t, err)
}

func TestJSON_Snapshot(t *testing.T) {
	elems := []Element{
		New(KindText, "text-1", Patch{Content: Ptr("Jane Doe"), FontWeight: Ptr(WeightBold)}),
		NewShape("circle-1", Circle),
		NewImage("image-1", "avatar.png"),
	}
	elems[0].ZOrder, elems[1].ZOrder, elems[2].ZOrder = 1, 2, 3

	data, err := json.Marshal(elems)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"text"`)
	assert.Contains(t, string(data), `"zIndex":2`)

	var back []Element
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, elems, back)
}

func TestJSON_RejectsBadGeometry(t *testing.T) {
	var e Element
	err := json.Unmarshal([]byte(`{"id":"t","type":"text","x":0,"y":0,"width":0,"height":10}`), &e)
	assert.ErrorIs(t, err, ErrEmptyElement)

	err = json.Unmarshal([]byte(`{"id":"t","type":"polygon","width":1,"height":1}`), &e)
	assert.Error(t, err)
}
