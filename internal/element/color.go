package element

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts #rgb and #rrggbb.
func ParseColor(hex string) (color.Color, error) {
	s := strings.TrimSpace(hex)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	if len(s) != 4 && len(s) != 7 {
		return nil, fmt.Errorf("invalid color %q", hex)
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return nil, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// ColorOr parses hex and falls back to def when it is empty or invalid.
func ColorOr(hex string, def color.Color) color.Color {
	if hex == "" {
		return def
	}
	c, err := ParseColor(hex)
	if err != nil {
		return def
	}
	return c
}
