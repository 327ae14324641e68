package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"

	"vitae/internal/element"
)

type faceKey struct {
	mono   bool
	bold   bool
	italic bool
	size   float64
}

// FontCache hands out font faces by family, weight, style and size. A face
// keeps glyph caches of its own, so every pipeline that draws concurrently
// needs its own FontCache.
type FontCache struct {
	mu    sync.Mutex
	fonts map[faceKey]*truetype.Font
	faces map[faceKey]font.Face
}

func NewFontCache() *FontCache {
	return &FontCache{
		fonts: make(map[faceKey]*truetype.Font),
		faces: make(map[faceKey]font.Face),
	}
}

// Face returns the face for a text body. Monospace families map to Go Mono,
// everything else to Go Regular and its variants.
func (c *FontCache) Face(t *element.Text) (font.Face, error) {
	key := faceKey{
		mono:   isMono(t.FontFamily),
		bold:   t.FontWeight == element.WeightBold,
		italic: t.FontStyle == element.StyleItalic,
		size:   t.FontSizePt,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[key]; ok {
		return f, nil
	}

	fontKey := key
	fontKey.size = 0
	ttf, ok := c.fonts[fontKey]
	if !ok {
		var err error
		ttf, err = truetype.Parse(fontData(fontKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse font: %w", err)
		}
		c.fonts[fontKey] = ttf
	}

	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = face
	return face, nil
}

func isMono(family string) bool {
	f := strings.ToLower(family)
	return strings.Contains(f, "courier") || strings.Contains(f, "mono")
}

func fontData(k faceKey) []byte {
	switch {
	case k.mono && k.bold && k.italic:
		return gomonobolditalic.TTF
	case k.mono && k.bold:
		return gomonobold.TTF
	case k.mono && k.italic:
		return gomonoitalic.TTF
	case k.mono:
		return gomono.TTF
	case k.bold && k.italic:
		return gobolditalic.TTF
	case k.bold:
		return gobold.TTF
	case k.italic:
		return goitalic.TTF
	}
	return goregular.TTF
}
