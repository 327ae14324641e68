package render

import (
	"fmt"
	"image"
	"path/filepath"
	"sync"

	"github.com/fogleman/gg"
)

// ImageResolver turns an image element's source reference into pixels.
type ImageResolver interface {
	Resolve(ref string) (image.Image, error)
}

type ImageResolverFunc func(ref string) (image.Image, error)

func (f ImageResolverFunc) Resolve(ref string) (image.Image, error) { return f(ref) }

// FileImages loads references as PNG or JPEG paths, relative ones against
// Dir. Decoded images are kept for the life of the resolver.
type FileImages struct {
	Dir string

	mu    sync.Mutex
	cache map[string]image.Image
}

func NewFileImages(dir string) *FileImages {
	return &FileImages{Dir: dir, cache: make(map[string]image.Image)}
}

func (f *FileImages) Resolve(ref string) (image.Image, error) {
	path := ref
	if !filepath.IsAbs(path) && f.Dir != "" {
		path = filepath.Join(f.Dir, path)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if im, ok := f.cache[path]; ok {
		return im, nil
	}
	im, err := gg.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", ref, err)
	}
	if f.cache == nil {
		f.cache = make(map[string]image.Image)
	}
	f.cache[path] = im
	return im, nil
}
