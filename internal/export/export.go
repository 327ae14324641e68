// Package export turns a document into a single fixed-size page file. The
// page is laid out off-screen, rasterized at a supersampling factor on white
// and packaged as PDF or PNG.
package export

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fogleman/gg"

	"vitae/internal/element"
	"vitae/internal/render"
)

type Format string

const (
	FormatPDF Format = "pdf"
	FormatPNG Format = "png"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPDF, "":
		return FormatPDF, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

type Stage string

const (
	StageLayout    Stage = "layout"
	StageRasterize Stage = "rasterize"
	StagePackage   Stage = "package"
)

var ErrPageSize = errors.New("page width and height must be positive")

// Error is an export failure the user should see. The editing session is
// never affected by it and the export may be retried.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("export failed during %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Request struct {
	Elements   []element.Element
	PageWidth  float64
	PageHeight float64

	// Name is the author's name; the output file is named after it.
	Name   string
	Format Format
	// Dir receives the file unless Path names it outright.
	Dir  string
	Path string

	Scale  float64
	Images render.ImageResolver
	Log    *slog.Logger
}

type Result struct {
	Path string
	Err  error
}

// Export runs the whole pipeline and waits for it.
func Export(ctx context.Context, req Request) (string, error) {
	res := <-Start(ctx, req)
	return res.Path, res.Err
}

// Start lays the document out before returning, so later edits to the
// caller's elements do not reach the file, then rasterizes and writes in the
// background. The channel yields exactly one Result.
func Start(ctx context.Context, req Request) <-chan Result {
	out := make(chan Result, 1)
	log := req.Log
	if log == nil {
		log = slog.Default()
	}

	c, err := Build(req.Elements, req.PageWidth, req.PageHeight, req.Images, log)
	if err != nil {
		out <- Result{Err: err}
		close(out)
		return out
	}

	go func() {
		defer close(out)
		path, err := finish(ctx, c, req)
		if err != nil {
			log.Error("export failed", "err", err)
		} else {
			log.Info("exported", "path", path)
		}
		out <- Result{Path: path, Err: err}
	}()
	return out
}

func finish(ctx context.Context, c *Container, req Request) (string, error) {
	im, err := rasterizeOnce(ctx, c, req.Scale)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", &Error{Stage: StagePackage, Err: err}
	}

	format, err := ParseFormat(string(req.Format))
	if err != nil {
		return "", &Error{Stage: StagePackage, Err: err}
	}
	path := req.Path
	if path == "" {
		path = filepath.Join(req.Dir, Filename(req.Name, format))
	}
	if err := write(path, format, im, c.Width, c.Height); err != nil {
		return "", &Error{Stage: StagePackage, Err: err}
	}
	return path, nil
}

// rasterizeOnce releases the container whether or not drawing succeeds.
func rasterizeOnce(ctx context.Context, c *Container, scale float64) (image.Image, error) {
	defer c.Release()
	if err := ctx.Err(); err != nil {
		return nil, &Error{Stage: StageRasterize, Err: err}
	}
	im, err := Rasterize(c, scale, render.NewFontCache())
	if err != nil {
		return nil, &Error{Stage: StageRasterize, Err: err}
	}
	return im, nil
}

func write(path string, format Format, im image.Image, pageW, pageH float64) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if format == FormatPNG {
		if err := gg.SavePNG(path, im); err != nil {
			os.Remove(path)
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WritePDF(f, im, pageW, pageH); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
