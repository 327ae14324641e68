package main

import (
	"image"
	"image/draw"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"vitae/internal/editor"
	"vitae/internal/render"
)

// cell is one terminal cell of the preview: the average color of its upper
// and lower half as hex.
type cell struct {
	top, bottom string
}

type previewKey struct {
	version    uint64
	cols, rows int
	view       editor.Viewport
	tool       editor.Tool
	grid, dark bool
}

// previewCache keeps the last folded frame; the scene is only redrawn when
// the document, viewport or surface size changed.
type previewCache struct {
	key   previewKey
	cells [][]cell
	valid bool
}

func (p *previewCache) get(r *render.Renderer, ed *editor.Editor, cols, rows int) [][]cell {
	key := previewKey{
		version: ed.Doc.Version(),
		cols:    cols,
		rows:    rows,
		view:    ed.View,
		tool:    ed.Tool,
		grid:    ed.ShowGrid,
		dark:    ed.Dark,
	}
	if p.valid && p.key == key {
		return p.cells
	}
	p.cells = foldFrame(r.Frame(cols*charWidth, rows*charHeight, ed.Scene()), cols, rows)
	p.key = key
	p.valid = true
	return p.cells
}

// foldFrame averages each charWidth x charHeight block of im into a cell.
func foldFrame(im image.Image, cols, rows int) [][]cell {
	rgba, ok := im.(*image.RGBA)
	if !ok {
		b := im.Bounds()
		rgba = image.NewRGBA(b)
		draw.Draw(rgba, b, im, b.Min, draw.Src)
	}
	half := charHeight / 2
	out := make([][]cell, rows)
	for cy := 0; cy < rows; cy++ {
		out[cy] = make([]cell, cols)
		for cx := 0; cx < cols; cx++ {
			x0, y0 := cx*charWidth, cy*charHeight
			out[cy][cx] = cell{
				top:    average(rgba, x0, y0, charWidth, half),
				bottom: average(rgba, x0, y0+half, charWidth, half),
			}
		}
	}
	return out
}

func average(im *image.RGBA, x0, y0, w, h int) string {
	var r, g, b, n int
	bounds := im.Bounds()
	for y := y0; y < y0+h && y < bounds.Max.Y; y++ {
		for x := x0; x < x0+w && x < bounds.Max.X; x++ {
			i := im.PixOffset(x, y)
			r += int(im.Pix[i])
			g += int(im.Pix[i+1])
			b += int(im.Pix[i+2])
			n++
		}
	}
	if n == 0 {
		return "#000000"
	}
	c := colorful.Color{
		R: float64(r) / float64(n) / 255,
		G: float64(g) / float64(n) / 255,
		B: float64(b) / float64(n) / 255,
	}
	return c.Hex()
}

var cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#e83e8c")).Bold(true)

// paintCells turns cells into styled lines of upper half blocks, runs of
// equal cells sharing one style. The cursor cell shows a crosshair.
func paintCells(cells [][]cell, cursorX, cursorY int, showCursor bool) []string {
	lines := make([]string, len(cells))
	for y, row := range cells {
		var b strings.Builder
		for x := 0; x < len(row); {
			if showCursor && x == cursorX && y == cursorY {
				b.WriteString(cursorStyle.Copy().Background(lipgloss.Color(row[x].bottom)).Render("┼"))
				x++
				continue
			}
			end := x + 1
			for end < len(row) && row[end] == row[x] && !(showCursor && end == cursorX && y == cursorY) {
				end++
			}
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(row[x].top)).
				Background(lipgloss.Color(row[x].bottom))
			b.WriteString(style.Render(strings.Repeat("▀", end-x)))
			x = end
		}
		lines[y] = b.String()
	}
	return lines
}

// cellCenter is the surface pixel under the middle of a terminal cell.
func cellCenter(cx, cy int) (float64, float64) {
	return float64(cx*charWidth + charWidth/2), float64(cy*charHeight + charHeight/2)
}
