package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olivier-w/shadows/internal/deck"
	"github.com/olivier-w/shadows/internal/tint"
)

// Layout units per terminal cell. Cells are about twice as tall as wide.
const (
	minUnitX   = 12.0
	cellAspect = 2.0
	rowWidth   = 1160.0
)

// viewportFor maps a raster of cols x rows cells to layout units, widening
// cells on narrow terminals so the whole row of stacks fits.
func viewportFor(cols, rows int) deck.Viewport {
	if cols <= 0 || rows <= 0 {
		return deck.Viewport{}
	}
	unit := math.Max(minUnitX, rowWidth/float64(cols))
	return deck.Viewport{Width: float64(cols) * unit, Height: float64(rows) * unit * cellAspect}
}

type border struct {
	tl, tr, bl, br, h, v rune
}

var borders = [2]border{
	{'┌', '┐', '└', '┘', '─', '│'},
	{'┏', '┓', '┗', '┛', '━', '┃'},
}

type cell struct {
	glyph rune
	color tint.Tint
}

// raster is a character canvas over a viewport. Later draws cover earlier ones.
type raster struct {
	cols, rows   int
	unitX, unitY float64
	cells        []cell
}

func newRaster(cols, rows int, vp deck.Viewport) *raster {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return &raster{
		cols:  cols,
		rows:  rows,
		unitX: vp.Width / float64(cols),
		unitY: vp.Height / float64(rows),
		cells: make([]cell, cols*rows),
	}
}

func (r *raster) set(col, row int, g rune, c tint.Tint) {
	if col < 0 || row < 0 || col >= r.cols || row >= r.rows {
		return
	}
	r.cells[row*r.cols+col] = cell{glyph: g, color: c}
}

func (r *raster) at(col, row int) cell { return r.cells[row*r.cols+col] }

// card draws a bordered rectangle centred on the pose, sized by the card
// geometry and pose scale. Alpha darkens the tint.
func (r *raster) card(p deck.Pose, g deck.Geometry) {
	w := int(math.Round(g.CardWidth * p.ScaleX / r.unitX))
	h := int(math.Round(g.CardHeight * p.ScaleY / r.unitY))
	w = max(w, 2)
	h = max(h, 2)
	left := int(math.Round(p.X/r.unitX)) - w/2
	top := int(math.Round(p.Y/r.unitY)) - h/2
	color := p.Tint.Scale(p.Alpha)
	b := borders[int(math.Abs(math.Round(p.Rotation/(math.Pi/4))))%2]

	for row := top; row < top+h; row++ {
		for col := left; col < left+w; col++ {
			first, last := row == top, row == top+h-1
			lc, rc := col == left, col == left+w-1
			glyph := ' '
			switch {
			case first && lc:
				glyph = b.tl
			case first && rc:
				glyph = b.tr
			case last && lc:
				glyph = b.bl
			case last && rc:
				glyph = b.br
			case first || last:
				glyph = b.h
			case lc || rc:
				glyph = b.v
			}
			r.set(col, row, glyph, color)
		}
	}
}

// particleGlyphs go from faint to bright.
var particleGlyphs = []rune{'·', '•', '✶', '✹'}

// particle plots a single glyph picked by size and alpha.
func (r *raster) particle(p deck.Pose) {
	if p.Alpha <= 0 {
		return
	}
	level := int(p.Alpha * p.ScaleX * float64(len(particleGlyphs)))
	level = min(max(level, 0), len(particleGlyphs)-1)
	col := int(math.Round(p.X / r.unitX))
	row := int(math.Round(p.Y / r.unitY))
	r.set(col, row, particleGlyphs[level], p.Tint.Scale(math.Min(1, 0.35+p.Alpha)))
}

// String renders the canvas, colouring runs of same-tint cells.
func (r *raster) String() string {
	styles := map[tint.Tint]lipgloss.Style{}
	var b strings.Builder
	var run strings.Builder
	for row := 0; row < r.rows; row++ {
		var runColor tint.Tint
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st, ok := styles[runColor]
			if !ok {
				st = lipgloss.NewStyle().Foreground(lipgloss.Color(runColor.Hex()))
				styles[runColor] = st
			}
			b.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < r.cols; col++ {
			c := r.at(col, row)
			if c.glyph == 0 || c.glyph == ' ' {
				flush()
				b.WriteByte(' ')
				continue
			}
			if run.Len() > 0 && c.color != runColor {
				flush()
			}
			runColor = c.color
			run.WriteRune(c.glyph)
		}
		flush()
		if row < r.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
