package term

import (
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/harshit0019/portfolio/internal/field"
)

// Braille patterns: 2x4 dots per cell.
// 1 4
// 2 5
// 3 6
// 7 8
var dotBits = [4][2]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// ink is what one layer put into one terminal cell.
type ink struct {
	bits  uint8
	color colorful.Color
	alpha float64
}

// Layer is a braille surface for one field. Fields draw in virtual pixels;
// every DotPixels x DotPixels block maps to one braille dot.
type Layer struct {
	mu         sync.Mutex
	opacity    float64
	cols, rows int
	back       []ink
	front      []ink
}

func newLayer(opacity float64) *Layer {
	return &Layer{opacity: opacity}
}

func (l *Layer) Resize(w, h int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cols, l.rows = max(w, 0)/CellWidth, max(h, 0)/CellHeight
	l.back = make([]ink, l.cols*l.rows)
	l.front = make([]ink, l.cols*l.rows)
}

func (l *Layer) Canvas() (field.Canvas, bool) { return l, true }

func (l *Layer) Present() {
	l.mu.Lock()
	defer l.mu.Unlock()
	copy(l.front, l.back)
}

func (l *Layer) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	clear(l.back)
}

func (l *Layer) FillCircle(x, y, r float64, p field.Paint) {
	col, alpha := p.At(0)
	l.mu.Lock()
	defer l.mu.Unlock()

	cx, cy := dot(x), dot(y)
	l.set(cx, cy, col, alpha)

	// Larger circles also cover the dots whose centres fall inside them.
	reach := int(math.Ceil(r / DotPixels))
	for dy := -reach; dy <= reach; dy++ {
		for dx := -reach; dx <= reach; dx++ {
			px := float64(cx+dx)*DotPixels + DotPixels/2
			py := float64(cy+dy)*DotPixels + DotPixels/2
			if math.Hypot(px-x, py-y) < r {
				l.set(cx+dx, cy+dy, col, alpha)
			}
		}
	}
}

// StrokeLine draws a line using Bresenham's algorithm over braille dots.
func (l *Layer) StrokeLine(x0, y0, x1, y1 float64, p field.Paint) {
	col, alpha := p.At(0)
	l.mu.Lock()
	defer l.mu.Unlock()

	ax, ay, bx, by := dot(x0), dot(y0), dot(x1), dot(y1)
	dx, dy := abs(bx-ax), abs(by-ay)
	sx, sy := 1, 1
	if ax > bx {
		sx = -1
	}
	if ay > by {
		sy = -1
	}
	err := dx - dy
	for {
		l.set(ax, ay, col, alpha)
		if ax == bx && ay == by {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			ax += sx
		}
		if e2 < dx {
			err += dx
			ay += sy
		}
	}
}

// set marks dot (x, y). The cell keeps the colour of its strongest ink.
func (l *Layer) set(x, y int, col colorful.Color, alpha float64) {
	if x < 0 || y < 0 {
		return
	}
	c, r := x/2, y/4
	if c >= l.cols || r >= l.rows {
		return
	}
	cell := &l.back[r*l.cols+c]
	cell.bits |= dotBits[y%4][x%2]
	if alpha > cell.alpha {
		cell.color, cell.alpha = col, alpha
	}
}

// at returns the presented ink of a cell, with the layer opacity applied.
func (l *Layer) at(c, r int) ink {
	if c >= l.cols || r >= l.rows {
		return ink{}
	}
	in := l.front[r*l.cols+c]
	in.alpha *= l.opacity
	return in
}

func dot(v float64) int { return int(math.Floor(v / DotPixels)) }

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
