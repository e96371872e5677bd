// Package field simulates the decorative point fields drawn behind the site:
// a drifting particle field and a constellation of points joined by faint
// lines. Fields are plain state machines stepped one frame at a time; they
// know nothing about how frames are scheduled or where pixels end up.
package field

// Canvas is the drawing contract a field renders through. Coordinates are in
// surface pixels.
type Canvas interface {
	Clear()
	FillCircle(x, y, r float64, p Paint)
	StrokeLine(x0, y0, x1, y1 float64, p Paint)
}

// Field is one independently managed set of drifting points.
type Field interface {
	// Reset discards every point and generates a new set for a w x h surface.
	Reset(w, h int)
	// Frame clears c, advances every point by one step and draws the result.
	Frame(c Canvas)
	// Len reports the number of points in the current set.
	Len() int
}

// Point is a position with a per-frame velocity.
type Point struct {
	X, Y   float64
	VX, VY float64
}

// Step moves p by its velocity and reflects it off the edges of a w x h
// surface. A velocity component is inverted only when the point sits on or
// past an edge while still heading outward, so a point that overshoots flips
// once and then travels back in; it never oscillates in place.
func (p *Point) Step(w, h float64) {
	p.X += p.VX
	p.Y += p.VY
	p.VX = reflect(p.X, p.VX, w)
	p.VY = reflect(p.Y, p.VY, h)
}

func reflect(pos, v, limit float64) float64 {
	if (pos <= 0 && v < 0) || (pos >= limit && v > 0) {
		return -v
	}
	return v
}
