package field

import (
	"math"
	"math/rand"
)

// Constellation tuning. Counts scale with surface area and the link
// threshold with the smaller surface dimension.
const (
	StarDensity     = 20000 // surface pixels per constellation point
	StarSpeed       = 0.3   // velocity components in [-0.15, 0.15)
	StarRadius      = 1.5
	StarAlpha       = 0.5
	LinkAlpha       = 0.15 // alpha of a line between two coincident points
	ThresholdFactor = 0.1  // fraction of the smaller surface dimension
)

// Star is a constellation point. Links holds the indices of every point it
// was connected to during the last frame.
type Star struct {
	Point
	Links []int
}

// Link joins two stars closer than the proximity threshold. I < J.
type Link struct {
	I, J     int
	Distance float64
}

// Alpha is the stroke alpha of the link, fading linearly to zero at the
// threshold.
func (l Link) Alpha(threshold float64) float64 {
	return (1 - l.Distance/threshold) * LinkAlpha
}

// StarCount is the number of constellation points for a w x h surface.
func StarCount(w, h int) int {
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h / StarDensity
}

// Threshold is the proximity threshold for a w x h surface.
func Threshold(w, h int) float64 {
	return float64(min(w, h)) * ThresholdFactor
}

// Constellation is the star-map field.
type Constellation struct {
	rng   *rand.Rand
	w, h  int
	stars []Star
	links []Link
}

// NewConstellation returns an empty constellation drawing from rng. Call
// Reset once the surface size is known.
func NewConstellation(rng *rand.Rand) *Constellation {
	return &Constellation{rng: rng}
}

func (f *Constellation) Reset(w, h int) {
	f.w, f.h = w, h
	n := StarCount(w, h)
	stars := make([]Star, n)
	for i := range stars {
		stars[i] = Star{Point: Point{
			X:  f.rng.Float64() * float64(w),
			Y:  f.rng.Float64() * float64(h),
			VX: (f.rng.Float64() - 0.5) * StarSpeed,
			VY: (f.rng.Float64() - 0.5) * StarSpeed,
		}}
	}
	f.stars = stars
	f.links = nil
}

func (f *Constellation) Frame(c Canvas) {
	c.Clear()

	w, h := float64(f.w), float64(f.h)
	for i := range f.stars {
		f.stars[i].Step(w, h)
	}

	threshold := Threshold(f.w, f.h)
	f.links = Connect(f.stars, threshold, f.links[:0])
	for i := range f.stars {
		f.stars[i].Links = f.stars[i].Links[:0]
	}
	for _, l := range f.links {
		f.stars[l.I].Links = append(f.stars[l.I].Links, l.J)
		f.stars[l.J].Links = append(f.stars[l.J].Links, l.I)
	}

	for _, l := range f.links {
		a, b := f.stars[l.I], f.stars[l.J]
		c.StrokeLine(a.X, a.Y, b.X, b.Y, Solid{Color: Amber, Alpha: l.Alpha(threshold)})
	}
	dot := Solid{Color: Amber, Alpha: StarAlpha}
	for _, s := range f.stars {
		c.FillCircle(s.X, s.Y, StarRadius, dot)
	}
}

func (f *Constellation) Len() int { return len(f.stars) }

// Stars returns the current set.
func (f *Constellation) Stars() []Star { return f.stars }

// Links returns the links computed during the last frame.
func (f *Constellation) Links() []Link { return f.links }

func distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
