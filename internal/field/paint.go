package field

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Paint describes how a shape is filled. t is the normalized distance from
// the shape's centre, 0 at the centre and 1 at its edge.
type Paint interface {
	At(t float64) (colorful.Color, float64)
}

// Solid is a single colour at a fixed alpha.
type Solid struct {
	Color colorful.Color
	Alpha float64
}

func (s Solid) At(float64) (colorful.Color, float64) { return s.Color, s.Alpha }

// Stop is one colour stop of a radial gradient.
type Stop struct {
	Offset float64
	Color  colorful.Color
	Alpha  float64
}

// Gradient is a radial gradient. Stops must be sorted by offset.
type Gradient struct {
	Stops []Stop
}

func (g Gradient) At(t float64) (colorful.Color, float64) {
	if len(g.Stops) == 0 {
		return colorful.Color{}, 0
	}
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color, g.Stops[0].Alpha
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		if t == b.Offset {
			return b.Color, b.Alpha
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color, b.Alpha
		}
		f := (t - a.Offset) / span
		return a.Color.BlendRgb(b.Color, f), a.Alpha + (b.Alpha-a.Alpha)*f
	}
	last := g.Stops[len(g.Stops)-1]
	return last.Color, last.Alpha
}

// RGB255 builds a colour from 8-bit channels.
func RGB255(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

var (
	White      = RGB255(255, 255, 255)
	LightAmber = RGB255(255, 230, 150)
	DeepAmber  = RGB255(255, 153, 0)
	Amber      = RGB255(245, 158, 11)
)

// Glow is the particle gradient: a white core through light yellow to deep
// amber at the rim, which is drawn at 70% of the particle's opacity.
func Glow(opacity float64) Gradient {
	return Gradient{Stops: []Stop{
		{Offset: 0, Color: White, Alpha: opacity},
		{Offset: 0.3, Color: LightAmber, Alpha: opacity},
		{Offset: 1, Color: DeepAmber, Alpha: opacity * 0.7},
	}}
}
