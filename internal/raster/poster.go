package raster

import (
	"image"
	"image/color"
	"math/rand"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/field"
)

// Background is the page background the site's layers are drawn over.
var Background = color.RGBA{R: 12, G: 10, B: 9, A: 255}

// Poster runs every layer of mode for frames steps on a w x h surface and
// composites the result over Background. Layers are seeded from seed in
// order, so the same arguments always produce the same image.
func Poster(mode backdrop.Mode, w, h, frames int, seed int64) *image.RGBA {
	specs := mode.Layers()
	layers := make([]Layer, 0, len(specs))
	for i, spec := range specs {
		f := spec.New(rand.New(rand.NewSource(seed + int64(i))))
		s := New(w, h)
		f.Reset(w, h)
		advance(f, frames, s)
		layers = append(layers, Layer{Image: s.Image(), Opacity: spec.Opacity})
	}

	dst := image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	Composite(dst, Background, layers...)
	return dst
}

// advance steps f through frames frames (at least one) and draws only the
// last of them onto c.
func advance(f field.Field, frames int, c field.Canvas) {
	for n := 1; n < frames; n++ {
		f.Frame(discard{})
	}
	f.Frame(c)
}

// discard is a canvas that draws nothing.
type discard struct{}

func (discard) Clear() {}

func (discard) FillCircle(x, y, r float64, p field.Paint) {}

func (discard) StrokeLine(x0, y0, x1, y1 float64, p field.Paint) {}
