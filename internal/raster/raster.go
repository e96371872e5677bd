// Package raster draws fields into in-memory RGBA images with anti-aliased
// shapes, for posters and server-rendered snapshots.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/harshit0019/portfolio/internal/field"
)

// kappa places cubic control points so four curves approximate a circle.
const kappa = 0.5522847498

// Surface is an RGBA drawing surface. It implements both backdrop.Surface
// and field.Canvas.
type Surface struct {
	img *image.RGBA
	z   vector.Rasterizer
}

// New returns a surface of the given size.
func New(w, h int) *Surface {
	s := &Surface{}
	s.Resize(w, h)
	return s
}

func (s *Surface) Resize(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

func (s *Surface) Canvas() (field.Canvas, bool) { return s, s.img != nil }

func (s *Surface) Present() {}

// Image returns the backing image.
func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}

func (s *Surface) FillCircle(x, y, r float64, p field.Paint) {
	if r <= 0 {
		return
	}
	box := image.Rect(
		int(math.Floor(x-r)), int(math.Floor(y-r)),
		int(math.Ceil(x+r)), int(math.Ceil(y+r)),
	)
	clip := box.Intersect(s.img.Bounds())
	if clip.Empty() {
		return
	}

	// The rasterizer works in box-local coordinates.
	cx, cy := float32(x-float64(box.Min.X)), float32(y-float64(box.Min.Y))
	rr, k := float32(r), float32(r*kappa)
	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Over
	s.z.MoveTo(cx+rr, cy)
	s.z.CubeTo(cx+rr, cy+k, cx+k, cy+rr, cx, cy+rr)
	s.z.CubeTo(cx-k, cy+rr, cx-rr, cy+k, cx-rr, cy)
	s.z.CubeTo(cx-rr, cy-k, cx-k, cy-rr, cx, cy-rr)
	s.z.CubeTo(cx+k, cy-rr, cx+rr, cy-k, cx+rr, cy)
	s.z.ClosePath()

	s.drawPath(box, clip, radial{cx: x, cy: y, r: r, paint: p})
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, p field.Paint) {
	dx, dy := x1-x0, y1-y0
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	// Offset both ends by half a pixel along the normal to get a 1px band.
	nx, ny := -dy/length*0.5, dx/length*0.5

	box := image.Rect(
		int(math.Floor(math.Min(x0, x1)-1)), int(math.Floor(math.Min(y0, y1)-1)),
		int(math.Ceil(math.Max(x0, x1)+1)), int(math.Ceil(math.Max(y0, y1)+1)),
	)
	clip := box.Intersect(s.img.Bounds())
	if clip.Empty() {
		return
	}

	ox, oy := float64(box.Min.X), float64(box.Min.Y)
	pt := func(x, y float64) (float32, float32) { return float32(x - ox), float32(y - oy) }
	s.z.Reset(box.Dx(), box.Dy())
	s.z.DrawOp = draw.Over
	s.z.MoveTo(pt(x0+nx, y0+ny))
	s.z.LineTo(pt(x1+nx, y1+ny))
	s.z.LineTo(pt(x1-nx, y1-ny))
	s.z.LineTo(pt(x0-nx, y0-ny))
	s.z.ClosePath()

	col, alpha := p.At(0)
	s.drawPath(box, clip, image.NewUniform(nrgba(col, alpha)))
}

// drawPath fills the rasterizer's current path. The rasterizer covers box,
// but only clip (box within the image) is written.
func (s *Surface) drawPath(box, clip image.Rectangle, src image.Image) {
	if clip == box {
		s.z.Draw(s.img, box, src, box.Min)
		return
	}
	// Rasterize into a scratch mask so shapes straddling an edge keep their
	// coverage, then composite only the visible part.
	mask := image.NewAlpha(image.Rect(0, 0, box.Dx(), box.Dy()))
	s.z.DrawOp = draw.Src
	s.z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	draw.DrawMask(s.img, clip, src, clip.Min, mask, clip.Min.Sub(box.Min), draw.Over)
}

// radial samples a paint by distance from a centre, in image coordinates.
type radial struct {
	cx, cy, r float64
	paint     field.Paint
}

func (g radial) ColorModel() color.Model { return color.NRGBAModel }

func (g radial) Bounds() image.Rectangle {
	return image.Rect(-1e9, -1e9, 1e9, 1e9)
}

func (g radial) At(x, y int) color.Color {
	t := math.Hypot(float64(x)+0.5-g.cx, float64(y)+0.5-g.cy) / g.r
	col, alpha := g.paint.At(math.Min(t, 1))
	return nrgba(col, alpha)
}

func nrgba(c colorful.Color, alpha float64) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(math.Round(clamp01(alpha) * 255))}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Layer is one rendered surface with the opacity it is composited at.
type Layer struct {
	Image   *image.RGBA
	Opacity float64
}

// Composite paints bg over dst and then every layer in order.
func Composite(dst draw.Image, bg color.Color, layers ...Layer) {
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	for _, l := range layers {
		if l.Image == nil {
			continue
		}
		mask := image.NewUniform(color.Alpha{A: uint8(math.Round(clamp01(l.Opacity) * 255))})
		draw.DrawMask(dst, dst.Bounds(), l.Image, image.Point{}, mask, image.Point{}, draw.Over)
	}
}

// EncodePNG writes img as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
