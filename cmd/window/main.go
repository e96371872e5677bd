// Command window previews the site backdrop in a desktop window. Resizing
// the window regenerates the fields for the new size.
package main

import (
	"errors"
	"image/color"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/spf13/cobra"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/field"
	"github.com/harshit0019/portfolio/internal/raster"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	glowRings    = 4
)

type layer struct {
	spec    backdrop.Spec
	rec     *backdrop.Recording
	mounted *backdrop.Layer
	ticks   chan time.Time
	img     *ebiten.Image
}

type game struct {
	vp     *backdrop.Viewport
	layers []*layer
	w, h   int
}

func newGame(mode backdrop.Mode, seed int64) *game {
	g := &game{
		vp: backdrop.NewViewport(windowWidth, windowHeight),
		w:  windowWidth,
		h:  windowHeight,
	}
	for i, spec := range mode.Layers() {
		l := &layer{
			spec:  spec,
			rec:   backdrop.NewRecording(),
			ticks: make(chan time.Time, 1),
		}
		l.mounted = backdrop.Mount(g.vp, l.ticks, l.rec, spec.New(rand.New(rand.NewSource(seed+int64(i)))))
		g.layers = append(g.layers, l)
	}
	return g
}

func (g *game) close() {
	for _, l := range g.layers {
		l.mounted.Unmount()
	}
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	// one frame per tick; a layer that is still busy skips this one
	now := time.Now()
	for _, l := range g.layers {
		select {
		case l.ticks <- now:
		default:
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(raster.Background)

	for _, l := range g.layers {
		f := l.rec.Snapshot()
		if f.Width <= 0 || f.Height <= 0 {
			continue
		}
		if l.img == nil || l.img.Bounds().Dx() != f.Width || l.img.Bounds().Dy() != f.Height {
			if l.img != nil {
				l.img.Deallocate()
			}
			l.img = ebiten.NewImage(f.Width, f.Height)
		}
		f.Replay(canvas{l.img})

		op := &ebiten.DrawImageOptions{}
		op.ColorScale.ScaleAlpha(float32(l.spec.Opacity))
		screen.DrawImage(l.img, op)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.vp.Resize(g.w, g.h)
	}
	return outsideWidth, outsideHeight
}

// canvas draws recorded frames onto an ebiten image. Radial gradients are
// approximated by concentric discs, outermost first.
type canvas struct {
	img *ebiten.Image
}

func (c canvas) Clear() { c.img.Clear() }

func (c canvas) FillCircle(x, y, r float64, p field.Paint) {
	if _, solid := p.(field.Solid); solid {
		vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), paintColor(p, 0), true)
		return
	}
	for k := glowRings; k > 0; k-- {
		t := float64(k) / glowRings
		vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r*t), paintColor(p, t), true)
	}
}

func (c canvas) StrokeLine(x0, y0, x1, y1 float64, p field.Paint) {
	vector.StrokeLine(c.img, float32(x0), float32(y0), float32(x1), float32(y1), 1, paintColor(p, 0), true)
}

func paintColor(p field.Paint, t float64) color.NRGBA {
	col, alpha := p.At(t)
	r, g, b := col.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(min(max(alpha, 0), 1) * 255)}
}

func main() {
	var seed int64

	rootCmd := &cobra.Command{
		Use:          "window [mode]",
		Short:        "preview the backdrop in a desktop window (particles, constellation, both)",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := backdrop.Both
			if len(args) == 1 {
				m, err := backdrop.ParseMode(args[0])
				if err != nil {
					return err
				}
				mode = m
			}

			g := newGame(mode, seed)
			defer g.close()

			ebiten.SetWindowSize(windowWidth, windowHeight)
			ebiten.SetWindowTitle("Backdrop: " + string(mode) + " (Esc/Q to quit)")
			ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
			if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
				return err
			}
			return nil
		},
	}
	rootCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
