// Package backdrop mounts simulated fields onto drawing surfaces and drives
// them frame by frame until they are unmounted.
package backdrop

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/harshit0019/portfolio/internal/field"
)

// Surface is a drawing target owned by exactly one layer.
type Surface interface {
	// Resize sets the surface's pixel dimensions, discarding its contents.
	Resize(w, h int)
	// Canvas returns the drawing context, or false when none is available.
	Canvas() (field.Canvas, bool)
	// Present publishes the frame drawn since the last Clear.
	Present()
}

// Layer is a field mounted on a surface. Its loop runs on its own goroutine
// and is the only caller of the field and the surface.
type Layer struct {
	field   field.Field
	surface Surface
	frames  <-chan time.Time

	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	drawn   atomic.Uint64
	skipped atomic.Uint64
}

// Mount sizes s from vp, generates f's point set and starts the frame loop.
// Every value received from frames advances the field by one frame; every
// viewport resize resizes the surface and regenerates the set.
func Mount(vp *Viewport, frames <-chan time.Time, s Surface, f field.Field) *Layer {
	ctx, cancel := context.WithCancel(context.Background())
	l := &Layer{
		field:   f,
		surface: s,
		frames:  frames,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	resize, unsubscribe := vp.Subscribe()
	l.resize(vp.Size())

	go l.run(ctx, resize, unsubscribe)
	return l
}

func (l *Layer) run(ctx context.Context, resize <-chan Size, unsubscribe func()) {
	defer close(l.done)
	defer unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return
		case sz := <-resize:
			if ctx.Err() != nil {
				return
			}
			l.resize(sz)
		case _, ok := <-l.frames:
			if !ok || ctx.Err() != nil {
				return
			}
			l.frame()
		}
	}
}

func (l *Layer) resize(sz Size) {
	l.surface.Resize(sz.Width, sz.Height)
	l.field.Reset(sz.Width, sz.Height)
}

func (l *Layer) frame() {
	c, ok := l.surface.Canvas()
	if !ok {
		l.skipped.Add(1)
		return
	}
	l.field.Frame(c)
	l.surface.Present()
	l.drawn.Add(1)
}

// Unmount stops the frame loop and drops the resize subscription. When it
// returns the layer will not touch its surface or field again.
func (l *Layer) Unmount() {
	l.once.Do(l.cancel)
	<-l.done
}

// Done is closed once the loop has exited, either through Unmount or because
// the frame channel was closed.
func (l *Layer) Done() <-chan struct{} { return l.done }

// Drawn reports how many frames were drawn and presented.
func (l *Layer) Drawn() uint64 { return l.drawn.Load() }

// Skipped reports how many frames were skipped for lack of a canvas.
func (l *Layer) Skipped() uint64 { return l.skipped.Load() }

// Field returns the mounted field.
func (l *Layer) Field() field.Field { return l.field }
