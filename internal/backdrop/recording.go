package backdrop

import (
	"sync"

	"github.com/harshit0019/portfolio/internal/field"
)

// OpKind is the kind of a recorded draw operation.
type OpKind uint8

const (
	OpCircle OpKind = iota
	OpLine
)

// Op is one recorded draw call. Circles use X0, Y0 and R; lines use both
// end points.
type Op struct {
	Kind           OpKind
	X0, Y0, X1, Y1 float64
	R              float64
	Paint          field.Paint
}

// Frame is a presented frame.
type Frame struct {
	Seq    uint64
	Width  int
	Height int
	Ops    []Op
}

// Recording is a surface that keeps the draw calls of the last presented
// frame so another goroutine can replay or serialize them.
type Recording struct {
	mu       sync.Mutex
	size     Size
	back     []Op
	front    Frame
	detached bool
	updates  chan struct{}
}

// NewRecording returns an attached, zero-sized recording surface.
func NewRecording() *Recording {
	return &Recording{updates: make(chan struct{}, 1)}
}

func (r *Recording) Resize(w, h int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.size = Size{Width: w, Height: h}
	r.back = r.back[:0]
}

func (r *Recording) Canvas() (field.Canvas, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.detached {
		return nil, false
	}
	return (*recordingCanvas)(r), true
}

func (r *Recording) Present() {
	r.mu.Lock()
	r.front = Frame{
		Seq:    r.front.Seq + 1,
		Width:  r.size.Width,
		Height: r.size.Height,
		Ops:    append([]Op(nil), r.back...),
	}
	r.mu.Unlock()

	select {
	case r.updates <- struct{}{}:
	default:
	}
}

// Detach makes Canvas report no drawing context until Attach is called.
func (r *Recording) Detach() {
	r.mu.Lock()
	r.detached = true
	r.mu.Unlock()
}

// Attach restores the drawing context.
func (r *Recording) Attach() {
	r.mu.Lock()
	r.detached = false
	r.mu.Unlock()
}

// Snapshot returns the last presented frame. Its Ops must not be modified.
func (r *Recording) Snapshot() Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.front
}

// Updates receives a value after each Present. Presents that happen while a
// value is pending are coalesced.
func (r *Recording) Updates() <-chan struct{} { return r.updates }

// Replay draws f onto c.
func (f Frame) Replay(c field.Canvas) {
	c.Clear()
	for _, op := range f.Ops {
		switch op.Kind {
		case OpCircle:
			c.FillCircle(op.X0, op.Y0, op.R, op.Paint)
		case OpLine:
			c.StrokeLine(op.X0, op.Y0, op.X1, op.Y1, op.Paint)
		}
	}
}

type recordingCanvas Recording

func (c *recordingCanvas) Clear() {
	c.mu.Lock()
	c.back = c.back[:0]
	c.mu.Unlock()
}

func (c *recordingCanvas) FillCircle(x, y, r float64, p field.Paint) {
	c.mu.Lock()
	c.back = append(c.back, Op{Kind: OpCircle, X0: x, Y0: y, R: r, Paint: p})
	c.mu.Unlock()
}

func (c *recordingCanvas) StrokeLine(x0, y0, x1, y1 float64, p field.Paint) {
	c.mu.Lock()
	c.back = append(c.back, Op{Kind: OpLine, X0: x0, Y0: y0, X1: x1, Y1: y1, Paint: p})
	c.mu.Unlock()
}
