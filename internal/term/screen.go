// Package term hosts backdrop layers on a terminal using braille dots.
package term

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/harshit0019/portfolio/internal/backdrop"
)

const (
	DotPixels  = 4 // virtual pixels per braille dot
	CellWidth  = 2 * DotPixels
	CellHeight = 4 * DotPixels

	// minVisible lifts faint ink so constellation lines stay readable on a
	// terminal's coarse grid.
	minVisible = 0.25
)

// Screen composites braille layers onto a tcell screen.
type Screen struct {
	screen tcell.Screen
	bg     colorful.Color

	mu     sync.Mutex
	layers []*Layer
}

// New initialises the terminal. Call Close to restore it.
func New() (*Screen, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	return NewWithScreen(s), nil
}

// NewWithScreen wraps an initialised tcell screen.
func NewWithScreen(s tcell.Screen) *Screen {
	s.HideCursor()
	s.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	s.Clear()
	return &Screen{screen: s}
}

// Close restores the terminal.
func (s *Screen) Close() { s.screen.Fini() }

// Size is the screen size in virtual pixels.
func (s *Screen) Size() backdrop.Size {
	cols, rows := s.screen.Size()
	return backdrop.Size{Width: cols * CellWidth, Height: rows * CellHeight}
}

// NewLayer adds a layer on top of the existing ones.
func (s *Screen) NewLayer(opacity float64) *Layer {
	l := newLayer(opacity)
	s.mu.Lock()
	s.layers = append(s.layers, l)
	s.mu.Unlock()
	return l
}

// Draw composites the presented frame of every layer and shows it.
func (s *Screen) Draw() {
	s.mu.Lock()
	layers := append([]*Layer(nil), s.layers...)
	s.mu.Unlock()

	for _, l := range layers {
		l.mu.Lock()
	}
	defer func() {
		for _, l := range layers {
			l.mu.Unlock()
		}
	}()

	cols, rows := s.screen.Size()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			var top ink
			var bits uint8
			for _, l := range layers {
				in := l.at(c, r)
				bits |= in.bits
				if in.alpha > top.alpha {
					top = in
				}
			}
			if bits == 0 {
				s.screen.SetContent(c, r, ' ', nil, tcell.StyleDefault.Background(tcell.ColorBlack))
				continue
			}
			fg := s.bg.BlendRgb(top.color, max(top.alpha, minVisible)).Clamped()
			red, green, blue := fg.RGB255()
			style := tcell.StyleDefault.
				Background(tcell.ColorBlack).
				Foreground(tcell.NewRGBColor(int32(red), int32(green), int32(blue)))
			s.screen.SetContent(c, r, rune(0x2800)|rune(bits), nil, style)
		}
	}
	s.screen.Show()
}

// Run redraws at fps until ctx is done or the user quits with q, Esc or
// Ctrl-C. Terminal resizes are forwarded to vp.
func (s *Screen) Run(ctx context.Context, vp *backdrop.Viewport, fps int) error {
	if fps <= 0 {
		return fmt.Errorf("fps must be positive, got %d", fps)
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				s.screen.Sync()
				sz := s.Size()
				vp.Resize(sz.Width, sz.Height)
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
					return nil
				}
			}

		case <-ticker.C:
			s.Draw()
		}
	}
}
