package backdrop

import (
	"sync"
)

// Size is a surface size in pixels.
type Size struct {
	Width, Height int
}

// Viewport holds the host's current size and fans resize notifications out
// to every subscriber. Subscribers never block the notifier: each has a
// one-slot channel and only the latest size is kept.
type Viewport struct {
	mu   sync.Mutex
	size Size
	next int
	subs map[int]chan Size
}

// NewViewport creates a viewport of the given size.
func NewViewport(w, h int) *Viewport {
	return &Viewport{
		size: Size{Width: w, Height: h},
		subs: make(map[int]chan Size),
	}
}

// Size returns the current size.
func (v *Viewport) Size() Size {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.size
}

// Resize records a new size and notifies every subscriber.
func (v *Viewport) Resize(w, h int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.size = Size{Width: w, Height: h}
	for _, ch := range v.subs {
		select {
		case <-ch:
		default:
		}
		ch <- v.size
	}
}

// Subscribe registers for resize notifications. The returned function
// removes the subscription and is safe to call more than once.
func (v *Viewport) Subscribe() (<-chan Size, func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	id := v.next
	v.next++
	ch := make(chan Size, 1)
	v.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.subs, id)
			v.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Viewport) Subscribers() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}
