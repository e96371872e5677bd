package backdrop_test

import (
	"math/rand"
	"sync"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/field"
)

// countingSurface counts every call made on it and on the canvas it hands out.
type countingSurface struct {
	mu       sync.Mutex
	size     backdrop.Size
	resizes  int
	presents int
	draws    int
	missing  bool
}

func (s *countingSurface) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.size = backdrop.Size{Width: w, Height: h}
	s.resizes++
}

func (s *countingSurface) Canvas() (field.Canvas, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.missing {
		return nil, false
	}
	return s, true
}

func (s *countingSurface) Present() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.presents++
}

func (s *countingSurface) Clear() {
	s.draw()
}

func (s *countingSurface) FillCircle(x, y, r float64, p field.Paint) {
	s.draw()
}

func (s *countingSurface) StrokeLine(x0, y0, x1, y1 float64, p field.Paint) {
	s.draw()
}

func (s *countingSurface) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draws++
}

func (s *countingSurface) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resizes + s.presents + s.draws
}

func (s *countingSurface) presented() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.presents
}

func (s *countingSurface) setMissing(missing bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missing = missing
}

func (s *countingSurface) currentSize() backdrop.Size {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.size
}

var _ = Describe("Layer", func() {
	var (
		vp      *backdrop.Viewport
		frames  chan time.Time
		surface *countingSurface
		stars   *field.Constellation
		layer   *backdrop.Layer
	)

	BeforeEach(func() {
		vp = backdrop.NewViewport(1200, 800)
		frames = make(chan time.Time, 1)
		surface = &countingSurface{}
		stars = field.NewConstellation(rand.New(rand.NewSource(3)))
		layer = backdrop.Mount(vp, frames, surface, stars)
	})

	AfterEach(func() {
		layer.Unmount()
	})

	It("sizes the surface and generates the set on mount", func() {
		Expect(surface.currentSize()).To(Equal(backdrop.Size{Width: 1200, Height: 800}))
		Expect(stars.Len()).To(Equal(48))
		Expect(vp.Subscribers()).To(Equal(1))
	})

	It("draws and presents one frame per frame signal", func() {
		for i := 0; i < 3; i++ {
			frames <- time.Now()
			Eventually(surface.presented).Should(Equal(i + 1))
		}
		Expect(layer.Drawn()).To(BeEquivalentTo(3))
	})

	It("regenerates the whole set on resize", func() {
		vp.Resize(1000, 500)
		Eventually(surface.currentSize).Should(Equal(backdrop.Size{Width: 1000, Height: 500}))

		layer.Unmount()
		Expect(stars.Len()).To(Equal(25))
	})

	It("skips frames without a canvas and keeps running", func() {
		surface.setMissing(true)
		frames <- time.Now()
		Eventually(layer.Skipped).Should(BeEquivalentTo(1))
		Expect(surface.presented()).To(Equal(0))

		surface.setMissing(false)
		frames <- time.Now()
		Eventually(surface.presented).Should(Equal(1))
	})

	It("makes no surface calls after unmount", func() {
		frames <- time.Now()
		Eventually(surface.presented).Should(Equal(1))

		layer.Unmount()
		Expect(vp.Subscribers()).To(Equal(0))
		before := surface.calls()

		vp.Resize(640, 480)
		frames <- time.Now()
		Consistently(surface.calls, 100*time.Millisecond).Should(Equal(before))
	})

	It("tolerates repeated unmounts", func() {
		layer.Unmount()
		layer.Unmount()
		Eventually(layer.Done()).Should(BeClosed())
	})

	It("stops when the frame source closes", func() {
		close(frames)
		Eventually(layer.Done()).Should(BeClosed())
		Expect(vp.Subscribers()).To(Equal(0))
	})
})

var _ = Describe("two layers on one viewport", func() {
	It("resizes each layer independently", func() {
		vp := backdrop.NewViewport(1500, 900)
		a, b := &countingSurface{}, &countingSurface{}
		glow := field.NewParticles(rand.New(rand.NewSource(1)))
		stars := field.NewConstellation(rand.New(rand.NewSource(2)))

		la := backdrop.Mount(vp, make(chan time.Time), a, glow)
		lb := backdrop.Mount(vp, make(chan time.Time), b, stars)
		defer la.Unmount()
		defer lb.Unmount()

		Expect(glow.Len()).To(Equal(100))
		Expect(stars.Len()).To(Equal(67))

		vp.Resize(300, 200)
		Eventually(a.currentSize).Should(Equal(backdrop.Size{Width: 300, Height: 200}))
		Eventually(b.currentSize).Should(Equal(backdrop.Size{Width: 300, Height: 200}))

		la.Unmount()
		Expect(vp.Subscribers()).To(Equal(1))
		lb.Unmount()
		Expect(vp.Subscribers()).To(Equal(0))

		Expect(glow.Len()).To(Equal(20))
		Expect(stars.Len()).To(Equal(3))
	})
})
