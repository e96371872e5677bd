package field

import (
	"math"
	"math/rand"
	"testing"
)

func TestStarCount(t *testing.T) {
	tests := []struct {
		w, h int
		want int
	}{
		{1200, 800, 48},
		{1000, 500, 25},
		{1920, 1080, 103},
		{100, 100, 0},
		{0, 800, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := StarCount(tt.w, tt.h); got != tt.want {
			t.Errorf("StarCount(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestThreshold(t *testing.T) {
	if got := Threshold(1000, 500); got != 50 {
		t.Errorf("Threshold(1000, 500) = %f, want 50", got)
	}
	if got := Threshold(640, 1280); got != 64 {
		t.Errorf("Threshold(640, 1280) = %f, want 64", got)
	}
}

func TestConnectThresholdIsStrict(t *testing.T) {
	threshold := Threshold(1000, 500)

	t.Run("exactly at threshold", func(t *testing.T) {
		stars := []Star{{Point: Point{X: 100, Y: 100}}, {Point: Point{X: 150, Y: 100}}}
		if links := Connect(stars, threshold, nil); len(links) != 0 {
			t.Errorf("expected no link at distance 50, got %v", links)
		}
	})

	t.Run("just inside threshold", func(t *testing.T) {
		stars := []Star{{Point: Point{X: 100, Y: 100}}, {Point: Point{X: 149.999, Y: 100}}}
		links := Connect(stars, threshold, nil)
		if len(links) != 1 {
			t.Fatalf("expected one link, got %d", len(links))
		}
		want := (1 - 49.999/50) * 0.15
		if got := links[0].Alpha(threshold); math.Abs(got-want) > 1e-9 {
			t.Errorf("alpha = %g, want %g", got, want)
		}
		if math.Abs(links[0].Alpha(threshold)-0.000003) > 1e-9 {
			t.Errorf("alpha = %g, want about 0.000003", links[0].Alpha(threshold))
		}
	})

	t.Run("zero threshold", func(t *testing.T) {
		stars := []Star{{Point: Point{X: 1, Y: 1}}, {Point: Point{X: 1, Y: 1}}}
		if links := Connect(stars, 0, nil); len(links) != 0 {
			t.Errorf("expected no links for zero threshold, got %v", links)
		}
	})
}

func TestConnectGridMatchesPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	stars := make([]Star, 900)
	for i := range stars {
		stars[i].X = rng.Float64() * 1600
		stars[i].Y = rng.Float64() * 900
	}
	threshold := Threshold(1600, 900)

	brute := connectPairs(stars, threshold, nil)
	grid := Connect(stars, threshold, nil)

	if len(brute) == 0 {
		t.Fatal("expected some links")
	}
	if len(grid) != len(brute) {
		t.Fatalf("grid found %d links, brute force %d", len(grid), len(brute))
	}
	for i := range brute {
		if grid[i] != brute[i] {
			t.Fatalf("link %d: grid %+v, brute force %+v", i, grid[i], brute[i])
		}
	}
}

func TestConstellationFrame(t *testing.T) {
	f := NewConstellation(rand.New(rand.NewSource(1)))
	f.Reset(1000, 500)
	if f.Len() != 25 {
		t.Fatalf("expected 25 stars, got %d", f.Len())
	}

	// Place three stationary stars: a and b 30px apart, c far away.
	stars := f.Stars()
	for i := range stars {
		stars[i] = Star{Point: Point{X: 900, Y: float64(i) * 20}}
	}
	stars[0].Point = Point{X: 100, Y: 100}
	stars[1].Point = Point{X: 130, Y: 100}
	stars[2].Point = Point{X: 500, Y: 400}

	c := &recordingCanvas{}
	f.Frame(c)

	if c.clears != 1 {
		t.Errorf("expected one clear, got %d", c.clears)
	}
	if len(c.circles) != f.Len() {
		t.Errorf("expected %d star circles, got %d", f.Len(), len(c.circles))
	}
	if len(c.lines) != len(f.Links()) {
		t.Errorf("expected %d lines, got %d", len(f.Links()), len(c.lines))
	}

	if got := f.Stars()[0].Links; len(got) != 1 || got[0] != 1 {
		t.Errorf("star 0 links = %v, want [1]", got)
	}
	if got := f.Stars()[1].Links; len(got) != 1 || got[0] != 0 {
		t.Errorf("star 1 links = %v, want [0]", got)
	}
	if got := f.Stars()[2].Links; len(got) != 0 {
		t.Errorf("star 2 links = %v, want none", got)
	}

	first := c.lines[0]
	if first.x0 != 100 || first.x1 != 130 {
		t.Fatalf("first line = %+v, want star 0 to star 1", first)
	}
	_, alpha := first.paint.At(0)
	want := (1 - 30.0/50) * 0.15
	if math.Abs(alpha-want) > 1e-9 {
		t.Errorf("line alpha = %f, want %f", alpha, want)
	}
	for _, dot := range c.circles {
		if dot.r != StarRadius {
			t.Errorf("star radius = %f, want %f", dot.r, StarRadius)
		}
		if _, a := dot.paint.At(0); a != StarAlpha {
			t.Errorf("star alpha = %f, want %f", a, StarAlpha)
		}
	}
}

func TestConstellationZeroSurface(t *testing.T) {
	f := NewConstellation(rand.New(rand.NewSource(1)))
	f.Reset(0, 0)

	c := &recordingCanvas{}
	f.Frame(c)
	if f.Len() != 0 || len(c.lines) != 0 || len(c.circles) != 0 {
		t.Errorf("expected an empty frame, got %d stars, %d lines, %d circles", f.Len(), len(c.lines), len(c.circles))
	}
}
