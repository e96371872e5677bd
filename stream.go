package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/field"
	"github.com/harshit0019/portfolio/internal/raster"
)

const (
	maxWidth     = 1920
	maxHeight    = 1080
	maxFrames    = 600
	posterWidth  = 1200
	posterHeight = 800
	posterFrames = 60
)

type wireStop struct {
	Offset float64 `json:"o"`
	Color  string  `json:"c"`
	Alpha  float64 `json:"a"`
}

type wireCircle struct {
	X     float64    `json:"x"`
	Y     float64    `json:"y"`
	R     float64    `json:"r"`
	Stops []wireStop `json:"stops"`
}

type wireLine struct {
	X0    float64 `json:"x0"`
	Y0    float64 `json:"y0"`
	X1    float64 `json:"x1"`
	Y1    float64 `json:"y1"`
	Color string  `json:"c"`
	Alpha float64 `json:"a"`
}

// wireFrame is the JSON payload of one "frame" event.
type wireFrame struct {
	Layer   string       `json:"layer"`
	Opacity float64      `json:"opacity"`
	Seq     uint64       `json:"seq"`
	Width   int          `json:"w"`
	Height  int          `json:"h"`
	Circles []wireCircle `json:"circles"`
	Lines   []wireLine   `json:"lines"`
}

func encodeFrame(spec backdrop.Spec, f backdrop.Frame) wireFrame {
	out := wireFrame{
		Layer:   spec.Name,
		Opacity: spec.Opacity,
		Seq:     f.Seq,
		Width:   f.Width,
		Height:  f.Height,
		Circles: []wireCircle{},
		Lines:   []wireLine{},
	}
	for _, op := range f.Ops {
		switch op.Kind {
		case backdrop.OpCircle:
			out.Circles = append(out.Circles, wireCircle{X: op.X0, Y: op.Y0, R: op.R, Stops: stops(op.Paint)})
		case backdrop.OpLine:
			col, alpha := op.Paint.At(0)
			out.Lines = append(out.Lines, wireLine{
				X0: op.X0, Y0: op.Y0, X1: op.X1, Y1: op.Y1,
				Color: col.Clamped().Hex(), Alpha: alpha,
			})
		}
	}
	return out
}

func stops(p field.Paint) []wireStop {
	switch p := p.(type) {
	case field.Solid:
		return []wireStop{{Offset: 0, Color: p.Color.Clamped().Hex(), Alpha: p.Alpha}}
	case field.Gradient:
		out := make([]wireStop, len(p.Stops))
		for i, s := range p.Stops {
			out[i] = wireStop{Offset: s.Offset, Color: s.Color.Clamped().Hex(), Alpha: s.Alpha}
		}
		return out
	}
	c0, a0 := p.At(0)
	c1, a1 := p.At(1)
	return []wireStop{
		{Offset: 0, Color: c0.Clamped().Hex(), Alpha: a0},
		{Offset: 1, Color: c1.Clamped().Hex(), Alpha: a1},
	}
}

// poster serves /backdrop/<mode>.png.
func (s *server) poster(c *gin.Context) {
	name, ok := strings.CutSuffix(c.Param("mode"), ".png")
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return
	}
	mode, err := backdrop.ParseMode(name)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}

	w, err := queryInt(c, "w", posterWidth, 1, maxWidth)
	if err != nil {
		badQuery(c, err)
		return
	}
	h, err := queryInt(c, "h", posterHeight, 1, maxHeight)
	if err != nil {
		badQuery(c, err)
		return
	}
	frames, err := queryInt(c, "frames", posterFrames, 0, maxFrames)
	if err != nil {
		badQuery(c, err)
		return
	}
	seed, err := querySeed(c)
	if err != nil {
		badQuery(c, err)
		return
	}

	var buf bytes.Buffer
	if err := raster.EncodePNG(&buf, raster.Poster(mode, w, h, frames, seed)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error, please try again later"})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// stream serves /backdrop/<mode>/stream. Each connection mounts its own
// fields sized from the query; the browser reconnects with a new size when
// its window is resized, which regenerates the fields.
func (s *server) stream(c *gin.Context) {
	mode, err := backdrop.ParseMode(c.Param("mode"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	}
	w, err := queryInt(c, "w", posterWidth, 0, maxWidth)
	if err != nil {
		badQuery(c, err)
		return
	}
	h, err := queryInt(c, "h", posterHeight, 0, maxHeight)
	if err != nil {
		badQuery(c, err)
		return
	}
	seed, err := querySeed(c)
	if err != nil {
		badQuery(c, err)
		return
	}

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	interval := time.Second / time.Duration(s.cfg.BackdropFPS)
	vp := backdrop.NewViewport(w, h)
	specs := mode.Layers()
	recordings := make([]*backdrop.Recording, len(specs))
	notify := make(chan int, len(specs))

	for i, spec := range specs {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		recordings[i] = backdrop.NewRecording()
		layer := backdrop.Mount(vp, ticker.C, recordings[i], spec.New(rand.New(rand.NewSource(seed+int64(i)))))
		defer layer.Unmount()

		go forward(ctx, recordings[i].Updates(), i, notify)
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	c.Stream(func(io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case i := <-notify:
			c.SSEvent("frame", encodeFrame(specs[i], recordings[i].Snapshot()))
			return true
		}
	})
}

func forward(ctx context.Context, updates <-chan struct{}, i int, notify chan<- int) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-updates:
			select {
			case notify <- i:
			case <-ctx.Done():
				return
			}
		}
	}
}

func queryInt(c *gin.Context, key string, def, lo, hi int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", key)
	}
	return min(max(n, lo), hi), nil
}

func querySeed(c *gin.Context) (int64, error) {
	v := c.Query("seed")
	if v == "" {
		return time.Now().UnixNano(), nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, errors.New("seed must be an integer")
	}
	return n, nil
}

func badQuery(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
}
