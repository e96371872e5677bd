package backdrop_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/harshit0019/portfolio/internal/backdrop"
	"github.com/harshit0019/portfolio/internal/field"
)

var _ = Describe("Viewport", func() {
	It("delivers the latest size to every subscriber", func() {
		vp := backdrop.NewViewport(800, 600)
		a, unsubA := vp.Subscribe()
		b, unsubB := vp.Subscribe()
		defer unsubA()
		defer unsubB()

		vp.Resize(1024, 768)
		vp.Resize(1280, 720)

		Expect(vp.Size()).To(Equal(backdrop.Size{Width: 1280, Height: 720}))
		Expect(a).To(Receive(Equal(backdrop.Size{Width: 1280, Height: 720})))
		Expect(b).To(Receive(Equal(backdrop.Size{Width: 1280, Height: 720})))
		Expect(a).NotTo(Receive())
	})

	It("stops notifying after unsubscribe", func() {
		vp := backdrop.NewViewport(800, 600)
		ch, unsub := vp.Subscribe()
		unsub()
		unsub()

		vp.Resize(10, 10)
		Expect(ch).NotTo(Receive())
		Expect(vp.Subscribers()).To(Equal(0))
	})
})

var _ = Describe("Mode", func() {
	DescribeTable("parsing",
		func(in string, want backdrop.Mode) {
			m, err := backdrop.ParseMode(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(m).To(Equal(want))
		},
		Entry("empty defaults to both", "", backdrop.Both),
		Entry("particles", "particles", backdrop.Particles),
		Entry("mixed case", " Constellation ", backdrop.Constellation),
		Entry("both", "both", backdrop.Both),
	)

	It("rejects unknown modes", func() {
		_, err := backdrop.ParseMode("waves")
		Expect(errors.Is(err, backdrop.ErrUnknownMode)).To(BeTrue())
	})

	It("stacks particles under the dimmed constellation", func() {
		layers := backdrop.Both.Layers()
		Expect(layers).To(HaveLen(2))
		Expect(layers[0].Name).To(Equal("particles"))
		Expect(layers[0].Opacity).To(Equal(1.0))
		Expect(layers[1].Name).To(Equal("constellation"))
		Expect(layers[1].Opacity).To(Equal(0.5))
		Expect(backdrop.Mode("waves").Layers()).To(BeEmpty())
	})
})

var _ = Describe("Recording", func() {
	It("publishes only presented frames", func() {
		rec := backdrop.NewRecording()
		rec.Resize(200, 100)

		c, ok := rec.Canvas()
		Expect(ok).To(BeTrue())
		c.Clear()
		c.FillCircle(10, 20, 3, field.Solid{Color: field.Amber, Alpha: 0.5})
		c.StrokeLine(0, 0, 50, 50, field.Solid{Color: field.Amber, Alpha: 0.1})
		Expect(rec.Snapshot().Ops).To(BeEmpty())

		rec.Present()
		Expect(rec.Updates()).To(Receive())

		frame := rec.Snapshot()
		Expect(frame.Seq).To(BeEquivalentTo(1))
		Expect(frame.Width).To(Equal(200))
		Expect(frame.Ops).To(HaveLen(2))
		Expect(frame.Ops[0].Kind).To(Equal(backdrop.OpCircle))
		Expect(frame.Ops[1].Kind).To(Equal(backdrop.OpLine))
		Expect(frame.Ops[1].X1).To(Equal(50.0))
	})

	It("reports no canvas while detached", func() {
		rec := backdrop.NewRecording()
		rec.Detach()
		_, ok := rec.Canvas()
		Expect(ok).To(BeFalse())
		rec.Attach()
		_, ok = rec.Canvas()
		Expect(ok).To(BeTrue())
	})

	It("replays a frame onto another canvas", func() {
		src := backdrop.NewRecording()
		src.Resize(50, 50)
		c, _ := src.Canvas()
		c.FillCircle(1, 2, 3, field.Glow(1))
		src.Present()

		dst := backdrop.NewRecording()
		dc, _ := dst.Canvas()
		src.Snapshot().Replay(dc)
		dst.Present()

		Expect(dst.Snapshot().Ops).To(Equal(src.Snapshot().Ops))
	})
})
