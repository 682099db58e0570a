package render_test

import (
	"errors"
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/palette"
	"github.com/san-kum/mandel/internal/render"
)

// countingAllocator fails the failAt-th request (1-based) and records how
// many grids are handed out and given back.
type countingAllocator struct {
	inner  render.Allocator
	failAt int

	mu        sync.Mutex
	requests  int
	allocated int
	released  int
}

func (a *countingAllocator) Allocate(w, h int) (*render.Grid, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.requests++
	if a.failAt > 0 && a.requests == a.failAt {
		return nil, fmt.Errorf("%w: simulated", render.ErrAllocation)
	}
	g, err := a.inner.Allocate(w, h)
	if err == nil {
		a.allocated++
	}
	return g, err
}

func (a *countingAllocator) Release(g *render.Grid) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.released++
	a.inner.Release(g)
}

// failingSink errors on the n-th pixel.
type failingSink struct {
	render.Buffer
	failAt int
}

var errSinkFull = errors.New("sink full")

func (s *failingSink) WritePixel(c palette.RGB) error {
	if len(s.Pixels)+1 == s.failAt {
		return errSinkFull
	}
	return s.Buffer.WritePixel(c)
}

func baseConfig(width, height, workers int) render.Config {
	return render.Config{
		View: fractal.View{
			Width:   width,
			Height:  height,
			Workers: workers,
			Zoom:    1,
			Center:  fractal.Point{Real: -0.5},
		},
		Color: palette.Config{
			MaxIterations:     80,
			HueLimiter:        1,
			ConstantLightness: 0.5,
			MaxLightness:      1,
			LightDistribution: 4,
		},
		Kind: fractal.Mandelbrot(),
	}
}

func renderInto(fn func(render.Config) error, cfg render.Config) *render.Buffer {
	buf := &render.Buffer{}
	cfg.Sink = buf
	ExpectWithOffset(1, fn(cfg)).To(Succeed())
	return buf
}

var _ = Describe("Renderers", func() {
	Describe("end-to-end 4x4 Mandelbrot", func() {
		var buf *render.Buffer

		BeforeEach(func() {
			cfg := render.Config{
				View:  fractal.View{Width: 4, Height: 4, Workers: 1, Zoom: 1},
				Color: palette.Config{MaxIterations: 50, HueLimiter: 1, ConstantLightness: 0.5},
				Kind:  fractal.Mandelbrot(),
			}
			buf = renderInto(render.Sequential, cfg)
		})

		It("writes one header with the full size", func() {
			Expect(buf.Headers).To(Equal(1))
			Expect(buf.Width).To(Equal(4))
			Expect(buf.Height).To(Equal(4))
		})

		It("emits every pixel", func() {
			Expect(buf.Pixels).To(HaveLen(16))
		})

		It("colors the top-left corner pure red", func() {
			Expect(buf.Pixels[0]).To(Equal(palette.RGB{R: 255, G: 0, B: 0}))
		})

		It("colors the origin black", func() {
			// pixel (2,2) maps to c = 0
			Expect(buf.Row(2)[2]).To(Equal(palette.Black))
		})
	})

	Describe("Parallel", func() {
		It("matches Sequential with a single worker", func() {
			seq := renderInto(render.Sequential, baseConfig(37, 23, 1))
			par := renderInto(render.Parallel, baseConfig(37, 23, 1))
			Expect(par.Pixels).To(Equal(seq.Pixels))
			Expect(par.Width).To(Equal(seq.Width))
			Expect(par.Height).To(Equal(seq.Height))
		})

		DescribeTable("matches Sequential when rows divide evenly",
			func(width, height, workers int) {
				seq := renderInto(render.Sequential, baseConfig(width, height, 1))
				par := renderInto(render.Parallel, baseConfig(width, height, workers))
				Expect(par.Pixels).To(Equal(seq.Pixels))
			},
			Entry("2 workers", 31, 20, 2),
			Entry("4 workers", 16, 16, 4),
			Entry("5 workers", 9, 25, 5),
			Entry("one row each", 12, 6, 6),
		)

		It("drops the trailing rows when height is not divisible", func() {
			seq := renderInto(render.Sequential, baseConfig(8, 10, 1))
			par := renderInto(render.Parallel, baseConfig(8, 10, 3))

			Expect(par.Height).To(Equal(10), "header still declares the full height")
			Expect(par.Pixels).To(HaveLen(9 * 8))
			Expect(par.Pixels).To(Equal(seq.Pixels[:9*8]))
			Expect(par.Row(9)).To(BeNil())
		})

		It("emits only the header when there are more workers than rows", func() {
			par := renderInto(render.Parallel, baseConfig(5, 3, 4))
			Expect(par.Headers).To(Equal(1))
			Expect(par.Pixels).To(BeEmpty())
		})

		It("renders Julia sets identically to Sequential", func() {
			cfg := baseConfig(24, 18, 1)
			cfg.Kind = fractal.Julia(fractal.Point{Real: -0.8, Imag: 0.156})
			cfg.View.Center = fractal.Point{}
			seq := renderInto(render.Sequential, cfg)

			cfg.View.Workers = 3
			par := renderInto(render.Parallel, cfg)
			Expect(par.Pixels).To(Equal(seq.Pixels))
		})

		DescribeTable("rolls back on allocation failure",
			func(workers, failAt int) {
				alloc := &countingAllocator{inner: render.NewPoolAllocator(0), failAt: failAt}
				buf := &render.Buffer{}
				cfg := baseConfig(10, 12, workers)
				cfg.Sink = buf
				cfg.Allocator = alloc

				err := render.Parallel(cfg)

				Expect(err).To(MatchError(render.ErrAllocation))
				var aerr *render.AllocationError
				Expect(errors.As(err, &aerr)).To(BeTrue())
				Expect(aerr.Worker).To(Equal(failAt - 1))

				Expect(alloc.allocated).To(Equal(failAt - 1))
				Expect(alloc.released).To(Equal(failAt - 1))
				Expect(buf.Headers).To(BeZero())
				Expect(buf.Pixels).To(BeEmpty())
			},
			Entry("first grid", 4, 1),
			Entry("middle grid", 4, 3),
			Entry("last grid", 4, 4),
			Entry("single worker", 1, 1),
		)

		It("releases every grid after a successful render", func() {
			alloc := &countingAllocator{inner: render.NewPoolAllocator(0)}
			cfg := baseConfig(10, 12, 4)
			cfg.Sink = &render.Buffer{}
			cfg.Allocator = alloc

			Expect(render.Parallel(cfg)).To(Succeed())
			Expect(alloc.allocated).To(Equal(4))
			Expect(alloc.released).To(Equal(4))
		})

		It("releases every grid when the sink fails during the merge", func() {
			alloc := &countingAllocator{inner: render.NewPoolAllocator(0)}
			cfg := baseConfig(10, 12, 4)
			cfg.Sink = &failingSink{failAt: 25}
			cfg.Allocator = alloc

			Expect(render.Parallel(cfg)).To(MatchError(errSinkFull))
			Expect(alloc.released).To(Equal(4))
		})

		It("fails on a memory budget without writing", func() {
			buf := &render.Buffer{}
			cfg := baseConfig(100, 100, 4)
			cfg.Sink = buf
			// room for three 100x25 grids but not four
			cfg.Allocator = render.NewPoolAllocator(3 * 100 * 25 * render.BytesPerPixel)

			err := render.Parallel(cfg)
			Expect(err).To(MatchError(render.ErrAllocation))
			Expect(err).To(MatchError(render.ErrMemoryBudget))
			Expect(buf.Headers).To(BeZero())
		})
	})

	Describe("Sequential", func() {
		It("reports allocation failure without writing", func() {
			alloc := &countingAllocator{inner: render.NewPoolAllocator(0), failAt: 1}
			buf := &render.Buffer{}
			cfg := baseConfig(10, 10, 1)
			cfg.Sink = buf
			cfg.Allocator = alloc

			err := render.Sequential(cfg)
			Expect(err).To(MatchError(render.ErrAllocation))

			var aerr *render.AllocationError
			Expect(errors.As(err, &aerr)).To(BeTrue())
			Expect(aerr.Worker).To(Equal(-1))
			Expect(aerr.Bytes).To(Equal(int64(300)))
			Expect(buf.Headers).To(BeZero())
			Expect(buf.Pixels).To(BeEmpty())
		})

		It("releases its grid", func() {
			alloc := render.NewPoolAllocator(0)
			cfg := baseConfig(10, 10, 1)
			cfg.Sink = &render.Buffer{}
			cfg.Allocator = alloc

			Expect(render.Sequential(cfg)).To(Succeed())
			Expect(alloc.InUse()).To(BeZero())
		})
	})

	Describe("Streaming", func() {
		It("matches Sequential byte for byte", func() {
			seq := renderInto(render.Sequential, baseConfig(33, 21, 1))
			str := renderInto(render.Streaming, baseConfig(33, 21, 1))
			Expect(str.Pixels).To(Equal(seq.Pixels))
			Expect(str.Headers).To(Equal(1))
		})

		It("propagates sink errors", func() {
			cfg := baseConfig(10, 10, 1)
			sink := &failingSink{failAt: 7}
			cfg.Sink = sink

			err := render.Streaming(cfg)
			Expect(err).To(MatchError(errSinkFull))
			Expect(sink.Pixels).To(HaveLen(6))
		})

		It("never touches the allocator", func() {
			alloc := &countingAllocator{inner: render.NewPoolAllocator(0)}
			cfg := baseConfig(10, 10, 1)
			cfg.Sink = &render.Buffer{}
			cfg.Allocator = alloc

			Expect(render.Streaming(cfg)).To(Succeed())
			Expect(alloc.requests).To(BeZero())
		})
	})

	Describe("Render", func() {
		It("rejects a missing sink", func() {
			cfg := baseConfig(4, 4, 1)
			for _, s := range []render.Strategy{render.StrategySequential, render.StrategyParallel, render.StrategyStreaming} {
				Expect(render.Render(cfg, s)).To(MatchError(render.ErrNoSink))
			}
		})

		It("rejects an unknown strategy", func() {
			cfg := baseConfig(4, 4, 1)
			cfg.Sink = &render.Buffer{}
			Expect(render.Render(cfg, render.Strategy(42))).To(MatchError(render.ErrUnknownStrategy))
		})

		It("produces the same image with every strategy", func() {
			var images [][]palette.RGB
			for _, s := range []render.Strategy{render.StrategySequential, render.StrategyParallel, render.StrategyStreaming} {
				buf := &render.Buffer{}
				cfg := baseConfig(20, 20, 1)
				if s == render.StrategyParallel {
					cfg.View.Workers = 4
				}
				cfg.Sink = buf
				Expect(render.Render(cfg, s)).To(Succeed())
				images = append(images, buf.Pixels)
			}
			Expect(images[1]).To(Equal(images[0]))
			Expect(images[2]).To(Equal(images[0]))
		})
	})

	DescribeTable("SelectStrategy",
		func(workers int, lowMem bool, want render.Strategy) {
			Expect(render.SelectStrategy(workers, lowMem)).To(Equal(want))
		},
		Entry("defaults to sequential", 1, false, render.StrategySequential),
		Entry("low memory streams", 1, true, render.StrategyStreaming),
		Entry("threads override low memory", 4, true, render.StrategyParallel),
		Entry("threads", 2, false, render.StrategyParallel),
	)

	It("parses strategy names", func() {
		s, err := render.ParseStrategy("Streaming")
		Expect(err).NotTo(HaveOccurred())
		Expect(s).To(Equal(render.StrategyStreaming))

		_, err = render.ParseStrategy("gpu")
		Expect(err).To(MatchError(render.ErrUnknownStrategy))
	})
})
