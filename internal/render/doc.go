// Package render turns a fractal view into a stream of pixels.
//
// Three strategies share the same per-pixel math and the same emission
// order:
//
//   - [Sequential]: fills one full-size [Grid], then emits it
//   - [Parallel]: row-interleaved worker pool with private grids, merged by
//     interlacing
//   - [Streaming]: no grid; each pixel goes straight to the [Sink]
//
// # Example
//
//	cfg := render.Config{
//		View:  fractal.View{Width: 800, Height: 600, Workers: 4, Zoom: 1},
//		Color: palette.Config{MaxIterations: 360, HueLimiter: 1, ConstantLightness: 0.5},
//		Kind:  fractal.Mandelbrot(),
//		Sink:  tga,
//	}
//	err := render.Render(cfg, render.SelectStrategy(4, false))
//
// # Partitioning
//
// Worker i of the parallel renderer owns rows i, i+n, i+2n, ... and each
// worker renders Height/n rows. When Height is not a multiple of n the
// trailing Height%n rows are never rendered or emitted.
//
// # Errors
//
// Grid allocation failures return an [*AllocationError] wrapping
// [ErrAllocation]; nothing has been written to the sink at that point.
// Sink errors are wrapped and returned as-is.
package render
