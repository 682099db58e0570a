package render

import "fmt"

// Sequential renders the whole image into one grid on the calling goroutine
// and then writes it to the sink. If the grid cannot be allocated nothing is
// written.
func Sequential(cfg Config) error {
	if cfg.Sink == nil {
		return ErrNoSink
	}
	v := cfg.View
	alloc := cfg.allocator()

	grid, err := alloc.Allocate(v.Width, v.Height)
	if err != nil {
		aerr := newAllocationError(-1, v.Width, v.Height, err)
		Logger().Warn("grid allocation failed", "strategy", StrategySequential, "bytes", aerr.Bytes, "err", err)
		return aerr
	}
	defer alloc.Release(grid)

	sh := newShader(cfg)
	for y := 0; y < v.Height; y++ {
		row := grid.Row(y)
		for x := range row {
			row[x] = sh.at(x, y)
		}
	}

	return writeGrid(cfg.Sink, grid)
}

func writeGrid(sink Sink, g *Grid) error {
	if err := sink.WriteHeader(g.Width, g.Height); err != nil {
		return fmt.Errorf("render: write header: %w", err)
	}
	for y := 0; y < g.Height; y++ {
		for x, c := range g.Row(y) {
			if err := sink.WritePixel(c); err != nil {
				return fmt.Errorf("render: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	return nil
}
