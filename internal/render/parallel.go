package render

import (
	"fmt"
	"sync"
)

// job is the snapshot a worker receives. Everything except grid is shared
// read-only state copied by value; grid is owned by this worker alone.
type job struct {
	shader
	grid   *Grid
	id     int
	stride int
}

// run renders local row y as global row y*stride+id.
func (j job) run() {
	for y := 0; y < j.grid.Height; y++ {
		gy := y*j.stride + j.id
		row := j.grid.Row(y)
		for x := range row {
			row[x] = j.at(x, gy)
		}
	}
}

// Parallel renders with View.Workers goroutines. Rows are dealt out
// round-robin, every worker draws into its own grid, and the grids are
// interlaced back into top-to-bottom order when all workers are done.
//
// Each worker renders Height/Workers rows; the remaining Height%Workers rows
// at the bottom are not rendered. All grids are allocated before any worker
// starts, and a failed allocation releases the grids already taken and
// returns without touching the sink.
func Parallel(cfg Config) error {
	if cfg.Sink == nil {
		return ErrNoSink
	}
	v := cfg.View
	workers := v.Workers
	if workers < 1 {
		workers = 1
	}
	miniHeight := v.Height / workers
	if dropped := v.Height % workers; dropped > 0 {
		Logger().Warn("height not divisible by workers, trailing rows dropped",
			"height", v.Height, "workers", workers, "dropped", dropped)
	}

	alloc := cfg.allocator()
	grids := make([]*Grid, 0, workers)
	defer func() {
		for _, g := range grids {
			alloc.Release(g)
		}
	}()

	for i := 0; i < workers; i++ {
		g, err := alloc.Allocate(v.Width, miniHeight)
		if err != nil {
			aerr := newAllocationError(i, v.Width, miniHeight, err)
			Logger().Warn("grid allocation failed", "strategy", StrategyParallel,
				"worker", i, "released", len(grids), "bytes", aerr.Bytes, "err", err)
			return aerr
		}
		grids = append(grids, g)
	}

	sh := newShader(cfg)
	var wg sync.WaitGroup
	for i, g := range grids {
		wg.Add(1)
		go func(j job) {
			defer wg.Done()
			j.run()
			Logger().Debug("worker finished", "worker", j.id, "rows", j.grid.Height)
		}(job{shader: sh, grid: g, id: i, stride: workers})
	}
	wg.Wait()

	return interlace(cfg.Sink, v.Width, v.Height, grids)
}

// interlace writes local row r of every worker in worker order, which is
// global row r*len(grids)+worker.
func interlace(sink Sink, width, height int, grids []*Grid) error {
	if err := sink.WriteHeader(width, height); err != nil {
		return fmt.Errorf("render: write header: %w", err)
	}
	if len(grids) == 0 {
		return nil
	}
	for r := 0; r < grids[0].Height; r++ {
		for w, g := range grids {
			for _, c := range g.Row(r) {
				if err := sink.WritePixel(c); err != nil {
					return fmt.Errorf("render: write row %d: %w", r*len(grids)+w, err)
				}
			}
		}
	}
	return nil
}
