package render

import (
	"fmt"
	"math"
	"sync"

	"github.com/san-kum/mandel/internal/palette"
)

// BytesPerPixel is the packed size of one RGB pixel.
const BytesPerPixel = 3

// Grid is a width×height block of pixels owned by a single renderer or
// worker.
type Grid struct {
	Width  int
	Height int
	pix    []palette.RGB
}

func (g *Grid) Set(x, y int, c palette.RGB) {
	g.pix[y*g.Width+x] = c
}

func (g *Grid) At(x, y int) palette.RGB {
	return g.pix[y*g.Width+x]
}

// Row returns row y without copying.
func (g *Grid) Row(y int) []palette.RGB {
	return g.pix[y*g.Width : (y+1)*g.Width]
}

// Bytes is the packed size of the grid.
func (g *Grid) Bytes() int64 {
	return GridBytes(g.Width, g.Height)
}

// GridBytes returns the packed size of a width×height grid, saturating at
// math.MaxInt64.
func GridBytes(width, height int) int64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	w, h := int64(width), int64(height)
	if w > math.MaxInt64/BytesPerPixel/h {
		return math.MaxInt64
	}
	return w * h * BytesPerPixel
}

// Allocator hands out pixel grids. Every grid returned by Allocate must be
// passed to Release exactly once.
type Allocator interface {
	Allocate(width, height int) (*Grid, error)
	Release(g *Grid)
}

// PoolAllocator recycles released grids and refuses requests that would push
// outstanding memory past its limit.
type PoolAllocator struct {
	limit int64

	mu    sync.Mutex
	inUse int64

	pool sync.Pool
}

// NewPoolAllocator returns an allocator with the given byte limit. A limit of
// zero or less means unlimited.
func NewPoolAllocator(limit int64) *PoolAllocator {
	return &PoolAllocator{limit: limit}
}

var defaultAllocator = NewPoolAllocator(0)

// DefaultAllocator is used when a Config does not name one.
func DefaultAllocator() Allocator { return defaultAllocator }

func (a *PoolAllocator) Allocate(width, height int) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrAllocation, ErrGridSize, width, height)
	}
	size := GridBytes(width, height)
	if size == math.MaxInt64 || size/BytesPerPixel > int64(math.MaxInt) {
		return nil, fmt.Errorf("%w: %w: %dx%d", ErrAllocation, ErrGridSize, width, height)
	}

	a.mu.Lock()
	if a.limit > 0 && a.inUse+size > a.limit {
		inUse := a.inUse
		a.mu.Unlock()
		return nil, fmt.Errorf("%w: %w: need %d bytes, %d of %d in use",
			ErrAllocation, ErrMemoryBudget, size, inUse, a.limit)
	}
	a.inUse += size
	a.mu.Unlock()

	n := width * height
	return &Grid{Width: width, Height: height, pix: a.get(n)}, nil
}

func (a *PoolAllocator) get(n int) []palette.RGB {
	if p, ok := a.pool.Get().(*[]palette.RGB); ok && cap(*p) >= n {
		s := (*p)[:n]
		clear(s)
		return s
	}
	return make([]palette.RGB, n)
}

func (a *PoolAllocator) Release(g *Grid) {
	if g == nil || g.pix == nil {
		return
	}
	a.mu.Lock()
	a.inUse -= g.Bytes()
	a.mu.Unlock()

	if cap(g.pix) > 0 {
		s := g.pix[:0]
		a.pool.Put(&s)
	}
	g.pix = nil
}

// InUse reports the bytes currently handed out.
func (a *PoolAllocator) InUse() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inUse
}
