package analysis

import (
	"math"

	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/mandel/internal/fractal"
)

const minRowsPerChunk = 8

// Escapes returns the escape value of every pixel of view, row-major.
// Unlike the renderers it covers every row regardless of view.Workers.
func Escapes(view fractal.View, kind fractal.Kind, maxIterations int) []int {
	if view.Width <= 0 || view.Height <= 0 {
		return nil
	}

	m := fractal.NewMapper(view)
	values := make([]int, view.Width*view.Height)

	parallelFor(view.Height, minRowsPerChunk, func(start, end int) {
		for y := start; y < end; y++ {
			row := values[y*view.Width : (y+1)*view.Width]
			for x := range row {
				row[x] = fractal.EscapeValue(maxIterations, m.Point(x, y), kind)
			}
		}
	})

	return values
}

type Histogram struct {
	MaxIterations int
	// Counts[b] holds escaping pixels with value in bin b; bin 0 escaped last.
	Counts   []int
	Interior int
	Total    int
}

func NewHistogram(values []int, maxIterations, bins int) *Histogram {
	if bins < 1 {
		bins = 1
	}
	if maxIterations < 1 {
		maxIterations = 1
	}
	if bins > maxIterations {
		bins = maxIterations
	}

	h := &Histogram{
		MaxIterations: maxIterations,
		Counts:        make([]int, bins),
		Total:         len(values),
	}
	for _, v := range values {
		if v <= 0 {
			h.Interior++
			continue
		}
		if v > maxIterations {
			v = maxIterations
		}
		h.Counts[(v-1)*bins/maxIterations]++
	}
	return h
}

// BinRange is the inclusive escape value range of bin b.
func (h *Histogram) BinRange(b int) (lo, hi int) {
	bins := len(h.Counts)
	lo = (b*h.MaxIterations+bins-1)/bins + 1
	hi = ((b+1)*h.MaxIterations + bins - 1) / bins
	return lo, hi
}

func (h *Histogram) Series() []float64 {
	s := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		s[i] = float64(c)
	}
	return s
}

// Plot draws the bin counts as an ASCII line chart.
func (h *Histogram) Plot(width, height int) string {
	return asciigraph.Plot(h.Series(),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption("escaping pixels per escape value bin"),
	)
}

type Stats struct {
	Pixels           int     `json:"pixels"`
	Interior         int     `json:"interior"`
	InteriorFraction float64 `json:"interior_fraction"`
	MeanEscape       float64 `json:"mean_escape"`
	MinEscape        int     `json:"min_escape"`
	MaxEscape        int     `json:"max_escape"`
}

// Summarize ignores interior pixels for the escape mean and range.
func Summarize(values []int) Stats {
	st := Stats{Pixels: len(values)}
	if len(values) == 0 {
		return st
	}

	minE, maxE := math.MaxInt, 0
	sum := 0
	for _, v := range values {
		if v <= 0 {
			st.Interior++
			continue
		}
		sum += v
		if v < minE {
			minE = v
		}
		if v > maxE {
			maxE = v
		}
	}

	st.InteriorFraction = float64(st.Interior) / float64(st.Pixels)
	if escaped := st.Pixels - st.Interior; escaped > 0 {
		st.MeanEscape = float64(sum) / float64(escaped)
		st.MinEscape = minE
		st.MaxEscape = maxE
	}
	return st
}
