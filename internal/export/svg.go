package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/mandel/internal/analysis"
	"github.com/san-kum/mandel/internal/viz"
)

// CanvasToSVG draws every set dot of the canvas as a scale×scale square
// on a white page.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.DotWidth()) * scale
	height := float64(canvas.DotHeight()) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<g fill="%s">
`, width, height, width, height, fill)

	for y := 0; y < canvas.DotHeight(); y++ {
		for x := 0; x < canvas.DotWidth(); x++ {
			if canvas.Dot(x, y) {
				fmt.Fprintf(&sb, "<rect x=\"%.1f\" y=\"%.1f\" width=\"%.1f\" height=\"%.1f\"/>\n",
					float64(x)*scale, float64(y)*scale, scale, scale)
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// HistogramToSVG draws the bin counts as a bar chart.
func HistogramToSVG(h *analysis.Histogram, width, height int, fill string) string {
	if h == nil || len(h.Counts) == 0 {
		return ""
	}

	peak := 0
	for _, c := range h.Counts {
		if c > peak {
			peak = c
		}
	}
	if peak == 0 {
		peak = 1
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill))

	barWidth := float64(width) / float64(len(h.Counts))
	for i, c := range h.Counts {
		barHeight := float64(c) / float64(peak) * float64(height)
		lo, hi := h.BinRange(i)
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"><title>%d-%d: %d</title></rect>
`, float64(i)*barWidth, float64(height)-barHeight, barWidth, barHeight, lo, hi, c))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

func WriteFile(path, svg string) error {
	return os.WriteFile(path, []byte(svg), 0644)
}
