package render

import "github.com/san-kum/mandel/internal/palette"

// Sink receives the rendered image. WriteHeader is called once before any
// pixel; WritePixel is then called in row-major order, top row first.
type Sink interface {
	WriteHeader(width, height int) error
	WritePixel(c palette.RGB) error
}

// Buffer is a Sink that keeps everything written to it in memory.
type Buffer struct {
	Width   int
	Height  int
	Headers int
	Pixels  []palette.RGB
}

func (b *Buffer) WriteHeader(width, height int) error {
	b.Width, b.Height = width, height
	b.Headers++
	return nil
}

func (b *Buffer) WritePixel(c palette.RGB) error {
	b.Pixels = append(b.Pixels, c)
	return nil
}

// Row returns row y of the emitted pixels, or nil if it was never written.
func (b *Buffer) Row(y int) []palette.RGB {
	if y < 0 || b.Width == 0 || (y+1)*b.Width > len(b.Pixels) {
		return nil
	}
	return b.Pixels[y*b.Width : (y+1)*b.Width]
}
