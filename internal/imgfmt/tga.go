package imgfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/mandel/internal/palette"
)

const (
	tgaHeaderSize   = 18
	tgaTypeRGB      = 2
	tgaBitsPerPixel = 24
	tgaMaxDim       = 0xFFFF
)

// TGA writes an uncompressed 24-bit Targa image. Pixels go out in the order
// they arrive, stored blue, green, red.
type TGA struct {
	w       *bufio.Writer
	pixel   [3]byte
	written int64
}

func NewTGA(w io.Writer) *TGA {
	return &TGA{w: bufio.NewWriterSize(w, 64*1024)}
}

func (t *TGA) WriteHeader(width, height int) error {
	if err := CheckSize(FormatTGA, width, height); err != nil {
		return err
	}
	var h [tgaHeaderSize]byte
	h[2] = tgaTypeRGB
	h[12] = byte(width & 0xFF)
	h[13] = byte((width & 0xFF00) >> 8)
	h[14] = byte(height & 0xFF)
	h[15] = byte((height & 0xFF00) >> 8)
	h[16] = tgaBitsPerPixel
	_, err := t.w.Write(h[:])
	return err
}

func (t *TGA) WritePixel(c palette.RGB) error {
	t.pixel = [3]byte{c.B, c.G, c.R}
	if _, err := t.w.Write(t.pixel[:]); err != nil {
		return fmt.Errorf("tga: %w", err)
	}
	t.written++
	return nil
}

// Pixels reports how many pixels have been written.
func (t *TGA) Pixels() int64 { return t.written }

func (t *TGA) Flush() error {
	return t.w.Flush()
}
