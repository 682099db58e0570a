package imgfmt

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/san-kum/mandel/internal/palette"
)

// Image collects pixels into an *image.RGBA and encodes it on Flush. Pixels
// that are never written stay black.
type Image struct {
	w      io.Writer
	format Format
	img    *image.RGBA
	x, y   int
}

// NewImage returns a buffering sink. w may be nil when the image is only
// needed in memory.
func NewImage(w io.Writer, f Format) *Image {
	return &Image{w: w, format: f}
}

func (m *Image) WriteHeader(width, height int) error {
	m.img = image.NewRGBA(image.Rect(0, 0, width, height))
	// opaque black background so dropped rows are not transparent
	for i := 3; i < len(m.img.Pix); i += 4 {
		m.img.Pix[i] = 0xFF
	}
	m.x, m.y = 0, 0
	return nil
}

func (m *Image) WritePixel(c palette.RGB) error {
	if m.img == nil {
		return ErrNoHeader
	}
	b := m.img.Bounds()
	if m.y >= b.Dy() {
		return ErrPixelOverflow
	}
	m.img.SetRGBA(m.x, m.y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF})
	m.x++
	if m.x == b.Dx() {
		m.x = 0
		m.y++
	}
	return nil
}

// Image returns the collected image, or nil before the header.
func (m *Image) Image() *image.RGBA { return m.img }

func (m *Image) Flush() error {
	if m.w == nil {
		return nil
	}
	if m.img == nil {
		return ErrNoHeader
	}
	var err error
	switch m.format {
	case FormatPNG:
		err = png.Encode(m.w, m.img)
	case FormatBMP:
		err = bmp.Encode(m.w, m.img)
	case FormatTIFF:
		err = tiff.Encode(m.w, m.img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
	default:
		return fmt.Errorf("%w: %s cannot be buffered", ErrUnknownFormat, m.format)
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", m.format, err)
	}
	return nil
}
