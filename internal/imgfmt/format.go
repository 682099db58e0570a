package imgfmt

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/san-kum/mandel/internal/render"
)

var (
	ErrUnknownFormat = errors.New("imgfmt: unknown image format")
	ErrTooLarge      = errors.New("imgfmt: image dimensions exceed format limit")
	ErrPixelOverflow = errors.New("imgfmt: more pixels than the header declared")
	ErrNoHeader      = errors.New("imgfmt: pixel written before header")
)

// Encoder is a render.Sink backed by an output stream. Flush must be called
// after a successful render.
type Encoder interface {
	render.Sink
	Flush() error
}

type Format int

const (
	FormatTGA Format = iota
	FormatPNG
	FormatBMP
	FormatTIFF
)

var formatNames = []string{"tga", "png", "bmp", "tiff"}

func (f Format) String() string {
	if int(f) >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// Streams reports whether the format can be written without buffering the
// image.
func (f Format) Streams() bool {
	return f == FormatTGA
}

func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimPrefix(name, "."))
	switch name {
	case "tga", "targa":
		return FormatTGA, nil
	case "png":
		return FormatPNG, nil
	case "bmp":
		return FormatBMP, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%w: %q has no extension", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// CheckSize reports whether a width×height image fits the format.
func CheckSize(f Format, width, height int) error {
	if f == FormatTGA && (width > tgaMaxDim || height > tgaMaxDim) {
		return fmt.Errorf("%w: tga is limited to %dx%d, got %dx%d", ErrTooLarge, tgaMaxDim, tgaMaxDim, width, height)
	}
	return nil
}

// New returns an encoder writing f to w.
func New(w io.Writer, f Format) (Encoder, error) {
	switch f {
	case FormatTGA:
		return NewTGA(w), nil
	case FormatPNG, FormatBMP, FormatTIFF:
		return NewImage(w, f), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(f))
}
