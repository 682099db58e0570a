package imgfmt

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Thumbnail scales img to fit in a size×size box and saves it to path. The
// output format follows the path extension.
func Thumbnail(img image.Image, size int, path string) error {
	if img == nil {
		return fmt.Errorf("thumbnail: %w", ErrNoHeader)
	}
	if size <= 0 {
		return fmt.Errorf("thumbnail: size must be positive, got %d", size)
	}
	thumb := imaging.Fit(img, size, size, imaging.Lanczos)
	if err := imaging.Save(thumb, path); err != nil {
		return fmt.Errorf("thumbnail: %w", err)
	}
	return nil
}
