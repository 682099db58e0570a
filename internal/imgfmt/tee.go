package imgfmt

import (
	"errors"

	"github.com/san-kum/mandel/internal/palette"
	"github.com/san-kum/mandel/internal/render"
)

type tee struct {
	sinks []render.Sink
}

// Tee returns a sink that forwards every call to all sinks in order,
// stopping at the first error.
func Tee(sinks ...render.Sink) Encoder {
	return &tee{sinks: sinks}
}

func (t *tee) WriteHeader(width, height int) error {
	for _, s := range t.sinks {
		if err := s.WriteHeader(width, height); err != nil {
			return err
		}
	}
	return nil
}

func (t *tee) WritePixel(c palette.RGB) error {
	for _, s := range t.sinks {
		if err := s.WritePixel(c); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes every sink that is an Encoder and joins their errors.
func (t *tee) Flush() error {
	var errs []error
	for _, s := range t.sinks {
		if e, ok := s.(Encoder); ok {
			errs = append(errs, e.Flush())
		}
	}
	return errors.Join(errs...)
}
