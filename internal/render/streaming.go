package render

import "fmt"

// Streaming computes each pixel and hands it straight to the sink. It holds
// no image memory, so the only failures it can report come from the sink.
func Streaming(cfg Config) error {
	if cfg.Sink == nil {
		return ErrNoSink
	}
	v := cfg.View

	if err := cfg.Sink.WriteHeader(v.Width, v.Height); err != nil {
		return fmt.Errorf("render: write header: %w", err)
	}

	sh := newShader(cfg)
	for y := 0; y < v.Height; y++ {
		for x := 0; x < v.Width; x++ {
			if err := cfg.Sink.WritePixel(sh.at(x, y)); err != nil {
				return fmt.Errorf("render: write pixel (%d,%d): %w", x, y, err)
			}
		}
	}
	return nil
}
