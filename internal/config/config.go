package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/palette"
	"github.com/san-kum/mandel/internal/render"
)

const (
	DefaultWidth             = 1920
	DefaultHeight            = 1080
	DefaultWorkers           = 1
	DefaultZoom              = 1.0
	DefaultMaxIterations     = 360
	DefaultConstantLight     = 0.5
	DefaultHueLimiter        = 1.0
	DefaultMaxLight          = 1.0
	DefaultLightDistribution = 4.0
	DefaultJuliaReal         = -0.8
	DefaultJuliaImag         = 0.156
	DefaultOutput            = "mandelbrot.tga"
)

var (
	ErrWidth      = errors.New("width cannot be 0")
	ErrHeight     = errors.New("height cannot be 0")
	ErrZoom       = errors.New("cannot have 0 zoom")
	ErrIterations = errors.New("iteration count cannot be less than 1")
	ErrWorkers    = errors.New("thread count cannot be less than 1")
	ErrMaxMemory  = errors.New("memory limit cannot be negative")
)

type Config struct {
	Width     int  `yaml:"width"`
	Height    int  `yaml:"height"`
	Workers   int  `yaml:"workers"`
	LowMemory bool `yaml:"low_memory"`
	// MaxMemory caps the bytes of pixel grids held at once; 0 is unlimited.
	MaxMemory int64 `yaml:"max_memory"`

	Center fractal.Point `yaml:"center"`
	Zoom   float64       `yaml:"zoom"`

	Julia         bool          `yaml:"julia"`
	JuliaConstant fractal.Point `yaml:"julia_constant"`

	Color  palette.Config `yaml:"color"`
	Output OutputConfig   `yaml:"output"`
}

type OutputConfig struct {
	Path string `yaml:"path"`
	// Format overrides the extension of Path when set.
	Format    string `yaml:"format"`
	Thumbnail int    `yaml:"thumbnail"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:   DefaultWidth,
		Height:  DefaultHeight,
		Workers: DefaultWorkers,
		Zoom:    DefaultZoom,
		JuliaConstant: fractal.Point{
			Real: DefaultJuliaReal,
			Imag: DefaultJuliaImag,
		},
		Color: palette.Config{
			MaxIterations:     DefaultMaxIterations,
			HueLimiter:        DefaultHueLimiter,
			ConstantLightness: DefaultConstantLight,
			MaxLightness:      DefaultMaxLight,
			LightDistribution: DefaultLightDistribution,
		},
		Output: OutputConfig{
			Path: DefaultOutput,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto overlays the keys present in the file onto cfg.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports every problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Width <= 0 {
		errs = append(errs, ErrWidth)
	}
	if c.Height <= 0 {
		errs = append(errs, ErrHeight)
	}
	if c.Zoom == 0 || math.IsNaN(c.Zoom) || math.IsInf(c.Zoom, 0) {
		errs = append(errs, ErrZoom)
	}
	if c.Color.MaxIterations < 1 {
		errs = append(errs, ErrIterations)
	}
	if c.Workers < 1 {
		errs = append(errs, ErrWorkers)
	}
	if c.MaxMemory < 0 {
		errs = append(errs, ErrMaxMemory)
	}
	return errors.Join(errs...)
}

func (c *Config) View() fractal.View {
	return fractal.View{
		Width:   c.Width,
		Height:  c.Height,
		Workers: c.Workers,
		Center:  c.Center,
		Zoom:    c.Zoom,
	}
}

func (c *Config) Kind() fractal.Kind {
	if c.Julia {
		return fractal.Julia(c.JuliaConstant)
	}
	return fractal.Mandelbrot()
}

func (c *Config) Strategy() render.Strategy {
	return render.SelectStrategy(c.Workers, c.LowMemory)
}

// ImageBytes is the packed size of the full image.
func (c *Config) ImageBytes() int64 {
	return render.GridBytes(c.Width, c.Height)
}

// RenderConfig builds the renderer input. alloc may be nil.
func (c *Config) RenderConfig(sink render.Sink, alloc render.Allocator) render.Config {
	return render.Config{
		View:      c.View(),
		Color:     c.Color,
		Kind:      c.Kind(),
		Sink:      sink,
		Allocator: alloc,
	}
}
