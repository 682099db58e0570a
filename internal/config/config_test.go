package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/render"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Color.MaxIterations != 360 {
		t.Errorf("expected 360 iterations, got %d", cfg.Color.MaxIterations)
	}
	if cfg.Workers != 1 {
		t.Errorf("expected 1 worker, got %d", cfg.Workers)
	}
	if cfg.Zoom != 1 {
		t.Errorf("expected zoom 1, got %f", cfg.Zoom)
	}
	if cfg.Julia {
		t.Error("default should render the Mandelbrot set")
	}
	if cfg.JuliaConstant != (fractal.Point{Real: -0.8, Imag: 0.156}) {
		t.Errorf("unexpected julia constant %v", cfg.JuliaConstant)
	}
	if cfg.Output.Path != "mandelbrot.tga" {
		t.Errorf("expected mandelbrot.tga, got %s", cfg.Output.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrWidth},
		{"negative height", func(c *Config) { c.Height = -1 }, ErrHeight},
		{"zero zoom", func(c *Config) { c.Zoom = 0 }, ErrZoom},
		{"nan zoom", func(c *Config) { c.Zoom = math.NaN() }, ErrZoom},
		{"no iterations", func(c *Config) { c.Color.MaxIterations = 0 }, ErrIterations},
		{"no workers", func(c *Config) { c.Workers = 0 }, ErrWorkers},
		{"negative memory", func(c *Config) { c.MaxMemory = -1 }, ErrMaxMemory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestValidate_ReportsAll(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 0
	cfg.Height = 0
	cfg.Workers = 0

	err := cfg.Validate()
	for _, want := range []error{ErrWidth, ErrHeight, ErrWorkers} {
		if !errors.Is(err, want) {
			t.Errorf("expected %v in %v", want, err)
		}
	}
	if errors.Is(err, ErrZoom) {
		t.Error("zoom was valid")
	}
}

func TestKindAndStrategy(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Kind().IsJulia() {
		t.Error("expected mandelbrot kind")
	}
	if cfg.Strategy() != render.StrategySequential {
		t.Errorf("expected sequential, got %v", cfg.Strategy())
	}

	cfg.LowMemory = true
	if cfg.Strategy() != render.StrategyStreaming {
		t.Errorf("expected streaming, got %v", cfg.Strategy())
	}

	cfg.Workers = 4
	if cfg.Strategy() != render.StrategyParallel {
		t.Errorf("workers should win over low memory, got %v", cfg.Strategy())
	}

	cfg.Julia = true
	k := cfg.Kind()
	if !k.IsJulia() || k.Constant != cfg.JuliaConstant {
		t.Errorf("unexpected kind %v", k)
	}
}

func TestRenderConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Workers = 30, 20, 2
	cfg.Center = fractal.Point{Real: -0.5, Imag: 0.1}

	buf := &render.Buffer{}
	rc := cfg.RenderConfig(buf, nil)

	if rc.View.Width != 30 || rc.View.Height != 20 || rc.View.Workers != 2 {
		t.Errorf("unexpected view %+v", rc.View)
	}
	if rc.View.Center != cfg.Center {
		t.Errorf("expected center %v, got %v", cfg.Center, rc.View.Center)
	}
	if rc.Color != cfg.Color {
		t.Error("color config not carried over")
	}
	if rc.Sink != buf {
		t.Error("sink not carried over")
	}
	if cfg.ImageBytes() != 30*20*3 {
		t.Errorf("expected %d bytes, got %d", 30*20*3, cfg.ImageBytes())
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mandel.yaml")

	cfg := DefaultConfig()
	cfg.Width = 640
	cfg.Julia = true
	cfg.JuliaConstant = fractal.Point{Real: 0.285, Imag: 0.01}
	cfg.Color.HueOffset = 120
	cfg.Output.Format = "png"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := writeFile(path, "width: 800\ncolor:\n  hue_offset: 90\n"); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Width != 800 {
		t.Errorf("expected width 800, got %d", cfg.Width)
	}
	if cfg.Height != DefaultHeight {
		t.Errorf("expected default height, got %d", cfg.Height)
	}
	if cfg.Color.HueOffset != 90 {
		t.Errorf("expected hue offset 90, got %f", cfg.Color.HueOffset)
	}
	if cfg.Color.MaxIterations != DefaultMaxIterations {
		t.Errorf("expected default iterations, got %d", cfg.Color.MaxIterations)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestGetPreset(t *testing.T) {
	p := GetPreset("seahorse")
	if p == nil {
		t.Fatal("expected preset, got nil")
	}
	if math.Abs(p.Center.Real+0.75) > 1e-12 || math.Abs(p.Center.Imag-0.1) > 1e-12 {
		t.Errorf("unexpected center %v", p.Center)
	}
	if math.Abs(p.Zoom-40) > 1e-9 {
		t.Errorf("expected zoom 40, got %f", p.Zoom)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("presets not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestPresetsValidate(t *testing.T) {
	for _, name := range ListPresets() {
		cfg := DefaultConfig()
		Presets[name].Apply(cfg)
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s: %v", name, err)
		}
	}
}

func TestPresetApply(t *testing.T) {
	cfg := DefaultConfig()
	GetPreset("rabbit").Apply(cfg)

	if !cfg.Julia {
		t.Error("expected julia after applying rabbit")
	}
	if cfg.JuliaConstant != (fractal.Point{Real: -0.123, Imag: 0.745}) {
		t.Errorf("unexpected constant %v", cfg.JuliaConstant)
	}
	if cfg.Color.MaxIterations != 500 {
		t.Errorf("expected 500 iterations, got %d", cfg.Color.MaxIterations)
	}

	GetPreset("full").Apply(cfg)
	if cfg.Julia {
		t.Error("mandelbrot preset should clear julia")
	}
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0644)
}

func TestLoadInto_OverlaysPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "overlay.yaml")
	if err := writeFile(path, "width: 320\n"); err != nil {
		t.Fatal(err)
	}

	cfg := DefaultConfig()
	GetPreset("seahorse").Apply(cfg)
	if err := LoadInto(path, cfg); err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Width != 320 {
		t.Errorf("expected width 320, got %d", cfg.Width)
	}
	if cfg.Color.MaxIterations != 1000 {
		t.Errorf("preset iterations should survive, got %d", cfg.Color.MaxIterations)
	}
}

func TestLoadInto_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := writeFile(path, "width: [1, 2\n"); err != nil {
		t.Fatal(err)
	}
	if err := LoadInto(path, DefaultConfig()); err == nil {
		t.Error("expected parse error")
	}
}
