package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/render"
)

// Renderer writes one image for cfg.
type Renderer func(cfg *config.Config) error

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is a single render in a scenario. Unset fields keep the base config.
type Step struct {
	Preset        string         `yaml:"preset"`
	Width         int            `yaml:"width"`
	Height        int            `yaml:"height"`
	Workers       int            `yaml:"workers"`
	LowMemory     *bool          `yaml:"low_memory"`
	Center        *fractal.Point `yaml:"center"`
	Zoom          float64        `yaml:"zoom"`
	Iterations    int            `yaml:"iterations"`
	Julia         *bool          `yaml:"julia"`
	JuliaConstant *fractal.Point `yaml:"julia_constant"`
	HueOffset     *float64       `yaml:"hue_offset"`
	Out           string         `yaml:"out"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Config layers the step over a copy of base.
func (s Step) Config(base *config.Config) (*config.Config, error) {
	cfg := *base

	if s.Preset != "" {
		p := config.GetPreset(s.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
		p.Apply(&cfg)
	}
	if s.Width != 0 {
		cfg.Width = s.Width
	}
	if s.Height != 0 {
		cfg.Height = s.Height
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if s.LowMemory != nil {
		cfg.LowMemory = *s.LowMemory
	}
	if s.Center != nil {
		cfg.Center = *s.Center
	}
	if s.Zoom != 0 {
		cfg.Zoom = s.Zoom
	}
	if s.Iterations != 0 {
		cfg.Color.MaxIterations = s.Iterations
	}
	if s.Julia != nil {
		cfg.Julia = *s.Julia
	}
	if s.JuliaConstant != nil {
		cfg.JuliaConstant = *s.JuliaConstant
	}
	if s.HueOffset != nil {
		cfg.Color.HueOffset = *s.HueOffset
	}
	if s.Out != "" {
		cfg.Output.Path = s.Out
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// RunScenario renders every step in order and returns the files written.
// Cancellation is checked between steps.
func RunScenario(ctx context.Context, scenario *Scenario, base *config.Config, fn Renderer) ([]string, error) {
	outputs := make([]string, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}

		cfg, err := step.Config(base)
		if err != nil {
			return outputs, fmt.Errorf("step %d: %w", i+1, err)
		}

		render.Logger().Info("scenario step", "step", i+1, "of", len(scenario.Steps), "out", cfg.Output.Path)
		if err := fn(cfg); err != nil {
			return outputs, fmt.Errorf("step %d: %w", i+1, err)
		}
		outputs = append(outputs, cfg.Output.Path)
	}

	return outputs, nil
}

// MonteCarloConfig defines an area estimate by random sampling
type MonteCarloConfig struct {
	Kind          fractal.Kind
	MaxIterations int
	Samples       int
	Seed          int64
	// Min and Max bound the sampled rectangle; zero means a default box.
	Min, Max fractal.Point
}

// MonteCarloResult holds the estimate and its standard error
type MonteCarloResult struct {
	Samples int
	Inside  int
	Area    float64
	StdErr  float64
}

const ctxCheckInterval = 4096

func (c MonteCarloConfig) bounds() (lo, hi fractal.Point) {
	if c.Min != (fractal.Point{}) || c.Max != (fractal.Point{}) {
		return c.Min, c.Max
	}
	if c.Kind.IsJulia() {
		return fractal.Point{Real: -2, Imag: -2}, fractal.Point{Real: 2, Imag: 2}
	}
	return fractal.Point{Real: -2, Imag: -1.25}, fractal.Point{Real: 0.5, Imag: 1.25}
}

// RunMonteCarlo estimates the area of the set's interior.
func RunMonteCarlo(ctx context.Context, cfg MonteCarloConfig) (MonteCarloResult, error) {
	if cfg.Samples < 1 {
		return MonteCarloResult{}, fmt.Errorf("sample count must be at least 1, got %d", cfg.Samples)
	}
	if cfg.MaxIterations < 1 {
		return MonteCarloResult{}, fmt.Errorf("iteration count must be at least 1, got %d", cfg.MaxIterations)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	lo, hi := cfg.bounds()
	w, h := hi.Real-lo.Real, hi.Imag-lo.Imag

	inside := 0
	for i := 0; i < cfg.Samples; i++ {
		if i%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return MonteCarloResult{}, err
			}
		}

		p := fractal.Point{
			Real: lo.Real + rng.Float64()*w,
			Imag: lo.Imag + rng.Float64()*h,
		}
		if fractal.EscapeValue(cfg.MaxIterations, p, cfg.Kind) == 0 {
			inside++
		}
	}

	box := w * h
	frac := float64(inside) / float64(cfg.Samples)
	return MonteCarloResult{
		Samples: cfg.Samples,
		Inside:  inside,
		Area:    frac * box,
		StdErr:  math.Sqrt(frac*(1-frac)/float64(cfg.Samples)) * box,
	}, nil
}
