package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mandel/internal/config"
	"github.com/san-kum/mandel/internal/fractal"
)

const scenarioYAML = `
name: tour
description: two stops
steps:
  - preset: seahorse
    width: 64
    height: 48
    out: seahorse.png
  - julia: true
    julia_constant: {real: 0, imag: 1}
    iterations: 90
    hue_offset: 120
    out: dendrite.tga
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Name != "tour" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario %+v", sc)
	}
	if sc.Steps[1].Julia == nil || !*sc.Steps[1].Julia {
		t.Error("expected julia flag on step 2")
	}
	if sc.Steps[1].JuliaConstant == nil || *sc.Steps[1].JuliaConstant != (fractal.Point{Imag: 1}) {
		t.Errorf("unexpected constant %v", sc.Steps[1].JuliaConstant)
	}
}

func TestLoadScenario_Missing(t *testing.T) {
	if _, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error")
	}
}

func TestStepConfig(t *testing.T) {
	base := config.DefaultConfig()
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	first, err := sc.Steps[0].Config(base)
	if err != nil {
		t.Fatalf("step 1: %v", err)
	}
	if first.Width != 64 || first.Height != 48 {
		t.Errorf("unexpected size %dx%d", first.Width, first.Height)
	}
	if first.Color.MaxIterations != 1000 {
		t.Errorf("preset iterations should apply, got %d", first.Color.MaxIterations)
	}

	second, err := sc.Steps[1].Config(base)
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if !second.Julia || second.Color.MaxIterations != 90 || second.Color.HueOffset != 120 {
		t.Errorf("unexpected config %+v", second)
	}
	if second.Width != config.DefaultWidth {
		t.Error("unset width should keep the base")
	}

	if base.Julia || base.Width != config.DefaultWidth {
		t.Error("base config must not be modified")
	}
}

func TestStepConfig_Errors(t *testing.T) {
	base := config.DefaultConfig()

	if _, err := (Step{Preset: "nope"}).Config(base); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := (Step{Workers: -1}).Config(base); !errors.Is(err, config.ErrWorkers) {
		t.Errorf("expected ErrWorkers, got %v", err)
	}
}

func TestRunScenario(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	var seen []*config.Config
	outputs, err := RunScenario(context.Background(), sc, config.DefaultConfig(), func(cfg *config.Config) error {
		seen = append(seen, cfg)
		return nil
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(outputs) != 2 || outputs[0] != "seahorse.png" || outputs[1] != "dendrite.tga" {
		t.Errorf("unexpected outputs %v", outputs)
	}
	if len(seen) != 2 || !seen[1].Julia {
		t.Error("renderer should see every step")
	}
}

func TestRunScenario_StopsOnError(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	boom := errors.New("disk full")
	calls := 0
	outputs, err := RunScenario(context.Background(), sc, config.DefaultConfig(), func(cfg *config.Config) error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped renderer error, got %v", err)
	}
	if calls != 1 || len(outputs) != 0 {
		t.Errorf("expected one call and no outputs, got %d/%v", calls, outputs)
	}
}

func TestRunScenario_Canceled(t *testing.T) {
	sc, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = RunScenario(ctx, sc, config.DefaultConfig(), func(*config.Config) error {
		t.Error("renderer should not run after cancel")
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunMonteCarlo_MandelbrotArea(t *testing.T) {
	res, err := RunMonteCarlo(context.Background(), MonteCarloConfig{
		Kind:          fractal.Mandelbrot(),
		MaxIterations: 500,
		Samples:       100000,
		Seed:          42,
	})
	if err != nil {
		t.Fatal(err)
	}

	// The set's area is about 1.5066; finite iterations overestimate slightly.
	if res.Area < 1.45 || res.Area > 1.62 {
		t.Errorf("area estimate %f out of range", res.Area)
	}
	if res.StdErr <= 0 || res.StdErr > 0.02 {
		t.Errorf("unexpected standard error %f", res.StdErr)
	}
	if res.Samples != 100000 || res.Inside == 0 {
		t.Errorf("unexpected counts %+v", res)
	}
}

func TestRunMonteCarlo_Deterministic(t *testing.T) {
	cfg := MonteCarloConfig{Kind: fractal.Julia(fractal.Point{Real: -0.8, Imag: 0.156}), MaxIterations: 100, Samples: 5000, Seed: 7}

	a, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	b, err := RunMonteCarlo(context.Background(), cfg)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Errorf("same seed should give the same estimate: %+v vs %+v", a, b)
	}
}

func TestRunMonteCarlo_CustomBounds(t *testing.T) {
	res, err := RunMonteCarlo(context.Background(), MonteCarloConfig{
		Kind:          fractal.Mandelbrot(),
		MaxIterations: 50,
		Samples:       1000,
		Seed:          1,
		Min:           fractal.Point{Real: -0.1, Imag: -0.1},
		Max:           fractal.Point{Real: 0.1, Imag: 0.1},
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Inside != res.Samples {
		t.Errorf("box around the origin is fully inside, got %d/%d", res.Inside, res.Samples)
	}
	if math.Abs(res.Area-0.04) > 1e-12 {
		t.Errorf("expected area 0.04, got %f", res.Area)
	}
}

func TestRunMonteCarlo_Errors(t *testing.T) {
	ctx := context.Background()
	if _, err := RunMonteCarlo(ctx, MonteCarloConfig{MaxIterations: 10}); err == nil {
		t.Error("expected error for zero samples")
	}
	if _, err := RunMonteCarlo(ctx, MonteCarloConfig{Samples: 10}); err == nil {
		t.Error("expected error for zero iterations")
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := RunMonteCarlo(canceled, MonteCarloConfig{Samples: 10, MaxIterations: 10, Seed: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
