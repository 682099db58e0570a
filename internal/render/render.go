package render

import (
	"fmt"
	"time"
)

// Render runs exactly one strategy.
func Render(cfg Config, s Strategy) error {
	var run func(Config) error
	switch s {
	case StrategySequential:
		run = Sequential
	case StrategyParallel:
		run = Parallel
	case StrategyStreaming:
		run = Streaming
	default:
		return fmt.Errorf("%w: %d", ErrUnknownStrategy, int(s))
	}

	log := Logger()
	log.Info("render started",
		"strategy", s,
		"width", cfg.View.Width,
		"height", cfg.View.Height,
		"workers", cfg.View.Workers,
		"fractal", cfg.Kind,
		"max_iterations", cfg.Color.MaxIterations)

	start := time.Now()
	if err := run(cfg); err != nil {
		return err
	}
	log.Info("render finished", "strategy", s, "elapsed", time.Since(start))
	return nil
}
