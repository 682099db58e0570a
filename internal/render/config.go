package render

import (
	"fmt"
	"strings"

	"github.com/san-kum/mandel/internal/fractal"
	"github.com/san-kum/mandel/internal/palette"
)

// Config is everything a renderer needs. It is passed by value and never
// modified while rendering.
type Config struct {
	View  fractal.View
	Color palette.Config
	Kind  fractal.Kind
	Sink  Sink
	// Allocator supplies pixel grids; nil means DefaultAllocator.
	Allocator Allocator
}

func (c Config) allocator() Allocator {
	if c.Allocator == nil {
		return DefaultAllocator()
	}
	return c.Allocator
}

// Strategy names one of the three renderers.
type Strategy int

const (
	StrategySequential Strategy = iota
	StrategyParallel
	StrategyStreaming
)

var strategyNames = map[Strategy]string{
	StrategySequential: "sequential",
	StrategyParallel:   "parallel",
	StrategyStreaming:  "streaming",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("strategy(%d)", int(s))
}

// ParseStrategy accepts the names returned by String, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// SelectStrategy picks a renderer the way the command line does: more than
// one worker always means parallel, otherwise low-memory mode streams.
func SelectStrategy(workers int, lowMemory bool) Strategy {
	switch {
	case workers > 1:
		return StrategyParallel
	case lowMemory:
		return StrategyStreaming
	default:
		return StrategySequential
	}
}

// shader holds the read-only per-render state used to color one pixel.
type shader struct {
	mapper fractal.Mapper
	color  palette.Config
	kind   fractal.Kind
}

func newShader(cfg Config) shader {
	return shader{
		mapper: fractal.NewMapper(cfg.View),
		color:  cfg.Color,
		kind:   cfg.Kind,
	}
}

func (s shader) at(x, y int) palette.RGB {
	e := fractal.EscapeValue(s.color.MaxIterations, s.mapper.Point(x, y), s.kind)
	return palette.ColorOf(e, s.color)
}
