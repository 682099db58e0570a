package config

import (
	"sort"

	"github.com/san-kum/mandel/internal/fractal"
)

type Preset struct {
	Description   string
	Center        fractal.Point
	Zoom          float64
	Julia         bool
	JuliaConstant fractal.Point
	MaxIterations int
}

// region converts plane bounds into a centered preset.
func region(desc string, xmin, xmax, ymin, ymax float64, iters int) *Preset {
	return &Preset{
		Description:   desc,
		Center:        fractal.Point{Real: (xmin + xmax) / 2, Imag: (ymin + ymax) / 2},
		Zoom:          4 / (xmax - xmin),
		MaxIterations: iters,
	}
}

func julia(desc string, re, im float64, iters int) *Preset {
	return &Preset{
		Description:   desc,
		Zoom:          1.5,
		Julia:         true,
		JuliaConstant: fractal.Point{Real: re, Imag: im},
		MaxIterations: iters,
	}
}

var Presets = map[string]*Preset{
	"full": {Description: "whole Mandelbrot set", Center: fractal.Point{Real: -0.5}, Zoom: 1.2, MaxIterations: 360},

	"seahorse":     region("seahorse valley, dense filaments and curls", -0.8, -0.7, 0.05, 0.15, 1000),
	"elephant":     region("elephant valley, bulb with trunk-like tendrils", -1.85, -1.75, -0.10, -0.02, 1000),
	"spiral":       region("spiral minibrot with tight arms", -0.7435, -0.7420, 0.1310, 0.1325, 2000),
	"triple":       region("threefold symmetric spiral", -0.7480, -0.7450, 0.0950, 0.0980, 2000),
	"dragon":       region("valley of the dragon, deep spiral filaments", -0.7400, -0.7350, 0.1800, 0.1850, 2000),
	"mini-spiral":  region("minibrot inside a spiral arm", -1.7390, -1.7375, -0.0235, -0.0220, 2000),
	"julia":        julia("default Julia set, c = -0.8+0.156i", -0.8, 0.156, 360),
	"dendrite":     julia("dendrite, c = i", 0, 1, 360),
	"rabbit":       julia("Douady rabbit", -0.123, 0.745, 500),
	"san-marco":    julia("San Marco dragon", -0.75, 0, 500),
	"siegel":       julia("Siegel disk", -0.391, -0.587, 1000),
	"galaxy":       julia("spiral galaxy", -0.7269, 0.1889, 1000),
	"lightning":    julia("lightning, c = -0.8i", 0, -0.8, 500),
	"dust":         julia("Cantor dust, disconnected", 0.3, 0.5, 360),
	"cauliflower":  julia("cauliflower, c = 0.25", 0.25, 0, 500),
	"airplane":     julia("airplane, c = -1.755", -1.755, 0, 500),
	"basilica":     julia("basilica, c = -1", -1, 0, 500),
	"seahorse-jul": julia("seahorse Julia, c = -0.75+0.11i", -0.75, 0.11, 1000),
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply copies the preset view onto cfg.
func (p *Preset) Apply(cfg *Config) {
	cfg.Center = p.Center
	cfg.Zoom = p.Zoom
	cfg.Julia = p.Julia
	if p.Julia {
		cfg.JuliaConstant = p.JuliaConstant
	}
	if p.MaxIterations > 0 {
		cfg.Color.MaxIterations = p.MaxIterations
	}
}
