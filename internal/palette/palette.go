// Package palette maps escape values onto 24-bit colors through the HSL
// color space.
package palette

import (
	"fmt"
	"math"
)

// RGB is a packed 24-bit pixel.
type RGB struct {
	R, G, B uint8
}

// Black is the color of points assumed to be inside the set.
var Black = RGB{}

func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Config controls how escape values become colors.
type Config struct {
	MaxIterations int `yaml:"max_iterations" json:"max_iterations"`
	// HueLimiter scales how much of the hue circle the escape ratio spans.
	HueLimiter float64 `yaml:"hue_limiter" json:"hue_limiter"`
	// HueOffset rotates the hue circle, in degrees.
	HueOffset float64 `yaml:"hue_offset" json:"hue_offset"`
	// ConstantLightness is used for every pixel when non-zero. When zero,
	// lightness falls off with the escape ratio using MaxLightness and
	// LightDistribution.
	ConstantLightness float64 `yaml:"constant_lightness" json:"constant_lightness"`
	MaxLightness      float64 `yaml:"max_lightness" json:"max_lightness"`
	LightDistribution float64 `yaml:"light_distribution" json:"light_distribution"`
}

// ColorOf returns the color for an escape value. A value of 0 is black.
func ColorOf(escape int, cfg Config) RGB {
	if escape == 0 {
		return Black
	}

	ratio := float64(escape) / float64(cfg.MaxIterations)

	hue := math.Mod(360-360*ratio*cfg.HueLimiter, 360)
	hue = math.Mod(hue+cfg.HueOffset, 360)

	lightness := cfg.ConstantLightness
	if lightness == 0 {
		lightness = cfg.MaxLightness - cfg.MaxLightness*math.Pow(ratio, cfg.LightDistribution)
	}

	return hslToRGB(hue, 1, lightness)
}

// hslToRGB converts with the chroma construction. Channels are rounded up
// before being truncated to a byte.
func hslToRGB(hue, saturation, lightness float64) RGB {
	chroma := (1 - math.Abs(2*lightness-1)) * saturation

	h := hue / 60
	x := chroma * (1 - math.Abs(math.Mod(h, 2)-1))

	var r, g, b float64
	switch {
	case h < 1:
		r, g = chroma, x
	case h < 2:
		r, g = x, chroma
	case h < 3:
		g, b = chroma, x
	case h < 4:
		g, b = x, chroma
	case h < 5:
		r, b = x, chroma
	case h < 6:
		r, b = chroma, x
	}

	m := lightness - chroma/2
	return RGB{
		R: channel(r + m),
		G: channel(g + m),
		B: channel(b + m),
	}
}

func channel(v float64) uint8 {
	return uint8(int64(math.Ceil(v*255)) & 0xFF)
}
