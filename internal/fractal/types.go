package fractal

import "fmt"

// Point is a complex number.
type Point struct {
	Real float64 `yaml:"real" json:"real"`
	Imag float64 `yaml:"imag" json:"imag"`
}

// Abs2 returns the squared magnitude.
func (p Point) Abs2() float64 {
	return p.Real*p.Real + p.Imag*p.Imag
}

func (p Point) String() string {
	return fmt.Sprintf("(%g%+gi)", p.Real, p.Imag)
}

// Variant selects which value stays fixed across the image.
type Variant uint8

const (
	VariantMandelbrot Variant = iota
	VariantJulia
)

func (v Variant) String() string {
	switch v {
	case VariantMandelbrot:
		return "mandelbrot"
	case VariantJulia:
		return "julia"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

// Kind is the tagged fractal variant. Constant is only meaningful for Julia
// sets.
type Kind struct {
	Variant  Variant
	Constant Point
}

func Mandelbrot() Kind {
	return Kind{Variant: VariantMandelbrot}
}

func Julia(c Point) Kind {
	return Kind{Variant: VariantJulia, Constant: c}
}

func (k Kind) IsJulia() bool { return k.Variant == VariantJulia }

func (k Kind) String() string {
	if k.IsJulia() {
		return fmt.Sprintf("julia c=%s", k.Constant)
	}
	return k.Variant.String()
}
