package fractal

// EscapeThreshold is the squared magnitude at which an orbit is considered
// escaped.
const EscapeThreshold = 4.0

// Step applies z' = z^2 + c.
func Step(z, c Point) Point {
	return Point{
		Real: z.Real*z.Real - z.Imag*z.Imag + c.Real,
		Imag: 2*z.Real*z.Imag + c.Imag,
	}
}

// EscapeValue returns the remaining countdown at the step where the orbit of
// p escapes, or 0 when it stays bounded for maxIterations steps. The result
// lies in {0} ∪ [1, maxIterations].
func EscapeValue(maxIterations int, p Point, kind Kind) int {
	switch kind.Variant {
	case VariantJulia:
		return countdown(maxIterations, p, kind.Constant)
	default:
		return countdown(maxIterations, Point{}, p)
	}
}

func countdown(maxIterations int, z, c Point) int {
	for n := maxIterations; n > 0; n-- {
		z = Step(z, c)
		if z.Real*z.Real+z.Imag*z.Imag >= EscapeThreshold {
			return n
		}
	}
	return 0
}
