package fractal

// View describes the pixel grid and where it sits on the complex plane.
type View struct {
	Width   int
	Height  int
	Workers int
	Center  Point
	Zoom    float64
}

// Pixels returns Width*Height.
func (v View) Pixels() int {
	return v.Width * v.Height
}

// Mapper converts pixel indices to plane coordinates. The zero value is not
// useful; build one with NewMapper.
type Mapper struct {
	step      float64
	realStart float64
	imagStart float64
}

func NewMapper(v View) Mapper {
	w := float64(v.Width)
	h := float64(v.Height)
	return Mapper{
		step:      4 / (w * v.Zoom),
		realStart: -2/v.Zoom + v.Center.Real,
		imagStart: (2/v.Zoom)*(h/w) - v.Center.Imag,
	}
}

// PixelSize is the plane distance between neighbouring pixels.
func (m Mapper) PixelSize() float64 { return m.step }

func (m Mapper) ScaleX(x int) float64 {
	return m.realStart + m.step*float64(x)
}

func (m Mapper) ScaleY(y int) float64 {
	return m.imagStart - m.step*float64(y)
}

// Point maps pixel (x, y) onto the plane.
func (m Mapper) Point(x, y int) Point {
	return Point{Real: m.ScaleX(x), Imag: m.ScaleY(y)}
}
