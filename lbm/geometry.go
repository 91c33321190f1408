package lbm

import (
	"fmt"
	"math"
)

// Geometry selects the obstacle rasterized into the domain.
type Geometry int

const (
	Circle Geometry = iota
	Square
	Airfoil
	FlatPlate
	Triangle
	// NoObstacle leaves the whole domain fluid.
	NoObstacle
)

var geometryNames = [...]string{
	Circle:     "circle",
	Square:     "square",
	Airfoil:    "airfoil",
	FlatPlate:  "flat_plate",
	Triangle:   "triangle",
	NoObstacle: "none",
}

// Geometries lists every shape the generator can draw, in declaration order.
func Geometries() []Geometry {
	return []Geometry{Circle, Square, Airfoil, FlatPlate, Triangle, NoObstacle}
}

func (g Geometry) valid() bool {
	return g >= 0 && int(g) < len(geometryNames)
}

func (g Geometry) String() string {
	if !g.valid() {
		return fmt.Sprintf("Geometry(%d)", int(g))
	}
	return geometryNames[g]
}

// ParseGeometry resolves a shape name such as "circle" or "flat_plate".
func ParseGeometry(name string) (Geometry, error) {
	for g, n := range geometryNames {
		if n == name {
			return Geometry(g), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownGeometry, name)
}

// Shape dimensions relative to the domain height.
const (
	circleRadius      = 0.16
	squareHalfSize    = 0.15
	airfoilChordRatio = 3.5
	airfoilThickness  = 0.12
	airfoilAttackDeg  = 5.0
	plateHalfLength   = 0.25
	plateHalfThick    = 2.5
	wedgeSpan         = 0.125
	wedgeTaper        = 0.8
)

// rasterize clears the solid mask and marks the cells covered by shape. It
// returns the number of solid cells.
func (l *lattice) rasterize(shape Geometry) int {
	l.clearSolid()
	if shape == NoObstacle {
		return 0
	}
	cx := float64(l.width) * 0.25
	cy := float64(l.height) * 0.5
	hf := float64(l.height)

	var inside func(dx, dy float64) bool
	switch shape {
	case Circle:
		r := hf * circleRadius
		inside = func(dx, dy float64) bool {
			return dx*dx+dy*dy < r*r
		}
	case Square:
		size := hf * squareHalfSize
		inside = func(dx, dy float64) bool {
			return math.Abs(dx) < size && math.Abs(dy) < size
		}
	case Airfoil:
		chord := hf / airfoilChordRatio
		angle := airfoilAttackDeg * math.Pi / 180
		cosA, sinA := math.Cos(-angle), math.Sin(-angle)
		inside = func(dx, dy float64) bool {
			xr := dx*cosA - dy*sinA
			yr := dx*sinA + dy*cosA
			if xr < 0 || xr > chord {
				return false
			}
			return math.Abs(yr) <= nacaHalfThickness(xr/chord, airfoilThickness, chord)
		}
	case FlatPlate:
		length := hf * plateHalfLength
		inside = func(dx, dy float64) bool {
			return math.Abs(dx) < length && math.Abs(dy) < plateHalfThick
		}
	case Triangle:
		size := hf * wedgeSpan
		inside = func(dx, dy float64) bool {
			if dx < 0 || dx >= size {
				return false
			}
			return math.Abs(dy) < wedgeTaper*(size-dx)
		}
	default:
		return 0
	}

	count := 0
	for y := 0; y < l.height; y++ {
		dy := float64(y) - cy
		base := y * l.width
		for x := 0; x < l.width; x++ {
			if inside(float64(x)-cx, dy) {
				l.solid[base+x] = true
				count++
			}
		}
	}
	return count
}

// nacaHalfThickness evaluates the symmetric NACA 00xx half thickness at the
// normalized chord position xc for thickness ratio t.
func nacaHalfThickness(xc, t, chord float64) float64 {
	return 5 * t * chord * (0.2969*math.Sqrt(xc) -
		0.1260*xc -
		0.3516*xc*xc +
		0.2843*xc*xc*xc -
		0.1015*xc*xc*xc*xc)
}
