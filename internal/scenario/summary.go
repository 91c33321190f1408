package scenario

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"lbmflow/lbm"
)

// Summary is a snapshot of whole-domain statistics over the fluid cells.
type Summary struct {
	Step        int
	Mass        float64
	MaxSpeed    float64
	MeanDensity float64
	// Diverged is set when any fluid density or speed is NaN or infinite.
	Diverged bool
}

// Summarize reads the solver's density and speed fields. It only reports;
// a diverged solver is left as it is.
func Summarize(s *lbm.Solver) Summary {
	obstacle := s.Obstacle()
	density := fluidOnly(s.Density(), obstacle)
	speed := fluidOnly(s.VelocityMagnitude(), obstacle)

	sum := Summary{Step: s.Ticks()}
	if len(density) == 0 {
		return sum
	}
	sum.Diverged = !finite(density) || !finite(speed)
	sum.Mass = floats.Sum(density)
	sum.MeanDensity = sum.Mass / float64(len(density))
	sum.MaxSpeed = floats.Max(speed)
	return sum
}

func (s Summary) String() string {
	status := "ok"
	if s.Diverged {
		status = "diverged"
	}
	return fmt.Sprintf("step=%d mass=%.6f mean_rho=%.6f max_speed=%.5f %s",
		s.Step, s.Mass, s.MeanDensity, s.MaxSpeed, status)
}

func fluidOnly(field []float64, obstacle []bool) []float64 {
	out := field[:0]
	for i, v := range field {
		if !obstacle[i] {
			out = append(out, v)
		}
	}
	return out
}

func finite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
