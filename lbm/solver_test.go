package lbm

import (
	"bytes"
	"log"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func newTestSolver(t *testing.T, mutate func(*Config)) *Solver {
	t.Helper()
	cfg := DefaultConfig(40, 24)
	cfg.Viscosity = 0.05
	cfg.Velocity = 0.08
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := NewWithConfig(cfg)
	require.NoError(t, err)
	return s
}

// fluidMass sums every population of every fluid cell.
func fluidMass(s *Solver) float64 {
	var m float64
	for i, solid := range s.lat.solid {
		if !solid {
			m += floats.Sum(s.lat.f[i*q : i*q+q])
		}
	}
	return m
}

func TestNewRejectsInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {2, 10}, {10, 2}} {
		_, err := New(dims[0], dims[1])
		assert.ErrorIs(t, err, ErrInvalidDimensions, "dims %v", dims)
	}
	s, err := New(3, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Width())
	assert.Equal(t, 3, s.Height())
}

func TestNewWithConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"zero viscosity", func(c *Config) { c.Viscosity = 0 }, ErrInvalidViscosity},
		{"negative viscosity", func(c *Config) { c.Viscosity = -0.1 }, ErrInvalidViscosity},
		{"NaN viscosity", func(c *Config) { c.Viscosity = math.NaN() }, ErrInvalidViscosity},
		{"infinite viscosity", func(c *Config) { c.Viscosity = math.Inf(1) }, ErrInvalidViscosity},
		{"NaN velocity", func(c *Config) { c.Velocity = math.NaN() }, ErrInvalidVelocity},
		{"unknown geometry", func(c *Config) { c.Geometry = Geometry(99) }, ErrUnknownGeometry},
		{"unknown boundary", func(c *Config) { c.Boundary = Boundary(7) }, ErrUnknownBoundary},
		{"zero ramp-up", func(c *Config) { c.RampUpSteps = 0 }, ErrInvalidRampUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig(20, 10)
			tt.mutate(&cfg)
			_, err := NewWithConfig(cfg)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDefaults(t *testing.T) {
	s, err := New(30, 12)
	require.NoError(t, err)
	assert.Equal(t, Circle, s.Geometry())
	assert.Equal(t, Channel, s.Boundary())
	assert.Equal(t, DefaultViscosity, s.Viscosity())
	assert.Equal(t, DefaultVelocity, s.Velocity())
	assert.Equal(t, DefaultRampUpSteps, s.RampUpSteps())
	assert.InDelta(t, 0.56, s.Tau(), 1e-12)
	assert.InDelta(t, 1/0.56, s.Omega(), 1e-12)
	assert.Equal(t, 0.0, s.CurrentVelocity())
	assert.Equal(t, 0, s.StepCount())
}

func TestSetViscosityRecomputesRelaxation(t *testing.T) {
	s := newTestSolver(t, nil)
	require.NoError(t, s.SetViscosity(0.1))
	assert.Equal(t, 0.1, s.Viscosity())
	assert.InDelta(t, 0.8, s.Tau(), 1e-12)
	assert.InDelta(t, 1.25, s.Omega(), 1e-12)

	assert.ErrorIs(t, s.SetViscosity(0), ErrInvalidViscosity)
	assert.ErrorIs(t, s.SetViscosity(math.NaN()), ErrInvalidViscosity)
	assert.InDelta(t, 1.25, s.Omega(), 1e-12)
}

func TestSetVelocity(t *testing.T) {
	s := newTestSolver(t, nil)
	require.NoError(t, s.SetVelocity(0.05))
	assert.Equal(t, 0.05, s.Velocity())
	assert.ErrorIs(t, s.SetVelocity(math.Inf(-1)), ErrInvalidVelocity)
	assert.Equal(t, 0.05, s.Velocity())
}

func TestRampUp(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.RampUpSteps = 10
		c.Velocity = 0.1
	})

	prev := s.CurrentVelocity()
	for i := 1; i <= 10; i++ {
		s.Step()
		cur := s.CurrentVelocity()
		assert.GreaterOrEqual(t, cur, prev, "tick %d", i)
		prev = cur
	}
	assert.Equal(t, 0.1, s.CurrentVelocity())
	assert.Equal(t, 10, s.StepCount())

	s.Advance(5)
	assert.Equal(t, 0.1, s.CurrentVelocity())
	assert.Equal(t, 10, s.StepCount())
	assert.Equal(t, 15, s.Ticks())

	require.NoError(t, s.SetVelocity(0.07))
	s.Step()
	assert.Equal(t, 0.07, s.CurrentVelocity())

	s.Reset()
	assert.Equal(t, 0.0, s.CurrentVelocity())
	assert.Equal(t, 0, s.StepCount())
	assert.Equal(t, 0, s.Ticks())
	s.Step()
	assert.InDelta(t, 0.007, s.CurrentVelocity(), 1e-15)
}

func TestRestStateIsFixedPoint(t *testing.T) {
	for _, b := range []Boundary{Channel, Cavity} {
		t.Run(b.String(), func(t *testing.T) {
			s := newTestSolver(t, func(c *Config) {
				c.Boundary = b
				c.Geometry = NoObstacle
				c.Velocity = 0
			})
			s.Advance(50)
			for i, rho := range s.Density() {
				require.InDelta(t, 1.0, rho, 1e-12, "density at %d", i)
			}
			for i, u := range s.VelocityMagnitude() {
				require.InDelta(t, 0.0, u, 1e-12, "speed at %d", i)
			}
		})
	}
}

func TestCavityConservesMass(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Width, c.Height = 64, 48
		c.Boundary = Cavity
		c.Viscosity = 0.05
		c.Velocity = 0.1
		c.RampUpSteps = 50
	})
	obstacle := s.Obstacle()
	fluidDensity := func() float64 {
		var m float64
		for i, rho := range s.Density() {
			if !obstacle[i] {
				m += rho
			}
		}
		return m
	}

	mass0 := fluidMass(s)
	density0 := fluidDensity()
	assert.InDelta(t, mass0, density0, 1e-9)
	for i := 0; i < 6; i++ {
		s.Advance(50)
		assert.InDelta(t, mass0, fluidMass(s), 1e-9*mass0, "after %d ticks", s.Ticks())
		assert.InDelta(t, density0, fluidDensity(), 1e-9*density0, "after %d ticks", s.Ticks())
	}
}

func TestLidDrivesFlow(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Width, c.Height = 32, 32
		c.Boundary = Cavity
		c.Geometry = NoObstacle
		c.Viscosity = 0.1
		c.Velocity = 0.1
		c.RampUpSteps = 10
	})
	s.Advance(200)

	ux := s.Ux()
	rowMean := func(y int) float64 {
		return floats.Sum(ux[y*32:(y+1)*32]) / 32
	}
	assert.Greater(t, rowMean(0), 0.0)
	assert.Less(t, rowMean(0), 0.1)
	assert.Greater(t, rowMean(0), rowMean(16))
}

func TestChannelCarriesInletFlow(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Width, c.Height = 60, 20
		c.Geometry = NoObstacle
		c.Viscosity = 0.1
		c.Velocity = 0.05
		c.RampUpSteps = 10
	})
	s.Advance(400)

	ux := s.Ux()
	var mean float64
	for y := 0; y < 20; y++ {
		mean += ux[y*60+30]
	}
	mean /= 20
	assert.Greater(t, mean, 0.0)
	assert.Less(t, mean, 0.1)

	last := s.lat.index(59, 10)
	donor := s.lat.index(58, 10)
	assert.Equal(t, s.lat.f[donor*q:donor*q+q], s.lat.f[last*q:last*q+q])
}

func TestCircleChannelFirstTick(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Width, c.Height = 80, 40
		c.Geometry = Circle
		c.Viscosity = 0.02
		c.Velocity = 0.1
	})
	s.Step()

	obstacle := s.Obstacle()
	rho, ux, uy := s.Density(), s.Ux(), s.Uy()
	solidCells := 0
	for i := range obstacle {
		if obstacle[i] {
			solidCells++
			assert.Equal(t, 1.0, rho[i])
			assert.Equal(t, 0.0, ux[i])
			assert.Equal(t, 0.0, uy[i])
			continue
		}
		assert.GreaterOrEqual(t, rho[i], 0.9)
		assert.LessOrEqual(t, rho[i], 1.1)
	}
	assert.Positive(t, solidCells)
}

func TestRestFlowStaysExactlyAtRest(t *testing.T) {
	for _, b := range []Boundary{Channel, Cavity} {
		t.Run(b.String(), func(t *testing.T) {
			s := newTestSolver(t, func(c *Config) {
				c.Boundary = b
				c.Geometry = NoObstacle
				c.Velocity = 0
			})
			s.Advance(200)

			vort := s.Vorticity()
			require.Len(t, vort, 40*24)
			ux, uy, rho := s.Ux(), s.Uy(), s.Density()
			for i, v := range vort {
				require.Equal(t, 0.0, v, "vorticity at %d", i)
				require.Equal(t, 0.0, ux[i], "ux at %d", i)
				require.Equal(t, 0.0, uy[i], "uy at %d", i)
				require.Equal(t, 1.0, rho[i], "density at %d", i)
			}
		})
	}
}

func TestVorticityBorderIsZero(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Velocity = 0.1
		c.RampUpSteps = 5
	})
	s.Advance(100)
	vort := s.Vorticity()
	w, h := s.Width(), s.Height()
	nonZero := false
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := vort[y*w+x]
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				assert.Equal(t, 0.0, v, "border (%d,%d)", x, y)
			} else if v != 0 {
				nonZero = true
			}
		}
	}
	assert.True(t, nonZero)
}

func TestQueriesAreIdempotent(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Velocity = 0.1
		c.RampUpSteps = 5
	})
	s.Advance(20)
	ticks := s.Ticks()

	assert.Equal(t, s.VelocityMagnitude(), s.VelocityMagnitude())
	assert.Equal(t, s.Vorticity(), s.Vorticity())
	assert.Equal(t, s.Pressure(), s.Pressure())
	assert.Equal(t, s.Density(), s.Density())
	assert.Equal(t, s.Ux(), s.Ux())
	assert.Equal(t, s.Uy(), s.Uy())
	assert.Equal(t, s.Obstacle(), s.Obstacle())
	assert.Equal(t, ticks, s.Ticks())

	// Snapshots are copies.
	ux := s.Ux()
	ux[0] = 42
	assert.NotEqual(t, 42.0, s.Ux()[0])
}

func TestPressureIsDensityOverThree(t *testing.T) {
	s := newTestSolver(t, func(c *Config) { c.RampUpSteps = 5 })
	s.Advance(30)
	rho := s.Density()
	for i, p := range s.Pressure() {
		assert.Equal(t, rho[i]/3, p)
	}
}

func TestBounceBackSymmetry(t *testing.T) {
	const n = 21
	const c = n / 2
	s := newTestSolver(t, func(cfg *Config) {
		cfg.Width, cfg.Height = n, n
		cfg.Boundary = Cavity
		cfg.Geometry = NoObstacle
		cfg.Velocity = 0
	})
	lat := s.lat
	lat.solid[lat.index(c, c)] = true
	// Symmetric density bump around the obstacle.
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		i := lat.index(c+d[0], c+d[1])
		for k := 0; k < q; k++ {
			lat.f[i*q+k] = equilibrium(k, 1.05, 0, 0)
		}
	}
	s.Advance(30)

	ux, uy := s.Ux(), s.Uy()
	peak := 0.0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			i := y*n + x
			j := (n-1-y)*n + (n - 1 - x)
			assert.InDelta(t, -ux[j], ux[i], 1e-12, "ux at (%d,%d)", x, y)
			assert.InDelta(t, -uy[j], uy[i], 1e-12, "uy at (%d,%d)", x, y)
			peak = math.Max(peak, math.Hypot(ux[i], uy[i]))
		}
	}
	assert.Greater(t, peak, 1e-6)
}

func TestBandedMatchesSerial(t *testing.T) {
	for _, b := range []Boundary{Channel, Cavity} {
		t.Run(b.String(), func(t *testing.T) {
			build := func(workers int) *Solver {
				return newTestSolver(t, func(c *Config) {
					c.Width, c.Height = 40, 23
					c.Boundary = b
					c.Velocity = 0.1
					c.RampUpSteps = 20
					c.Workers = workers
				})
			}
			serial, banded := build(1), build(4)
			serial.Advance(60)
			banded.Advance(60)

			assert.Equal(t, serial.lat.f, banded.lat.f)
			assert.Equal(t, serial.Density(), banded.Density())
			assert.Equal(t, serial.Ux(), banded.Ux())
			assert.Equal(t, serial.Uy(), banded.Uy())
		})
	}
}

func TestSetGeometry(t *testing.T) {
	s := newTestSolver(t, func(c *Config) {
		c.Width, c.Height = 200, 80
		c.Viscosity = 0.05
		c.Velocity = 0.08
		c.RampUpSteps = 5
	})
	s.Advance(10)

	require.NoError(t, s.SetGeometry(Square))
	assert.Equal(t, Square, s.Geometry())
	assert.Equal(t, 0, s.Ticks())
	assert.Equal(t, 0.0, s.CurrentVelocity())
	assert.Equal(t, 0.05, s.Viscosity())
	assert.Equal(t, 0.08, s.Velocity())
	for _, rho := range s.Density() {
		require.Equal(t, 1.0, rho)
	}
	solid := 0
	for _, o := range s.Obstacle() {
		if o {
			solid++
		}
	}
	assert.Equal(t, 23*23, solid)

	mask := s.Obstacle()
	assert.ErrorIs(t, s.SetGeometry(Geometry(99)), ErrUnknownGeometry)
	assert.ErrorIs(t, s.SetGeometryName("hexagon"), ErrUnknownGeometry)
	assert.Equal(t, mask, s.Obstacle())
	assert.Equal(t, Square, s.Geometry())

	require.NoError(t, s.SetGeometryName("none"))
	assert.NotContains(t, s.Obstacle(), true)
}

func TestResetKeepsGeometry(t *testing.T) {
	s := newTestSolver(t, func(c *Config) { c.RampUpSteps = 5 })
	mask := s.Obstacle()
	s.Advance(25)
	s.Reset()
	assert.Equal(t, mask, s.Obstacle())
	for i, rho := range s.Density() {
		require.Equal(t, 1.0, rho, "density at %d", i)
	}
	for _, u := range s.VelocityMagnitude() {
		require.Equal(t, 0.0, u)
	}
}

func TestDivergenceIsNotTrapped(t *testing.T) {
	s := newTestSolver(t, func(c *Config) { c.Geometry = NoObstacle })
	lat := s.lat
	i := lat.index(10, 10)
	for k := 0; k < q; k++ {
		lat.f[i*q+k] = 0
	}
	s.Step()
	assert.True(t, math.IsNaN(s.Ux()[i]))
}

func TestLoggerReceivesGeometryNotice(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSolver(t, func(c *Config) {
		c.Logger = log.New(&buf, "", 0)
	})
	assert.Contains(t, buf.String(), "rasterized circle")

	buf.Reset()
	require.NoError(t, s.SetGeometry(Airfoil))
	assert.Contains(t, buf.String(), "rasterized airfoil")
}
