package lbm

import (
	"fmt"
	"log"
	"math"
	"sync"
)

// minSize is the smallest accepted width and height: the outlet needs a donor
// column distinct from the inlet and vorticity needs an interior cell.
const minSize = 3

// Default parameters used by New.
const (
	DefaultViscosity   = 0.02
	DefaultVelocity    = 0.15
	DefaultRampUpSteps = 500
)

// Config describes a solver at construction.
type Config struct {
	Width, Height int

	// Viscosity is the kinematic viscosity in lattice units.
	Viscosity float64
	// Velocity is the target inlet (Channel) or lid (Cavity) speed.
	Velocity float64

	Geometry Geometry
	Boundary Boundary

	// RampUpSteps is how many ticks the driving velocity takes to reach Velocity.
	RampUpSteps int

	// Workers splits collision and streaming into that many row bands.
	// Values below 2 sweep on the calling goroutine.
	Workers int

	// Logger receives geometry notices. Nil disables logging.
	Logger *log.Logger
}

// DefaultConfig returns the configuration New uses for a width x height grid.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:       width,
		Height:      height,
		Viscosity:   DefaultViscosity,
		Velocity:    DefaultVelocity,
		Geometry:    Circle,
		Boundary:    Channel,
		RampUpSteps: DefaultRampUpSteps,
		Workers:     1,
	}
}

// Solver is a D2Q9 BGK lattice Boltzmann solver. All methods are safe for
// concurrent use; a tick always completes before a setter or query observes
// the lattice.
//
// Numerical divergence is not trapped. Very small viscosities or large
// velocities make the explicit scheme unstable and NaN or Inf values then
// show up in every field query; choosing stable parameters is up to the caller.
type Solver struct {
	mu sync.RWMutex

	lat    *lattice
	policy boundaryPolicy
	bands  []rowBand

	boundary Boundary
	geometry Geometry

	nu    float64
	tau   float64
	omega float64
	u0    float64

	ticks           int
	stepCount       int
	rampUpSteps     int
	currentVelocity float64

	logger *log.Logger
}

// New builds a solver with DefaultConfig.
func New(width, height int) (*Solver, error) {
	return NewWithConfig(DefaultConfig(width, height))
}

// NewWithConfig builds a solver, rasterizes its geometry and puts the fluid
// at rest.
func NewWithConfig(cfg Config) (*Solver, error) {
	if cfg.Width < minSize || cfg.Height < minSize {
		return nil, fmt.Errorf("%w: %dx%d (minimum %dx%d)", ErrInvalidDimensions, cfg.Width, cfg.Height, minSize, minSize)
	}
	if err := checkViscosity(cfg.Viscosity); err != nil {
		return nil, err
	}
	if err := checkVelocity(cfg.Velocity); err != nil {
		return nil, err
	}
	if !cfg.Geometry.valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownGeometry, cfg.Geometry)
	}
	if cfg.RampUpSteps <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRampUp, cfg.RampUpSteps)
	}
	policy, err := newBoundaryPolicy(cfg.Boundary)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		lat:         newLattice(cfg.Width, cfg.Height),
		policy:      policy,
		bands:       splitRows(cfg.Height, cfg.Workers),
		boundary:    cfg.Boundary,
		geometry:    cfg.Geometry,
		u0:          cfg.Velocity,
		rampUpSteps: cfg.RampUpSteps,
		logger:      cfg.Logger,
	}
	s.applyViscosity(cfg.Viscosity)
	s.rebuild()
	return s, nil
}

func checkViscosity(nu float64) error {
	if math.IsNaN(nu) || math.IsInf(nu, 0) || nu <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidViscosity, nu)
	}
	return nil
}

func checkVelocity(u float64) error {
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidVelocity, u)
	}
	return nil
}

func (s *Solver) applyViscosity(nu float64) {
	s.nu = nu
	s.tau = 3*nu + 0.5
	s.omega = 1 / s.tau
}

// rebuild rasterizes the current geometry and resets the lattice and the
// ramp-up schedule. Callers hold the write lock.
func (s *Solver) rebuild() {
	cells := s.lat.rasterize(s.geometry)
	if s.logger != nil {
		s.logger.Printf("lbm: rasterized %s obstacle on %dx%d grid (%d solid cells)", s.geometry, s.lat.width, s.lat.height, cells)
	}
	s.restart()
}

func (s *Solver) restart() {
	s.ticks = 0
	s.stepCount = 0
	s.currentVelocity = 0
	s.lat.initializeEquilibrium()
}

// SetViscosity changes the kinematic viscosity and re-derives the relaxation
// time and rate before the next tick.
func (s *Solver) SetViscosity(nu float64) error {
	if err := checkViscosity(nu); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applyViscosity(nu)
	return nil
}

// SetVelocity changes the target driving velocity. An in-progress ramp-up
// continues toward the new target.
func (s *Solver) SetVelocity(u0 float64) error {
	if err := checkVelocity(u0); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.u0 = u0
	return nil
}

// SetGeometry replaces the obstacle and resets the fluid to rest. Viscosity
// and velocity are kept. An unknown shape returns ErrUnknownGeometry and
// leaves the solver untouched.
func (s *Solver) SetGeometry(g Geometry) error {
	if !g.valid() {
		return fmt.Errorf("%w: %v", ErrUnknownGeometry, g)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.geometry = g
	s.rebuild()
	return nil
}

// SetGeometryName is SetGeometry for a shape name such as "airfoil".
func (s *Solver) SetGeometryName(name string) error {
	g, err := ParseGeometry(name)
	if err != nil {
		return err
	}
	return s.SetGeometry(g)
}

// Reset returns the fluid to rest under the current geometry and restarts
// the ramp-up.
func (s *Solver) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restart()
}

// Step advances the simulation by one tick: ramp-up, collision, streaming
// and boundary conditions.
func (s *Solver) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.step()
}

// Advance runs n ticks under a single lock acquisition.
func (s *Solver) Advance(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.step()
	}
}

func (s *Solver) step() {
	s.ticks++
	s.advanceRamp()
	lat, omega, u := s.lat, s.omega, s.currentVelocity
	runBands(s.bands, func(y0, y1 int) {
		lat.collideRows(y0, y1, omega)
	})
	runBands(s.bands, func(y0, y1 int) {
		s.policy.stream(lat, y0, y1, u)
	})
	lat.swap()
	s.policy.finish(lat, u)
}

func (s *Solver) advanceRamp() {
	if s.stepCount < s.rampUpSteps {
		s.stepCount++
	}
	if s.stepCount >= s.rampUpSteps {
		s.currentVelocity = s.u0
		return
	}
	s.currentVelocity = s.u0 * float64(s.stepCount) / float64(s.rampUpSteps)
}

// Width is the number of lattice columns.
func (s *Solver) Width() int {
	return s.lat.width
}

// Height is the number of lattice rows.
func (s *Solver) Height() int {
	return s.lat.height
}

// Boundary is the edge policy chosen at construction.
func (s *Solver) Boundary() Boundary {
	return s.boundary
}

// Geometry is the obstacle currently rasterized.
func (s *Solver) Geometry() Geometry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.geometry
}

// Viscosity is the kinematic viscosity ν.
func (s *Solver) Viscosity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nu
}

// Tau is the relaxation time 3ν + 0.5.
func (s *Solver) Tau() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tau
}

// Omega is the relaxation rate 1/τ.
func (s *Solver) Omega() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.omega
}

// Velocity is the target driving velocity u0.
func (s *Solver) Velocity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.u0
}

// CurrentVelocity is the driving velocity used by the most recent tick.
func (s *Solver) CurrentVelocity() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.currentVelocity
}

// Ticks counts the ticks run since the last reset or geometry change.
func (s *Solver) Ticks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticks
}

// StepCount is the ramp-up position; it stops at RampUpSteps.
func (s *Solver) StepCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stepCount
}

// RampUpSteps is the length of the driving velocity ramp.
func (s *Solver) RampUpSteps() int {
	return s.rampUpSteps
}
