// Package scenario loads solver runs from JSON files and summarizes their
// state.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"lbmflow/lbm"
)

// ErrInvalidScenario wraps every validation failure reported by Validate.
var ErrInvalidScenario = errors.New("scenario: invalid")

// Scenario is the on-disk description of a run. Fields left out of a file
// keep their Default values.
type Scenario struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	Viscosity float64 `json:"viscosity"`
	Velocity  float64 `json:"velocity"`

	Geometry string `json:"geometry"`
	Boundary string `json:"boundary"`

	RampUpSteps   int `json:"rampUpSteps"`
	Workers       int `json:"workers"`
	StepsPerFrame int `json:"stepsPerFrame"`
}

// Default is a 400x160 channel past a circle.
func Default() Scenario {
	return Scenario{
		Width:         400,
		Height:        160,
		Viscosity:     lbm.DefaultViscosity,
		Velocity:      0.1,
		Geometry:      lbm.Circle.String(),
		Boundary:      lbm.Channel.String(),
		RampUpSteps:   lbm.DefaultRampUpSteps,
		Workers:       4,
		StepsPerFrame: 10,
	}
}

// Load decodes the JSON file at path over Default and validates the result.
func Load(path string) (Scenario, error) {
	sc := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("scenario: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("scenario: parse %s: %w", path, err)
	}
	if err := sc.Validate(); err != nil {
		return sc, err
	}
	return sc, nil
}

// Validate checks the fields the solver does not see itself. Names must
// resolve and the frame batch must be positive; numeric solver parameters
// are checked again by lbm at construction.
func (sc Scenario) Validate() error {
	if _, err := lbm.ParseGeometry(sc.Geometry); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if _, err := lbm.ParseBoundary(sc.Boundary); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScenario, err)
	}
	if sc.StepsPerFrame < 1 {
		return fmt.Errorf("%w: stepsPerFrame %d", ErrInvalidScenario, sc.StepsPerFrame)
	}
	if sc.Workers < 0 {
		return fmt.Errorf("%w: workers %d", ErrInvalidScenario, sc.Workers)
	}
	return nil
}

// Config converts the scenario into a solver configuration.
func (sc Scenario) Config(logger *log.Logger) (lbm.Config, error) {
	if err := sc.Validate(); err != nil {
		return lbm.Config{}, err
	}
	geometry, _ := lbm.ParseGeometry(sc.Geometry)
	boundary, _ := lbm.ParseBoundary(sc.Boundary)
	return lbm.Config{
		Width:       sc.Width,
		Height:      sc.Height,
		Viscosity:   sc.Viscosity,
		Velocity:    sc.Velocity,
		Geometry:    geometry,
		Boundary:    boundary,
		RampUpSteps: sc.RampUpSteps,
		Workers:     sc.Workers,
		Logger:      logger,
	}, nil
}

// Build constructs the solver described by the scenario.
func (sc Scenario) Build(logger *log.Logger) (*lbm.Solver, error) {
	cfg, err := sc.Config(logger)
	if err != nil {
		return nil, err
	}
	solver, err := lbm.NewWithConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("scenario: build solver: %w", err)
	}
	return solver, nil
}
