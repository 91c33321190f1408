package main

import (
	"time"

	"lbmflow/lbm"
)

// Game drives one solver from the ebiten loop and owns the pixel buffer the
// speed view is written into.
type Game struct {
	solver *lbm.Solver

	stepsPerFrame   int
	paused          bool
	lastSimDuration time.Duration

	pixels []byte
}

// newGame wraps a solver for display.
func newGame(solver *lbm.Solver, stepsPerFrame int) *Game {
	g := &Game{
		solver:        solver,
		stepsPerFrame: minStepsPerFrame,
		pixels:        make([]byte, solver.Width()*solver.Height()*4),
	}
	g.adjustStepsPerFrame(stepsPerFrame - minStepsPerFrame)
	return g
}

// Update applies key input and then runs one batch of ticks.
func (g *Game) Update() error {
	g.handleControls()
	if g.paused {
		g.lastSimDuration = 0
		return nil
	}
	g.stepBatch(g.stepsPerFrame)
	return nil
}
