package main

import "time"

// stepBatch advances the solver by steps ticks and records the time it took.
func (g *Game) stepBatch(steps int) {
	if steps <= 0 {
		return
	}
	start := time.Now()
	g.solver.Advance(steps)
	g.lastSimDuration = time.Since(start)
}

// simStepsPerSecond returns the nominal ticks executed each second.
func (g *Game) simStepsPerSecond() float64 {
	if g.paused {
		return 0
	}
	return defaultTPS * float64(g.stepsPerFrame)
}
