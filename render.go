package main

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// Draw renders the velocity magnitude in grey with obstacles on top.
func (g *Game) Draw(screen *ebiten.Image) {
	speed := g.solver.VelocityMagnitude()
	obstacle := g.solver.Obstacle()
	fillSpeedPixels(g.pixels, speed, obstacle, displayPeak(g.solver.Velocity(), speed))
	screen.WritePixels(g.pixels)

	if *debugFlag {
		status := ""
		if g.paused {
			status = " (paused)"
		}
		simMS := g.lastSimDuration.Seconds() * 1000
		debugMsg := fmt.Sprintf("FPS: %.1f TPS: %.1f%s\nTick %d  u=%.4f/%.4f  nu=%.4f\n%s %s\nSteps: %d/frame, %.0f/s (+/-)\nSim: %.2f ms",
			ebiten.ActualFPS(), ebiten.ActualTPS(), status,
			g.solver.Ticks(), g.solver.CurrentVelocity(), g.solver.Velocity(), g.solver.Viscosity(),
			g.solver.Boundary(), g.solver.Geometry(),
			g.stepsPerFrame, g.simStepsPerSecond(), simMS)
		ebitenutil.DebugPrint(screen, debugMsg)
	}
}

// Layout reports the lattice size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.solver.Width(), g.solver.Height()
}

// displayPeak is the speed drawn as full white: the driving velocity with
// some headroom, or the field maximum when the flow is not driven.
func displayPeak(u0 float64, speed []float64) float64 {
	if peak := math.Abs(u0) * speedDisplayHeadroom; peak > 0 {
		return peak
	}
	var peak float64
	for _, v := range speed {
		if v > peak {
			peak = v
		}
	}
	return peak
}

// fillSpeedPixels writes RGBA grey levels for speed/peak into pixels.
// Non-finite speeds show as white.
func fillSpeedPixels(pixels []byte, speed []float64, obstacle []bool, peak float64) {
	for i, v := range speed {
		base := i * 4
		if obstacle[i] {
			pixels[base] = wallRGB[0]
			pixels[base+1] = wallRGB[1]
			pixels[base+2] = wallRGB[2]
			pixels[base+3] = 255
			continue
		}
		var intensity byte
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			intensity = 255
		case peak > 0:
			intensity = byte(math.Min(1, v/peak) * 255)
		}
		pixels[base] = intensity
		pixels[base+1] = intensity
		pixels[base+2] = intensity
		pixels[base+3] = 255
	}
}
