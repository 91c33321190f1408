package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"lbmflow/lbm"
)

// geometryKeys maps the number row to obstacle shapes in declaration order.
var geometryKeys = []ebiten.Key{
	ebiten.KeyDigit1,
	ebiten.KeyDigit2,
	ebiten.KeyDigit3,
	ebiten.KeyDigit4,
	ebiten.KeyDigit5,
	ebiten.KeyDigit6,
}

// handleControls processes pause, reset, obstacle and batch-size hotkeys.
func (g *Game) handleControls() {
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.solver.Reset()
		log.Printf("Reset %s flow", g.solver.Geometry())
	}
	for i, key := range geometryKeys {
		if inpututil.IsKeyJustPressed(key) {
			g.selectGeometry(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		g.adjustStepsPerFrame(-stepsPerFrameStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		g.adjustStepsPerFrame(stepsPerFrameStep)
	}
}

// selectGeometry switches to the i-th shape of lbm.Geometries.
func (g *Game) selectGeometry(i int) {
	shapes := lbm.Geometries()
	if i < 0 || i >= len(shapes) {
		return
	}
	if err := g.solver.SetGeometry(shapes[i]); err != nil {
		log.Printf("Geometry change failed: %v", err)
	}
}

// adjustStepsPerFrame clamps the tick batch size delta within bounds.
func (g *Game) adjustStepsPerFrame(delta int) {
	g.stepsPerFrame += delta
	if g.stepsPerFrame < minStepsPerFrame {
		g.stepsPerFrame = minStepsPerFrame
	} else if g.stepsPerFrame > maxStepsPerFrame {
		g.stepsPerFrame = maxStepsPerFrame
	}
}
