package main

import "time"

// Host timing and display constants. Grid size and physics parameters come
// from the scenario; these only shape how the window drives and shows it.
const (
	defaultWindowScale   = 3
	defaultTPS           = 60.0
	stepsPerFrameStep    = 5
	minStepsPerFrame     = 1
	maxStepsPerFrame     = 200
	speedDisplayHeadroom = 1.5
	defaultLogEvery      = 500
	cpuProfileDuration   = 15 * time.Second
	windowTitle          = "LBM Flow"
)

// Obstacle colour in the speed view.
var wallRGB = [3]byte{30, 40, 80}
