package main

import "flag"

// Command-line flags. Scenario values come from -config (or the built-in
// default scenario); the remaining flags override individual fields.
var (
	// configFlag points at a JSON scenario file.
	configFlag = flag.String("config", "", "path to a JSON scenario file")

	// boundaryFlag overrides the scenario boundary ("channel" or "cavity").
	boundaryFlag = flag.String("boundary", "", "override boundary: channel or cavity")

	// geometryFlag overrides the scenario obstacle.
	geometryFlag = flag.String("geometry", "", "override obstacle: circle, square, airfoil, flat_plate, triangle or none")

	workersFlag = flag.Int("workers", 0, "override the number of row bands per tick (0 keeps the scenario value)")

	// scaleFlag sets how many screen pixels each lattice cell covers.
	scaleFlag = flag.Int("scale", defaultWindowScale, "window pixels per lattice cell")

	// debugFlag enables the tick and timing overlay.
	debugFlag = flag.Bool("debug", false, "show FPS and solver overlay")

	// headlessStepsFlag runs that many ticks without a window and exits.
	headlessStepsFlag = flag.Int("headless-steps", 0, "run this many ticks without a window, logging summaries")

	logEveryFlag = flag.Int("log-every", defaultLogEvery, "ticks between summaries in headless mode")

	// cpuProfileFlag captures a CPU profile for cpuProfileDurationFlag.
	cpuProfileFlag         = flag.String("cpuprofile", "", "write a CPU profile to this path")
	cpuProfileDurationFlag = flag.Duration("cpuprofile-duration", cpuProfileDuration, "how long to record the CPU profile")
)
