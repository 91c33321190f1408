package main

import (
	"flag"
	"fmt"
	"log"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"

	"lbmflow/internal/scenario"
	"lbmflow/lbm"
)

func main() {
	flag.Parse()
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

// run builds the solver and drives it headless or in a window. Deferred
// cleanup, including the CPU profile, completes before it returns.
func run() error {
	sc, err := resolveScenario(*configFlag, *boundaryFlag, *geometryFlag, *workersFlag)
	if err != nil {
		return fmt.Errorf("scenario: %w", err)
	}
	solver, err := sc.Build(log.Default())
	if err != nil {
		return fmt.Errorf("solver initialization failed: %w", err)
	}
	log.Printf("Solver ready: %dx%d %s, nu=%.4f (tau %.4f), u0=%.4f, %d workers",
		solver.Width(), solver.Height(), solver.Boundary(), solver.Viscosity(), solver.Tau(), solver.Velocity(), sc.Workers)

	if *cpuProfileFlag != "" {
		stop, err := startTimedCPUProfile(*cpuProfileFlag, *cpuProfileDurationFlag)
		if err != nil {
			return fmt.Errorf("CPU profile: %w", err)
		}
		defer stop()
	}

	if *headlessStepsFlag > 0 {
		runHeadless(solver, *headlessStepsFlag, *logEveryFlag)
		return nil
	}

	scale := *scaleFlag
	if scale < 1 {
		scale = 1
	}
	ebiten.SetWindowSize(solver.Width()*scale, solver.Height()*scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetTPS(int(defaultTPS))
	if err := ebiten.RunGame(newGame(solver, sc.StepsPerFrame)); err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	return nil
}

// resolveScenario loads the scenario file, or the default when path is
// empty, and applies the command-line overrides.
func resolveScenario(path, boundary, geometry string, workers int) (scenario.Scenario, error) {
	sc := scenario.Default()
	if path != "" {
		var err error
		if sc, err = scenario.Load(path); err != nil {
			return sc, err
		}
		log.Printf("Loaded scenario from %s", path)
	}
	if boundary != "" {
		sc.Boundary = boundary
	}
	if geometry != "" {
		sc.Geometry = geometry
	}
	if workers > 0 {
		sc.Workers = workers
	}
	return sc, sc.Validate()
}

// runHeadless advances the solver n ticks, logging a summary every logEvery
// ticks and once at the end.
func runHeadless(solver *lbm.Solver, n, logEvery int) scenario.Summary {
	if logEvery <= 0 {
		logEvery = n
	}
	for done := 0; done < n; {
		batch := min(logEvery, n-done)
		solver.Advance(batch)
		done += batch
		sum := scenario.Summarize(solver)
		log.Printf("Summary: %s", sum)
		if sum.Diverged {
			log.Printf("Solver diverged at tick %d; stopping", sum.Step)
			return sum
		}
	}
	return scenario.Summarize(solver)
}
