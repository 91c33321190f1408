package main

import (
	"log"
	"os"
	"runtime/pprof"
	"sync"
	"time"
)

// startCPUProfile begins writing a CPU profile to path. The returned stop
// function is safe to call more than once.
func startCPUProfile(path string) (func(), error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, err
	}
	var once sync.Once
	stop := func() {
		once.Do(func() {
			pprof.StopCPUProfile()
			if err := f.Close(); err != nil {
				log.Printf("closing CPU profile: %v", err)
				return
			}
			log.Printf("CPU profile written to %s", path)
		})
	}
	return stop, nil
}

// startTimedCPUProfile records for d, then stops on its own. The returned
// stop ends the recording early.
func startTimedCPUProfile(path string, d time.Duration) (func(), error) {
	stop, err := startCPUProfile(path)
	if err != nil {
		return nil, err
	}
	if d > 0 {
		time.AfterFunc(d, stop)
	}
	return stop, nil
}
