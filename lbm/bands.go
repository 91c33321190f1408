package lbm

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// rowBand is the half-open row range [y0, y1) swept by one goroutine.
type rowBand struct {
	y0, y1 int
}

// splitRows cuts height rows into at most workers contiguous bands of nearly
// equal size.
func splitRows(height, workers int) []rowBand {
	if workers < 1 {
		workers = 1
	}
	if workers > height {
		workers = height
	}
	bands := make([]rowBand, 0, workers)
	rowsPer := height / workers
	extra := height % workers
	y := 0
	for i := 0; i < workers; i++ {
		n := rowsPer
		if i < extra {
			n++
		}
		bands = append(bands, rowBand{y0: y, y1: y + n})
		y += n
	}
	return bands
}

// runBands calls fn once per band and returns when all calls are done. A
// single band runs on the calling goroutine. Every band writes disjoint cells,
// so the result does not depend on scheduling. A panic inside a band is
// re-raised on the caller.
func runBands(bands []rowBand, fn func(y0, y1 int)) {
	if len(bands) == 1 {
		fn(bands[0].y0, bands[0].y1)
		return
	}
	var g errgroup.Group
	for _, b := range bands {
		b := b
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("lbm: rows %d-%d: %v", b.y0, b.y1, r)
				}
			}()
			fn(b.y0, b.y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(err)
	}
}
