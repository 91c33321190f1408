package lbm

// q is the number of discrete velocities of the D2Q9 lattice.
const q = 9

// D2Q9 direction table. Index 0 is the rest population, 1-4 the axis
// neighbours and 5-8 the diagonals. These tables are shared by every solver
// and never written.
var (
	ex      = [q]int{0, 1, 0, -1, 0, 1, -1, -1, 1}
	ey      = [q]int{0, 0, 1, 0, -1, 1, 1, -1, -1}
	// The rest weight is 4/9 rounded down one ulp so that the nine weights,
	// summed in direction order, are exactly 1 and rest equilibrium is an
	// exact fixed point of collision.
	weights = [q]float64{
		0.44444444444444436,
		1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0, 1.0 / 9.0,
		1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0, 1.0 / 36.0,
	}

	// opp maps a direction to its reverse; used for bounce-back.
	opp = [q]int{0, 3, 4, 1, 2, 7, 8, 5, 6}

	// mirrorY flips the vertical component of a direction; used for
	// free-slip reflection at horizontal walls.
	mirrorY = [q]int{0, 1, 4, 3, 2, 8, 7, 6, 5}
)

// lattice owns the population buffers and the macroscopic fields. Cells are
// stored row-major (y*width + x) with the nine populations of a cell
// contiguous in f and next.
type lattice struct {
	width, height int

	f    []float64
	next []float64

	rho []float64
	ux  []float64
	uy  []float64

	solid []bool
}

func newLattice(width, height int) *lattice {
	n := width * height
	return &lattice{
		width:  width,
		height: height,
		f:      make([]float64, n*q),
		next:   make([]float64, n*q),
		rho:    make([]float64, n),
		ux:     make([]float64, n),
		uy:     make([]float64, n),
		solid:  make([]bool, n),
	}
}

func (l *lattice) index(x, y int) int {
	return y*l.width + x
}

func (l *lattice) inBounds(x, y int) bool {
	return x >= 0 && x < l.width && y >= 0 && y < l.height
}

// initializeEquilibrium puts every cell, solid or not, at rest equilibrium
// with unit density.
func (l *lattice) initializeEquilibrium() {
	for i := range l.rho {
		base := i * q
		for k := 0; k < q; k++ {
			l.f[base+k] = weights[k]
			l.next[base+k] = weights[k]
		}
		l.rho[i] = 1
		l.ux[i] = 0
		l.uy[i] = 0
	}
}

// swap exchanges the population buffers after a streaming pass.
func (l *lattice) swap() {
	l.f, l.next = l.next, l.f
}

// clearSolid marks every cell as fluid.
func (l *lattice) clearSolid() {
	for i := range l.solid {
		l.solid[i] = false
	}
}

// equilibrium returns the BGK equilibrium population for direction k.
func equilibrium(k int, rho, ux, uy float64) float64 {
	eu := float64(ex[k])*ux + float64(ey[k])*uy
	u2 := ux*ux + uy*uy
	return weights[k] * rho * (1 + 3*eu + 4.5*eu*eu - 1.5*u2)
}
