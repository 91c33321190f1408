// Package lbm implements a two-dimensional D2Q9 lattice Boltzmann solver
// with BGK collision for incompressible flow past an obstacle, either in an
// open channel or in a lid-driven cavity.
//
// A Solver owns the lattice, advances it one tick at a time and exposes the
// macroscopic fields as row-major snapshots for rendering or analysis.
package lbm
