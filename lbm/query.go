package lbm

import "math"

// Field queries return a fresh slice of Width()*Height() values in row-major
// order: the value for cell (x, y) is at index y*Width() + x, row 0 first.
// They reflect the macroscopic state computed by the most recent tick and
// never modify the solver. Solid cells keep the values they were initialized
// with (unit density, zero velocity).

// VelocityMagnitude returns sqrt(ux² + uy²) per cell.
func (s *Solver) VelocityMagnitude() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lat := s.lat
	out := make([]float64, len(lat.ux))
	for i := range out {
		out[i] = math.Sqrt(lat.ux[i]*lat.ux[i] + lat.uy[i]*lat.uy[i])
	}
	return out
}

// Vorticity returns the central-difference curl duy/dx - dux/dy. Border cells,
// where the stencil has no neighbour on one side, are 0.
func (s *Solver) Vorticity() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lat := s.lat
	w, h := lat.width, lat.height
	out := make([]float64, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			out[i] = (lat.uy[i+1]-lat.uy[i-1])/2 - (lat.ux[i+w]-lat.ux[i-w])/2
		}
	}
	return out
}

// Pressure returns ρ/3, the lattice equation of state with c_s² = 1/3.
func (s *Solver) Pressure() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, len(s.lat.rho))
	for i, rho := range s.lat.rho {
		out[i] = rho / 3
	}
	return out
}

// Density returns ρ per cell.
func (s *Solver) Density() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.lat.rho...)
}

// Ux returns the horizontal velocity component per cell.
func (s *Solver) Ux() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.lat.ux...)
}

// Uy returns the vertical velocity component per cell; positive values point
// toward larger row indices.
func (s *Solver) Uy() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]float64(nil), s.lat.uy...)
}

// Obstacle returns the solid mask.
func (s *Solver) Obstacle() []bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]bool(nil), s.lat.solid...)
}
