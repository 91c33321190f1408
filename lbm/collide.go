package lbm

// collideRows applies the BGK collision to every fluid cell in rows [y0, y1).
// It refreshes rho, ux and uy from the populations before relaxing them toward
// equilibrium. A zero density produces NaN velocities; nothing is clamped.
func (l *lattice) collideRows(y0, y1 int, omega float64) {
	for y := y0; y < y1; y++ {
		rowBase := y * l.width
		for x := 0; x < l.width; x++ {
			i := rowBase + x
			if l.solid[i] {
				continue
			}
			cell := l.f[i*q : i*q+q]

			var rho, mx, my float64
			for k := 0; k < q; k++ {
				rho += cell[k]
				mx += float64(ex[k]) * cell[k]
				my += float64(ey[k]) * cell[k]
			}
			ux := mx / rho
			uy := my / rho
			l.rho[i] = rho
			l.ux[i] = ux
			l.uy[i] = uy

			for k := 0; k < q; k++ {
				cell[k] += omega * (equilibrium(k, rho, ux, uy) - cell[k])
			}
		}
	}
}
