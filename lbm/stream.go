package lbm

// Both streaming strategies read post-collision populations from l.f and
// write l.next, so no value written during a pass is read by the same pass.
// Solid cells are copied through unchanged.

// streamPullRows gathers populations for rows [y0, y1). Every fluid cell
// pulls direction k from its upstream neighbour c - e_k. Solid upstream cells
// bounce the cell's own opposite population back; rows outside the domain
// reflect specularly (free slip). Upstream columns outside the domain keep
// the current value for the inlet/outlet pass to overwrite.
func (l *lattice) streamPullRows(y0, y1 int) {
	for y := y0; y < y1; y++ {
		for x := 0; x < l.width; x++ {
			c := l.index(x, y)
			dst := l.next[c*q : c*q+q]
			src := l.f[c*q : c*q+q]
			if l.solid[c] {
				copy(dst, src)
				continue
			}
			for k := 0; k < q; k++ {
				sx, sy := x-ex[k], y-ey[k]
				switch {
				case l.inBounds(sx, sy):
					s := l.index(sx, sy)
					if l.solid[s] {
						dst[k] = src[opp[k]]
					} else {
						dst[k] = l.f[s*q+k]
					}
				case sy < 0 || sy >= l.height:
					if sx >= 0 && sx < l.width && !l.solid[l.index(sx, y)] {
						dst[k] = l.f[l.index(sx, y)*q+mirrorY[k]]
					} else {
						dst[k] = src[opp[k]]
					}
				default:
					dst[k] = src[k]
				}
			}
		}
	}
}

// streamPushRows scatters populations from rows [y0, y1). A population whose
// destination is a fluid cell inside the domain moves there; any other
// population bounces back into its source cell in the opposite direction.
// Links crossing the top edge pick up the moving-lid momentum term for a lid
// sliding along +x at speed lid.
func (l *lattice) streamPushRows(y0, y1 int, lid float64) {
	for y := y0; y < y1; y++ {
		for x := 0; x < l.width; x++ {
			c := l.index(x, y)
			src := l.f[c*q : c*q+q]
			if l.solid[c] {
				copy(l.next[c*q:c*q+q], src)
				continue
			}
			for k := 0; k < q; k++ {
				dx, dy := x+ex[k], y+ey[k]
				if l.inBounds(dx, dy) {
					if d := l.index(dx, dy); !l.solid[d] {
						l.next[d*q+k] = src[k]
						continue
					}
				}
				r := opp[k]
				v := src[k]
				if dy < 0 {
					v += lidCorrection(r, lid)
				}
				l.next[c*q+r] = v
			}
		}
	}
}

// lidCorrection is the momentum a wall moving along +x at speed u adds to
// the population reflected into direction k: 6·w_k·(e_k·u_wall), taking the
// wall density as one. It is +u/6 and -u/6 on the two diagonals leaving the
// lid and zero on the straight direction.
func lidCorrection(k int, u float64) float64 {
	return 6 * weights[k] * float64(ex[k]) * u
}
