package field

import "gonum.org/v1/gonum/spatial/r3"

// Edge connects particles I and J, with I < J. Alpha grows from 0 at the
// threshold distance to 1 when both particles coincide.
type Edge struct {
	I, J  int
	Alpha float64
}

// Connect appends to dst[:0] every pair of positions whose squared distance
// is strictly below threshold and returns the result.
//
// Each unordered pair is visited once, so the cost is quadratic in the
// number of positions. Callers bound it through the particle count.
func Connect(pos []r3.Vec, threshold float64, dst []Edge) []Edge {
	dst = dst[:0]
	if threshold <= 0 {
		return dst
	}
	for i := 0; i < len(pos); i++ {
		for j := i + 1; j < len(pos); j++ {
			d2 := r3.Norm2(r3.Sub(pos[i], pos[j]))
			if d2 < threshold {
				dst = append(dst, Edge{I: i, J: j, Alpha: 1 - d2/threshold})
			}
		}
	}
	return dst
}
