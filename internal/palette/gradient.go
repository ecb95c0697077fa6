package palette

import "math"

// Gradient maps [0, 1) onto its stops in order. It must hold at least one stop.
type Gradient []Color

// Sample returns the color at v. Inputs below 0 (and NaN) give the first
// stop and inputs at or above 1 give the last.
func (g Gradient) Sample(v float64) Color {
	if !(v >= 0) {
		return g[0]
	}
	if v >= 1 {
		return g[len(g)-1]
	}

	idx := float64(len(g)-1) * v
	lo := math.Floor(idx)
	hi := math.Ceil(idx)
	return g[int(lo)].Lerp(g[int(hi)], idx-lo)
}

// Strings returns the stops as "#rrggbb" strings.
func (g Gradient) Strings() []string {
	out := make([]string, len(g))
	for i, c := range g {
		out[i] = c.String()
	}
	return out
}
