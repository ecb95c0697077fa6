// Package frame holds the immutable per-frame data handed from the sort
// driver to concurrent rendering work.
package frame

import "slices"

// Highlights maps an array index to an intensity in (0, 1].
// Zero intensities are never stored; a missing index reads as 0.
type Highlights map[int]float64

// Get returns the intensity at idx, or 0 when absent.
func (h Highlights) Get(idx int) float64 {
	return h[idx]
}

// Set stores v at idx, or removes idx when v is 0.
func (h Highlights) Set(idx int, v float64) {
	if v == 0 {
		delete(h, idx)
		return
	}
	h[idx] = v
}

// Clone returns an owned copy.
func (h Highlights) Clone() Highlights {
	c := make(Highlights, len(h)+2)
	for k, v := range h {
		c[k] = v
	}
	return c
}

// Op identifies the state operation that produced a snapshot.
type Op uint8

const (
	OpSwap Op = iota
	OpCompare
)

func (o Op) String() string {
	switch o {
	case OpSwap:
		return "swap"
	case OpCompare:
		return "compare"
	default:
		return "unknown"
	}
}

// Snapshot is a value copy of the sort state at the moment an operation was
// issued. Nothing may write to Values or Highlights once it is captured.
type Snapshot struct {
	Number     int
	Values     []uint32
	Highlights Highlights
	Op         Op
	X, Y       int
}

// Capture copies values and highlights into a new snapshot.
func Capture(number int, values []uint32, highlights Highlights, op Op, x, y int) Snapshot {
	return Snapshot{
		Number:     number,
		Values:     slices.Clone(values),
		Highlights: highlights.Clone(),
		Op:         op,
		X:          x,
		Y:          y,
	}
}

// Max returns the largest value in the snapshot.
func (s Snapshot) Max() uint32 {
	var m uint32
	for _, v := range s.Values {
		m = max(m, v)
	}
	return m
}

// Misplaced counts positions whose value differs from the sorted order.
func (s Snapshot) Misplaced() int {
	sorted := slices.Sorted(slices.Values(s.Values))
	n := 0
	for i, v := range s.Values {
		if sorted[i] != v {
			n++
		}
	}
	return n
}
