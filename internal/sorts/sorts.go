package sorts

// Highlight intensities used by the quicksort driver.
const (
	PivotIntensity = 0.5
	ScanIntensity  = 0.3
)

// Tracer is the view of the sort state available to a driver.
type Tracer interface {
	Len() int
	At(i int) uint32
	Swap(x, y int)
	Compare(x, y int) int
	SetHighlight(idx int, v float64)
}

// Algorithm sorts the tracer's array in ascending order.
type Algorithm func(t Tracer)

// Bubble compares every pair (i, j>i) and swaps when out of order. Only the
// corrective swaps are reported.
func Bubble(t Tracer) {
	n := t.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if t.At(j) < t.At(i) {
				t.Swap(i, j)
			}
		}
	}
}

// Quick sorts with the Lomuto partition scheme, pivoting on the last element
// of each range.
func Quick(t Tracer) {
	quick(t, 0, t.Len()-1)
}

func quick(t Tracer, lo, hi int) {
	if lo >= hi {
		return
	}
	p := partition(t, lo, hi)
	// p-1 is -1 when p == 0, which is an empty range.
	quick(t, lo, p-1)
	quick(t, p+1, hi)
}

func partition(t Tracer, lo, hi int) int {
	t.SetHighlight(hi, PivotIntensity)

	i := lo
	for j := lo; j < hi; j++ {
		t.SetHighlight(j, ScanIntensity)
		if t.Compare(j, hi) < 0 {
			t.Swap(i, j)
			i++
		}
		t.SetHighlight(j, 0)
	}

	t.SetHighlight(hi, 0)
	t.Swap(i, hi)
	return i
}
