// Package sorts provides sorting algorithms instrumented to report every
// significant step through a [Tracer].
//
//   - [Bubble]: naive double scan, one frame per corrective swap
//   - [Quick]: Lomuto quicksort, frames for every pivot comparison and swap
//
// Drivers run on a single goroutine and touch the array only through the
// tracer, which is normally a *visual.State.
package sorts
