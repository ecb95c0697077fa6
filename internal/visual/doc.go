// Package visual records the execution of a sorting algorithm as a numbered
// sequence of rendered frames.
//
// A [State] owns the live array and highlight map. Every [State.Swap] and
// [State.Compare] captures an owned snapshot, assigns it the next frame
// number, and hands it to a goroutine that renders, encodes and writes it.
// The driver never waits on an individual frame; it blocks once, in
// [State.Finish], until every frame has been written.
//
// # Concurrency
//
// At most Capacity frames are rendered or written at the same time. All frame
// goroutines share one [Gate]; a frame acquires a permit before any CPU or
// I/O work and releases it when done, whether or not the work failed.
//
// Frame numbers follow the order operations are issued, so output keys are
// deterministic. The order in which frames finish writing is not.
//
// # Thread Safety
//
// State methods must be called from a single goroutine (the driver).
// [Observer] callbacks may run on any goroutine.
package visual
