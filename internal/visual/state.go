package visual

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/san-kum/sortviz/internal/frame"
	"github.com/san-kum/sortviz/internal/logging"
	"golang.org/x/sync/semaphore"
)

const (
	// DefaultCapacity is the number of frames rendered or written at once.
	DefaultCapacity = 8

	// DefaultName prefixes output keys when Options.Name is empty.
	DefaultName = "sort"

	// SwapIntensity marks the two indices exchanged by Swap.
	SwapIntensity = 0.2

	// CompareIntensity marks the two indices inspected by Compare.
	CompareIntensity = 0.2
)

// FrameRenderer turns a snapshot into encoded image bytes.
type FrameRenderer interface {
	Frame(snap frame.Snapshot) ([]byte, error)
	Extension() string
}

// Sink persists encoded frames under a key.
type Sink interface {
	Put(ctx context.Context, key string, data []byte) error
}

// Gate bounds the number of frames in flight. *semaphore.Weighted satisfies it.
type Gate interface {
	Acquire(ctx context.Context, n int64) error
	Release(n int64)
}

// Observer is notified when a frame is queued (on the driver goroutine) and
// when its write completes (on the frame's goroutine).
type Observer interface {
	FrameQueued(snap frame.Snapshot)
	FrameWritten(number int, err error)
}

type Options struct {
	Name      string
	Renderer  FrameRenderer
	Sink      Sink
	Gate      Gate
	Capacity  int
	Logger    *slog.Logger
	Observers []Observer
}

type task struct {
	number int
	key    string
	done   chan struct{}
	err    error
}

// State is the live sort state plus the machinery that turns each operation
// into a written frame.
type State struct {
	ctx        context.Context
	values     []uint32
	highlights frame.Highlights
	next       int

	name      string
	ext       string
	renderer  FrameRenderer
	sink      Sink
	gate      Gate
	logger    *slog.Logger
	observers []Observer

	tasks     []*task
	finished  bool
	finishErr error
}

// New takes ownership of a copy of values. Frame goroutines inherit ctx's
// values but not its cancellation: once queued, a frame always runs.
func New(ctx context.Context, values []uint32, opts Options) (*State, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	if opts.Renderer == nil || opts.Sink == nil {
		return nil, ErrMissingCollaborator
	}
	if opts.Name == "" {
		opts.Name = DefaultName
	}
	if opts.Capacity <= 0 {
		opts.Capacity = DefaultCapacity
	}
	if opts.Gate == nil {
		opts.Gate = semaphore.NewWeighted(int64(opts.Capacity))
	}

	return &State{
		ctx:        context.WithoutCancel(ctx),
		values:     slices.Clone(values),
		highlights: make(frame.Highlights),
		name:       opts.Name,
		ext:        opts.Renderer.Extension(),
		renderer:   opts.Renderer,
		sink:       opts.Sink,
		gate:       opts.Gate,
		logger:     logging.OrNop(opts.Logger),
		observers:  opts.Observers,
	}, nil
}

func (s *State) Name() string { return s.name }

// Len is the number of elements being sorted.
func (s *State) Len() int { return len(s.values) }

// At reads the live value at i without emitting a frame.
func (s *State) At(i int) uint32 { return s.values[i] }

// Values returns a copy of the live array.
func (s *State) Values() []uint32 { return slices.Clone(s.values) }

// Frames is the number of frame numbers assigned so far.
func (s *State) Frames() int { return s.next }

// Highlight returns the live intensity at idx.
func (s *State) Highlight(idx int) float64 { return s.highlights.Get(idx) }

// Key is the output key of frame number n.
func (s *State) Key(n int) string {
	return fmt.Sprintf("%s-%d.%s", s.name, n, s.ext)
}

// Swap exchanges positions x and y and emits a frame of the result.
func (s *State) Swap(x, y int) {
	s.mustBeLive()
	s.values[x], s.values[y] = s.values[y], s.values[x]
	s.emit(frame.OpSwap, x, y, SwapIntensity)
}

// Compare emits a frame marking x and y and returns the ordering of their
// values. Live highlights above CompareIntensity are kept in the frame. It
// does not wait for the frame to be written.
func (s *State) Compare(x, y int) int {
	s.mustBeLive()
	s.emit(frame.OpCompare, x, y, CompareIntensity)
	return cmp.Compare(s.values[x], s.values[y])
}

// SetHighlight sets the live intensity at idx; 0 clears it. No frame is emitted.
func (s *State) SetHighlight(idx int, v float64) {
	s.mustBeLive()
	s.highlights.Set(idx, v)
}

// Finish waits for every queued frame, in the order they were queued, and
// returns the first failure. After a nil return every assigned frame number
// has been written. Later calls return the same result.
func (s *State) Finish() error {
	if s.finished {
		return s.finishErr
	}

	var first error
	failed := 0
	for _, t := range s.tasks {
		<-t.done
		if t.err == nil {
			continue
		}
		failed++
		if first == nil {
			first = t.err
		}
	}

	if failed > 0 {
		s.logger.Error("frames failed", "run", s.name, "failed", failed, "total", len(s.tasks))
	} else {
		s.logger.Debug("frames written", "run", s.name, "total", len(s.tasks))
	}

	s.finished = true
	s.finishErr = first
	s.tasks = nil
	return first
}

func (s *State) mustBeLive() {
	if s.finished {
		panic(ErrFinished)
	}
}

func (s *State) emit(op frame.Op, x, y int, intensity float64) {
	snap := frame.Capture(s.next, s.values, s.highlights, op, x, y)
	for _, i := range []int{x, y} {
		v := intensity
		if op == frame.OpCompare {
			// Comparisons keep stronger live marks such as a pivot.
			v = max(v, snap.Highlights.Get(i))
		}
		snap.Highlights.Set(i, v)
	}

	t := &task{
		number: snap.Number,
		key:    s.Key(snap.Number),
		done:   make(chan struct{}),
	}
	s.tasks = append(s.tasks, t)
	s.next++

	for _, o := range s.observers {
		o.FrameQueued(snap)
	}

	go s.run(t, snap)
}

func (s *State) run(t *task, snap frame.Snapshot) {
	defer close(t.done)

	t.err = s.write(t, snap)
	if t.err != nil {
		s.logger.Warn("frame failed", "frame", t.number, "key", t.key, "err", t.err)
	} else {
		s.logger.Debug("frame written", "frame", t.number, "key", t.key)
	}

	for _, o := range s.observers {
		o.FrameWritten(t.number, t.err)
	}
}

func (s *State) write(t *task, snap frame.Snapshot) error {
	if err := s.gate.Acquire(s.ctx, 1); err != nil {
		return &FrameError{Number: t.number, Key: t.key, Err: err}
	}
	defer s.gate.Release(1)

	data, err := s.renderer.Frame(snap)
	if err != nil {
		return &FrameError{Number: t.number, Key: t.key, Err: err}
	}
	if err := s.sink.Put(s.ctx, t.key, data); err != nil {
		return &FrameError{Number: t.number, Key: t.key, Err: err}
	}
	return nil
}
