package visual

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/san-kum/sortviz/internal/frame"
	"golang.org/x/sync/semaphore"
)

type fakeRenderer struct {
	mu    sync.Mutex
	snaps map[int]frame.Snapshot
	fail  map[int]error
	delay time.Duration
	hold  chan struct{}

	active atomic.Int64
	peak   atomic.Int64
}

func newFakeRenderer() *fakeRenderer {
	return &fakeRenderer{
		snaps: make(map[int]frame.Snapshot),
		fail:  make(map[int]error),
	}
}

func (r *fakeRenderer) Frame(snap frame.Snapshot) ([]byte, error) {
	storePeak(&r.peak, r.active.Add(1))
	defer r.active.Add(-1)

	if r.hold != nil {
		<-r.hold
	}
	if r.delay > 0 {
		time.Sleep(r.delay)
	}

	r.mu.Lock()
	r.snaps[snap.Number] = snap
	err := r.fail[snap.Number]
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprint(snap.Values)), nil
}

func (r *fakeRenderer) Extension() string { return "png" }

func (r *fakeRenderer) snapshot(n int) (frame.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.snaps[n]
	return s, ok
}

type memSink struct {
	mu   sync.Mutex
	data map[string][]byte
	fail map[string]error
}

func newMemSink() *memSink {
	return &memSink{data: make(map[string][]byte), fail: make(map[string]error)}
}

func (m *memSink) Put(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail[key]; err != nil {
		return err
	}
	m.data[key] = data
	return nil
}

func (m *memSink) get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return string(d), ok
}

func (m *memSink) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}

// countingGate records the peak number of permits held at once.
type countingGate struct {
	sem  *semaphore.Weighted
	cur  atomic.Int64
	peak atomic.Int64
}

func newCountingGate(capacity int64) *countingGate {
	return &countingGate{sem: semaphore.NewWeighted(capacity)}
}

func (g *countingGate) Acquire(ctx context.Context, n int64) error {
	if err := g.sem.Acquire(ctx, n); err != nil {
		return err
	}
	storePeak(&g.peak, g.cur.Add(n))
	return nil
}

func (g *countingGate) Release(n int64) {
	g.cur.Add(-n)
	g.sem.Release(n)
}

func storePeak(peak *atomic.Int64, v int64) {
	for {
		p := peak.Load()
		if v <= p || peak.CompareAndSwap(p, v) {
			return
		}
	}
}

type recorder struct {
	mu      sync.Mutex
	queued  []int
	written map[int]error
}

func newRecorder() *recorder {
	return &recorder{written: make(map[int]error)}
}

func (r *recorder) FrameQueued(snap frame.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queued = append(r.queued, snap.Number)
}

func (r *recorder) FrameWritten(number int, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.written[number] = err
}

func mustNew(values []uint32, opts Options) *State {
	s, err := New(context.Background(), values, opts)
	if err != nil {
		panic(err)
	}
	return s
}
