package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/san-kum/sortviz/internal/logging"
	"github.com/san-kum/sortviz/internal/raster"
	"github.com/san-kum/sortviz/internal/sorts"
	"github.com/san-kum/sortviz/internal/storage"
	"github.com/san-kum/sortviz/internal/visual"
)

type Config struct {
	Name      string
	Algorithm string
	Input     []uint32
	Seed      uint64
	Workers   int
	Render    raster.Config
}

type Result struct {
	Algorithm string
	Input     []uint32
	Output    []uint32
	Frames    int
	Swaps     int
	Compares  int
	Ops       []storage.Operation
	Width     int
	Height    int
	Elapsed   time.Duration
}

type Option func(*Experiment)

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = logging.OrNop(l) }
}

// WithObserver adds an observer notified of every frame of the run.
func WithObserver(o visual.Observer) Option {
	return func(e *Experiment) { e.observers = append(e.observers, o) }
}

type Experiment struct {
	cfg       Config
	registry  *sorts.Registry
	logger    *slog.Logger
	observers []visual.Observer
}

func New(cfg Config, opts ...Option) *Experiment {
	e := &Experiment{
		cfg:      cfg,
		registry: sorts.NewRegistry(),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Permutation returns 1..n in an order determined by seed.
func Permutation(n int, seed uint64) []uint32 {
	values := make([]uint32, n)
	for i := range values {
		values[i] = uint32(i + 1)
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	rng.Shuffle(n, func(i, j int) { values[i], values[j] = values[j], values[i] })
	return values
}

// Run sorts the configured input and writes every frame to sink. It returns
// once all frames are written, or with the first frame failure.
func (e *Experiment) Run(ctx context.Context, sink visual.Sink) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	alg, err := e.registry.Get(e.cfg.Algorithm)
	if err != nil {
		return nil, err
	}
	if err := e.cfg.Render.Validate(); err != nil {
		return nil, err
	}

	oplog := &OperationLog{}
	st, err := visual.New(ctx, e.cfg.Input, visual.Options{
		Name:      e.cfg.Name,
		Renderer:  raster.NewRenderer(e.cfg.Render),
		Sink:      sink,
		Capacity:  e.cfg.Workers,
		Logger:    e.logger,
		Observers: append(slices.Clone(e.observers), oplog),
	})
	if err != nil {
		return nil, err
	}

	algorithm := e.registry.Canonical(e.cfg.Algorithm)
	e.logger.Info("sorting", "run", st.Name(), "algorithm", algorithm, "count", st.Len(), "workers", e.cfg.Workers)

	start := time.Now()
	alg(st)
	if err := st.Finish(); err != nil {
		return nil, fmt.Errorf("run %s: %w", st.Name(), err)
	}
	elapsed := time.Since(start)

	swaps, compares := oplog.Counts()
	e.logger.Info("frames written", "run", st.Name(), "frames", st.Frames(), "elapsed", elapsed)

	return &Result{
		Algorithm: algorithm,
		Input:     slices.Clone(e.cfg.Input),
		Output:    st.Values(),
		Frames:    st.Frames(),
		Swaps:     swaps,
		Compares:  compares,
		Ops:       oplog.Operations(),
		Width:     e.cfg.Render.Width(st.Len()),
		Height:    e.cfg.Render.Height(),
		Elapsed:   elapsed,
	}, nil
}

// Record runs the experiment into a new run directory of st and saves its
// metadata and operation log next to the frames.
func (e *Experiment) Record(ctx context.Context, st *storage.Store) (string, *Result, error) {
	if err := st.Init(); err != nil {
		return "", nil, err
	}
	runID, err := st.NewRun(e.cfg.Name)
	if err != nil {
		return "", nil, err
	}

	result, err := e.Run(ctx, st.Frames(runID))
	if err != nil {
		return runID, nil, err
	}

	meta := storage.RunMetadata{
		ID:        runID,
		Name:      e.cfg.Name,
		Algorithm: result.Algorithm,
		Timestamp: time.Now(),
		Seed:      e.cfg.Seed,
		Count:     len(result.Input),
		Workers:   e.cfg.Workers,
		Frames:    result.Frames,
		Swaps:     result.Swaps,
		Compares:  result.Compares,
		Width:     result.Width,
		Height:    result.Height,
		ElapsedMs: result.Elapsed.Milliseconds(),
		Input:     result.Input,
		Output:    result.Output,
	}
	if err := st.Save(meta); err != nil {
		return runID, result, fmt.Errorf("save metadata: %w", err)
	}
	if err := st.SaveOperations(runID, result.Ops); err != nil {
		return runID, result, fmt.Errorf("save operations: %w", err)
	}

	return runID, result, nil
}
