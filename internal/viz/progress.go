package viz

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/sortviz/internal/frame"
	"github.com/san-kum/sortviz/internal/visual"
)

const progressWidth = 40

// FrameCounter tallies frames as a visual.State queues and writes them.
// It is safe for concurrent use.
type FrameCounter struct {
	queued  atomic.Int64
	written atomic.Int64
	failed  atomic.Int64
}

func (c *FrameCounter) FrameQueued(frame.Snapshot) { c.queued.Add(1) }

func (c *FrameCounter) FrameWritten(_ int, err error) {
	if err != nil {
		c.failed.Add(1)
	}
	c.written.Add(1)
}

// Counts returns the frames queued, finished and failed so far.
func (c *FrameCounter) Counts() (queued, written, failed int64) {
	return c.queued.Load(), c.written.Load(), c.failed.Load()
}

type tickMsg time.Time

// DoneMsg reports that the tracked work returned.
type DoneMsg struct{ Err error }

func tick() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// ProgressModel polls a FrameCounter and draws a progress line.
type ProgressModel struct {
	title   string
	counter *FrameCounter
	frame   int
	done    bool
	err     error
	start   time.Time
	elapsed time.Duration
}

func NewProgressModel(title string, counter *FrameCounter) ProgressModel {
	return ProgressModel{title: title, counter: counter, start: time.Now()}
}

func (m ProgressModel) Init() tea.Cmd {
	return tick()
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.done {
			return m, nil
		}
		m.frame++
		m.elapsed = time.Since(m.start)
		return m, tick()
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		m.elapsed = time.Since(m.start)
		return m, tea.Quit
	}
	return m, nil
}

func (m ProgressModel) View() string {
	queued, written, failed := m.counter.Counts()

	pct := 0.0
	if queued > 0 {
		pct = float64(written) / float64(queued)
	}

	var sb strings.Builder
	status := Spinner(m.frame)
	if m.done {
		status = StatusOK.Render("✓")
		if m.err != nil {
			status = StatusFailed.Render("✗")
		}
	}
	sb.WriteString(fmt.Sprintf("%s %s\n", status, Title.Render(m.title)))
	sb.WriteString(ProgressBar(pct, progressWidth))
	sb.WriteString(fmt.Sprintf(" %d/%d frames", written, queued))
	if failed > 0 {
		sb.WriteString(StatusFailed.Render(fmt.Sprintf(" %d failed", failed)))
	}
	sb.WriteString(Subtle.Render(fmt.Sprintf("  %s", m.elapsed.Round(time.Millisecond))))
	sb.WriteString("\n")
	return sb.String()
}

// RunWithProgress calls work with a FrameCounter observer while a Bubble Tea
// program draws its progress to out. It returns work's error.
//
// Keyboard input is not read. An interrupt closes the view but work still
// runs to completion.
func RunWithProgress(title string, out io.Writer, work func(visual.Observer) error) error {
	counter := &FrameCounter{}
	p := tea.NewProgram(NewProgressModel(title, counter), tea.WithOutput(out), tea.WithInput(nil))

	errc := make(chan error, 1)
	go func() {
		err := work(counter)
		errc <- err
		p.Send(DoneMsg{Err: err})
	}()

	_, viewErr := p.Run()
	return progressResult(viewErr, <-errc)
}

// progressResult prefers the work's error. A view closed by an interrupt
// is not a failure.
func progressResult(viewErr, workErr error) error {
	if workErr != nil {
		return workErr
	}
	if viewErr == nil {
		return nil
	}
	if errors.Is(viewErr, tea.ErrProgramPanic) {
		return fmt.Errorf("progress view: %w", viewErr)
	}
	if errors.Is(viewErr, tea.ErrInterrupted) || errors.Is(viewErr, tea.ErrProgramKilled) {
		return nil
	}
	return fmt.Errorf("progress view: %w", viewErr)
}
