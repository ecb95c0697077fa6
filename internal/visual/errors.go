package visual

import (
	"errors"
	"fmt"
)

var (
	// ErrFinished indicates an operation on a state whose Finish already ran.
	ErrFinished = errors.New("visual: state already finished")

	// ErrNoValues indicates an empty initial array.
	ErrNoValues = errors.New("visual: no values to visualize")

	// ErrMissingCollaborator indicates a nil renderer or sink.
	ErrMissingCollaborator = errors.New("visual: renderer and sink are required")
)

// FrameError wraps a failure to render, encode or write one frame.
type FrameError struct {
	Number int
	Key    string
	Err    error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("frame %d (%s): %v", e.Number, e.Key, e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}
