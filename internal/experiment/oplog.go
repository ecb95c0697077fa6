package experiment

import (
	"slices"

	"github.com/san-kum/sortviz/internal/frame"
	"github.com/san-kum/sortviz/internal/storage"
)

// OperationLog records one storage.Operation per queued frame. Frames are
// queued on the driver goroutine, so the log needs no locking; read it only
// after the state is finished.
type OperationLog struct {
	ops []storage.Operation
}

func (l *OperationLog) FrameQueued(snap frame.Snapshot) {
	l.ops = append(l.ops, storage.Operation{
		Frame:     snap.Number,
		Op:        snap.Op.String(),
		X:         snap.X,
		Y:         snap.Y,
		Misplaced: snap.Misplaced(),
	})
}

func (l *OperationLog) FrameWritten(int, error) {}

func (l *OperationLog) Operations() []storage.Operation {
	return slices.Clone(l.ops)
}

// Counts returns the number of swap and compare frames.
func (l *OperationLog) Counts() (swaps, compares int) {
	for _, op := range l.ops {
		switch op.Op {
		case frame.OpSwap.String():
			swaps++
		case frame.OpCompare.String():
			compares++
		}
	}
	return swaps, compares
}
