package viz

import (
	"fmt"
	"strings"
	"time"

	"github.com/san-kum/sortviz/internal/experiment"
)

// Summary renders a panel describing a finished run.
func Summary(runID, dir string, r *experiment.Result) string {
	rows := []string{
		Title.Render("sortviz " + r.Algorithm),
		"",
		Row("run", runID),
		Row("frames", fmt.Sprintf("%d (%d swaps, %d compares)", r.Frames, r.Swaps, r.Compares)),
		Row("size", fmt.Sprintf("%dx%d px", r.Width, r.Height)),
		Row("elapsed", r.Elapsed.Round(time.Millisecond).String()),
		Row("output", dir),
		Row("status", StatusOK.Render("sorted")),
	}
	return Panel.Render(strings.Join(rows, "\n"))
}
