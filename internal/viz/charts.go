package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/sortviz/internal/storage"
)

const (
	chartHeight = 10
	chartWidth  = 60
)

// ValuesChart plots an array by index.
func ValuesChart(values []uint32, caption string) string {
	if len(values) == 0 {
		return ""
	}
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.Caption(caption),
	)
}

// MisplacedChart plots the number of out-of-place values per frame.
func MisplacedChart(ops []storage.Operation) string {
	if len(ops) == 0 {
		return ""
	}
	return asciigraph.Plot(misplacedSeries(ops),
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.Caption("misplaced values per frame"),
	)
}

// CompareChart overlays the misplaced-per-frame series of several runs,
// keyed by algorithm name, and lists them in a legend below the plot.
func CompareChart(runs map[string][]storage.Operation) string {
	names := make([]string, 0, len(runs))
	for name, ops := range runs {
		if len(ops) > 0 {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)

	series := make([][]float64, len(names))
	legend := make([]string, len(names))
	for i, name := range names {
		series[i] = misplacedSeries(runs[name])
		legend[i] = fmt.Sprintf("%s (%d frames)", name, len(runs[name]))
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(chartHeight),
		asciigraph.Width(chartWidth),
		asciigraph.Precision(0),
		asciigraph.Caption("misplaced values per frame"),
	)
	return graph + "\n" + Subtle.Render(strings.Join(legend, "  "))
}

func misplacedSeries(ops []storage.Operation) []float64 {
	data := make([]float64, len(ops))
	for i, op := range ops {
		data[i] = float64(op.Misplaced)
	}
	return data
}
