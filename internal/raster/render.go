package raster

import (
	"errors"
	"fmt"

	"github.com/san-kum/sortviz/internal/frame"
	"github.com/san-kum/sortviz/internal/palette"
)

// BytesPerPixel is the stride of one RGB pixel in a rendered buffer.
const BytesPerPixel = 3

// minRowsPerWorker keeps small canvases on a single goroutine.
const minRowsPerWorker = 64

var (
	// ErrGeometry indicates a non-positive bar size or a negative margin.
	ErrGeometry = errors.New("raster: invalid geometry")

	// ErrNoStops indicates an empty gradient.
	ErrNoStops = errors.New("raster: gradient has no stops")

	// ErrNoBars indicates a snapshot with no values to draw.
	ErrNoBars = errors.New("raster: snapshot has no bars")
)

// Config is the immutable geometry and coloring of every frame in a run.
type Config struct {
	BarWidth    int
	ChartHeight int
	Margin      int
	MarginTop   int
	Spacing     int
	Background  palette.Color
	Gradient    palette.Gradient
}

func (c Config) Validate() error {
	if c.BarWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: bar width %d, chart height %d", ErrGeometry, c.BarWidth, c.ChartHeight)
	}
	if c.Margin < 0 || c.MarginTop < 0 || c.Spacing < 0 {
		return fmt.Errorf("%w: margin %d, top margin %d, spacing %d", ErrGeometry, c.Margin, c.MarginTop, c.Spacing)
	}
	if len(c.Gradient) == 0 {
		return ErrNoStops
	}
	return nil
}

// Width is the canvas width in pixels for barCount bars.
func (c Config) Width(barCount int) int {
	return 2*c.Margin + c.Spacing*(barCount-1) + c.BarWidth*barCount
}

// Height is the canvas height in pixels.
func (c Config) Height() int {
	return c.ChartHeight + 2*c.MarginTop
}

// Render rasterizes snap into a row-major RGB buffer of
// Width(len(snap.Values)) x Height() pixels.
//
// An all-zero snapshot has no defined bar heights and renders as background.
func (c Config) Render(snap frame.Snapshot) []byte {
	n := len(snap.Values)
	width := c.Width(n)
	height := c.Height()
	stride := width * BytesPerPixel
	buf := make([]byte, stride*height)

	maxV := float64(snap.Max())
	fracs := make([]float64, n)
	fills := make([][3]uint8, n)
	for i, v := range snap.Values {
		f := float64(v) / maxV
		fracs[i] = f
		fills[i] = c.Gradient.Sample(f).Lerp(palette.White, snap.Highlights.Get(i)).RGB()
	}

	bg := c.Background.RGB()
	ParallelFor(height, minRowsPerWorker, func(start, end int) {
		for y := start; y < end; y++ {
			c.renderRow(buf[y*stride:(y+1)*stride], y, fracs, fills, bg)
		}
	})

	return buf
}

func (c Config) renderRow(row []byte, y int, fracs []float64, fills [][3]uint8, bg [3]uint8) {
	if y < c.MarginTop || y >= c.MarginTop+c.ChartHeight {
		fill(row, 0, bg, len(row)/BytesPerPixel)
		return
	}

	threshold := 1 - float64(y-c.MarginTop)/float64(c.ChartHeight)

	off := fill(row, 0, bg, c.Margin)
	for i, f := range fracs {
		if i != 0 {
			off = fill(row, off, bg, c.Spacing)
		}
		if f >= threshold {
			off = fill(row, off, fills[i], c.BarWidth)
		} else {
			off = fill(row, off, bg, c.BarWidth)
		}
	}
	fill(row, off, bg, c.Margin)
}

// fill writes count copies of px starting at byte offset off and returns the
// offset just past them.
func fill(row []byte, off int, px [3]uint8, count int) int {
	for range count {
		row[off] = px[0]
		row[off+1] = px[1]
		row[off+2] = px[2]
		off += BytesPerPixel
	}
	return off
}
