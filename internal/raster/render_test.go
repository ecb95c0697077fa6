package raster

import (
	"bytes"
	"errors"
	"image/png"
	"sync/atomic"
	"testing"

	"github.com/san-kum/sortviz/internal/frame"
	"github.com/san-kum/sortviz/internal/palette"
)

func smallConfig() Config {
	return Config{
		BarWidth:    2,
		ChartHeight: 4,
		Margin:      1,
		MarginTop:   1,
		Spacing:     1,
		Background:  0x000000,
		Gradient:    palette.Gradient{0x0000FF, 0xFF0000},
	}
}

func pixel(buf []byte, width, x, y int) palette.Color {
	i := (y*width + x) * BytesPerPixel
	return palette.FromRGB(buf[i], buf[i+1], buf[i+2])
}

func TestConfig_Geometry(t *testing.T) {
	cfg := Config{BarWidth: 8, ChartHeight: 512, Margin: 24, MarginTop: 32, Spacing: 2}

	if got := cfg.Width(19); got != 236 {
		t.Errorf("Width(19) = %d, want 236", got)
	}
	if got := cfg.Height(); got != 576 {
		t.Errorf("Height() = %d, want 576", got)
	}
	if got := cfg.Width(1); got != 56 {
		t.Errorf("Width(1) = %d, want 56", got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"ok", func(*Config) {}, nil},
		{"zero bar width", func(c *Config) { c.BarWidth = 0 }, ErrGeometry},
		{"zero height", func(c *Config) { c.ChartHeight = 0 }, ErrGeometry},
		{"negative margin", func(c *Config) { c.Margin = -1 }, ErrGeometry},
		{"negative spacing", func(c *Config) { c.Spacing = -2 }, ErrGeometry},
		{"no stops", func(c *Config) { c.Gradient = nil }, ErrNoStops},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := smallConfig()
			tt.mod(&cfg)
			err := cfg.Validate()
			if tt.want == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Fatalf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfig_Render(t *testing.T) {
	cfg := smallConfig()
	snap := frame.Snapshot{Values: []uint32{1, 2}}
	buf := cfg.Render(snap)

	width := cfg.Width(2)
	if width != 7 {
		t.Fatalf("width = %d, want 7", width)
	}
	if len(buf) != width*cfg.Height()*BytesPerPixel {
		t.Fatalf("buffer length = %d", len(buf))
	}

	const (
		bg   = palette.Color(0x000000)
		low  = palette.Color(0x800080)
		high = palette.Color(0xFF0000)
	)

	tests := []struct {
		name string
		x, y int
		want palette.Color
	}{
		{"top margin", 4, 0, bg},
		{"bottom margin", 4, 5, bg},
		{"left margin", 0, 3, bg},
		{"right margin", 6, 3, bg},
		{"spacing", 3, 3, bg},
		{"tall bar top row", 4, 1, high},
		{"tall bar second column", 5, 1, high},
		{"short bar above its top", 1, 2, bg},
		{"short bar at its top", 1, 3, low},
		{"short bar bottom row", 2, 4, low},
	}

	for _, tt := range tests {
		if got := pixel(buf, width, tt.x, tt.y); got != tt.want {
			t.Errorf("%s: pixel(%d,%d) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
}

func TestConfig_RenderHighlight(t *testing.T) {
	cfg := smallConfig()
	snap := frame.Snapshot{
		Values:     []uint32{1, 2},
		Highlights: frame.Highlights{1: 1.0},
	}
	buf := cfg.Render(snap)
	width := cfg.Width(2)

	if got := pixel(buf, width, 4, 4); got != palette.White {
		t.Errorf("fully highlighted bar = %v, want white", got)
	}
	if got := pixel(buf, width, 1, 4); got != 0x800080 {
		t.Errorf("unhighlighted bar = %v, want #800080", got)
	}
}

func TestConfig_RenderParallelMatchesSerial(t *testing.T) {
	cfg := Config{
		BarWidth:    3,
		ChartHeight: 300,
		Margin:      5,
		MarginTop:   10,
		Spacing:     1,
		Background:  0x1F1F1F,
		Gradient:    palette.Gradient{0x0000FF, 0x70AF00, 0xFF0000},
	}
	snap := frame.Snapshot{
		Values:     []uint32{5, 3, 9, 1, 7, 2, 8, 4, 6},
		Highlights: frame.Highlights{2: 0.3, 8: 0.5},
	}

	got := cfg.Render(snap)

	width := cfg.Width(len(snap.Values))
	stride := width * BytesPerPixel
	want := make([]byte, len(got))

	maxV := float64(snap.Max())
	fracs := make([]float64, len(snap.Values))
	fills := make([][3]uint8, len(snap.Values))
	for i, v := range snap.Values {
		fracs[i] = float64(v) / maxV
		fills[i] = cfg.Gradient.Sample(fracs[i]).Lerp(palette.White, snap.Highlights.Get(i)).RGB()
	}
	for y := 0; y < cfg.Height(); y++ {
		cfg.renderRow(want[y*stride:(y+1)*stride], y, fracs, fills, cfg.Background.RGB())
	}

	if !bytes.Equal(got, want) {
		t.Error("parallel render differs from serial render")
	}
}

func TestRenderer_FrameDecodes(t *testing.T) {
	cfg := smallConfig()
	r := NewRenderer(cfg)

	data, err := r.Frame(frame.Snapshot{Number: 3, Values: []uint32{1, 2}})
	if err != nil {
		t.Fatalf("Frame: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 7 || b.Dy() != 6 {
		t.Fatalf("bounds = %v, want 7x6", b)
	}

	rr, gg, bb, aa := img.At(4, 1).RGBA()
	if rr>>8 != 0xFF || gg>>8 != 0 || bb>>8 != 0 || aa>>8 != 0xFF {
		t.Errorf("decoded pixel = %x %x %x %x", rr>>8, gg>>8, bb>>8, aa>>8)
	}

	if r.Extension() != "png" {
		t.Errorf("Extension() = %q", r.Extension())
	}
}

func TestRenderer_FrameNoBars(t *testing.T) {
	r := NewRenderer(smallConfig())
	if _, err := r.Frame(frame.Snapshot{}); !errors.Is(err, ErrNoBars) {
		t.Errorf("Frame(empty) = %v, want ErrNoBars", err)
	}
}

func TestPNGEncoder_BufferMismatch(t *testing.T) {
	var buf bytes.Buffer
	if err := (PNGEncoder{}).Encode(&buf, make([]byte, 5), 2, 2); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 63, 64, 65, 1000, 4097} {
		seen := make([]int32, n)
		ParallelFor(n, 16, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
			}
		})
		for i, c := range seen {
			if c != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}
