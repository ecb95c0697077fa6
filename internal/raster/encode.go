package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/san-kum/sortviz/internal/frame"
)

// Encoder serializes a row-major RGB buffer.
type Encoder interface {
	Encode(w io.Writer, pix []byte, width, height int) error
	Extension() string
}

// PNGEncoder writes 8-bit RGB PNG images.
type PNGEncoder struct {
	Level png.CompressionLevel
}

func (e PNGEncoder) Encode(w io.Writer, pix []byte, width, height int) error {
	if len(pix) != width*height*BytesPerPixel {
		return fmt.Errorf("raster: buffer is %d bytes, want %d for %dx%d", len(pix), width*height*BytesPerPixel, width, height)
	}
	enc := png.Encoder{CompressionLevel: e.Level}
	return enc.Encode(w, &rgbImage{pix: pix, rect: image.Rect(0, 0, width, height)})
}

func (PNGEncoder) Extension() string { return "png" }

// rgbImage exposes a packed RGB buffer as an opaque image.Image.
type rgbImage struct {
	pix  []byte
	rect image.Rectangle
}

func (m *rgbImage) ColorModel() color.Model { return color.RGBAModel }
func (m *rgbImage) Bounds() image.Rectangle { return m.rect }
func (m *rgbImage) Opaque() bool            { return true }

func (m *rgbImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(m.rect)) {
		return color.RGBA{}
	}
	i := (y*m.rect.Dx() + x) * BytesPerPixel
	return color.RGBA{R: m.pix[i], G: m.pix[i+1], B: m.pix[i+2], A: 0xFF}
}

// Renderer renders and encodes snapshots with a fixed configuration.
type Renderer struct {
	cfg Config
	enc Encoder
}

// NewRenderer returns a Renderer producing PNG images.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{cfg: cfg, enc: PNGEncoder{Level: png.BestSpeed}}
}

// WithEncoder returns a copy of r that encodes with enc.
func (r *Renderer) WithEncoder(enc Encoder) *Renderer {
	return &Renderer{cfg: r.cfg, enc: enc}
}

func (r *Renderer) Config() Config { return r.cfg }

// Extension is the file extension of encoded frames.
func (r *Renderer) Extension() string { return r.enc.Extension() }

// Frame renders snap and returns the encoded image.
func (r *Renderer) Frame(snap frame.Snapshot) ([]byte, error) {
	if len(snap.Values) == 0 {
		return nil, ErrNoBars
	}
	pix := r.cfg.Render(snap)

	var buf bytes.Buffer
	if err := r.enc.Encode(&buf, pix, r.cfg.Width(len(snap.Values)), r.cfg.Height()); err != nil {
		return nil, fmt.Errorf("encode frame %d: %w", snap.Number, err)
	}
	return buf.Bytes(), nil
}
