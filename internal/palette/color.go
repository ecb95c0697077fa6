package palette

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidColor is returned when a color string is neither hex nor a known name.
var ErrInvalidColor = errors.New("palette: invalid color")

// Color is a packed 0xRRGGBB value.
type Color uint32

const (
	Black Color = 0x000000
	White Color = 0xFFFFFF
)

// FromRGB packs three channels into a Color.
func FromRGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB splits the color into its red, green and blue channels.
func (c Color) RGB() [3]uint8 {
	return [3]uint8{uint8(c >> 16), uint8(c >> 8), uint8(c)}
}

// Lerp blends c toward other by f, rounding each channel.
// f is not clamped: values outside [0, 1] extrapolate and a channel that
// leaves [0, 255] wraps.
func (c Color) Lerp(other Color, f float64) Color {
	a, b := c.RGB(), other.RGB()
	var out [3]uint8
	for i := range out {
		v := float64(a[i])*(1-f) + float64(b[i])*f
		out[i] = uint8(int(math.Round(v)))
	}
	return FromRGB(out[0], out[1], out[2])
}

func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xFFFFFF)
}

// ParseColor accepts "#rrggbb", "#rgb", the same without '#', or a CSS color name.
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return FromRGB(named.R, named.G, named.B), nil
	}
	hex := s
	if hex[0] != '#' {
		hex = "#" + hex
	}
	cf, err := colorful.Hex(hex)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	r, g, b := cf.RGB255()
	return FromRGB(r, g, b), nil
}

// MustParseColor is ParseColor for package-level literals.
func MustParseColor(s string) Color {
	c, err := ParseColor(s)
	if err != nil {
		panic("MustParseColor: " + err.Error())
	}
	return c
}

func (c Color) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
