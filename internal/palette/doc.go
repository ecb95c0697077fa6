// Package palette provides packed RGB colors and piecewise-linear gradients
// used to fill the bars of a rendered frame.
//
//   - [Color]: 24-bit 0xRRGGBB value with exact channel decomposition
//   - [Gradient]: ordered color stops sampled over [0, 1)
//
// Colors parse from hex strings or CSS color names and round-trip through
// YAML as "#rrggbb".
//
//	g := palette.Gradient{0x0000FF, 0x70AF00, 0xFF0000}
//	c := g.Sample(0.5).Lerp(palette.White, 0.2)
package palette
