// Package raster turns a frame snapshot into an RGB pixel buffer and encodes
// it as a PNG image.
//
// The canvas is a bar chart: one bar per array element, height proportional
// to value/max, fill taken from a [palette.Gradient] and blended toward white
// by the element's highlight intensity.
//
//	+-------------------------------+  MarginTop
//	|        #                      |
//	|     #  #     #                |  ChartHeight
//	|  #  #  #  #  #                |
//	+-------------------------------+  MarginTop
//	 Margin  BarWidth+Spacing   Margin
//
// # Thread Safety
//
// [Config.Render] reads only its arguments and is safe to call from many
// goroutines at once. Rows are rendered in parallel inside a single call;
// each worker writes a disjoint slice of the output buffer.
package raster
