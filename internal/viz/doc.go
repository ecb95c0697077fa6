// Package viz renders sortviz runs in the terminal.
//
//   - [RunWithProgress]: Bubble Tea view of frames queued and written while
//     a run is in flight
//   - [ValuesChart], [MisplacedChart], [CompareChart]: asciigraph plots of
//     arrays and operation logs
//   - [Summary], [GradientStrip]: lipgloss panels for run results and palettes
package viz
