// Package viz provides the terminal front end for the conservation plot.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: slider panel plus a braille plot of the three curves
//   - [Canvas]: Braille-based pixel canvas with per-cell ink
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Tab   - Switch focus between sliders and plot
//	j/k   - Select slider (sliders) or pan (plot)
//	h/l   - Adjust slider (sliders) or pan (plot)
//	H/L   - Adjust slider by ten steps
//	+/-   - Zoom about the cursor or the centre
//	wasd  - Move the cursor
//	p     - Cycle presets
//	t     - Cycle color themes
//	?     - Show help overlay
package viz
