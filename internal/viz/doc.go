// Package viz provides the terminal molecule viewer.
//
// The viewer draws the scene actors onto a colour braille canvas using
// the Bubble Tea framework:
//
//   - [Model]: the viewer, with the sliders in its side panel
//   - [Canvas]: braille canvas with per-dot depth and per-cell colour
//   - [Camera]: orbit camera projecting the scene to the canvas
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Tab     - Select next slider
//	←/→     - Move the selected slider
//	↑/↓ A/D - Rotate
//	+/-     - Zoom
//	Space   - Toggle spin
//	W       - Toggle points/wireframe
//	S       - Save an SVG snapshot
//	?       - Show help overlay
//
// Slider keys go through the same widget observers as the window host,
// so the pipeline sees identical interaction events.
package viz
