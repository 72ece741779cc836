// Package viz draws a running Gray-Scott field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [App]: preset picker and setup screen that lead into the live view
//   - [Model]: live view that steps a simulator on a 60 Hz frame clock
//   - [Shader], [RenderRamp], [RenderContour]: the three field renderings
//   - [Canvas]: Braille-based pixel canvas used by the contour view
//   - Theme selection with 4 built-in concentration maps
//
// # Key Bindings
//
//	S       - Start
//	Space   - Start/Stop
//	R       - Reseed the field
//	Tab     - Cycle parameters, Up/Down adjust by 5%
//	1/2/3   - Set dt to 0.5, 1 or 2
//	G       - Toggle GIF recording
//	M       - Cycle view mode
//	?       - Show help overlay
//
// # Recording
//
// G starts capturing every fifth committed step; pressing it again writes
// the animation to the configured GIF path.
package viz
