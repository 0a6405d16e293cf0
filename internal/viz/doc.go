// Package viz hosts a field in the terminal.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one field with a stats panel
//   - [NewInteractiveApp]: preset picker that starts a [Model]
//   - [Canvas] and [Surface]: Braille pixel canvas the field renders onto
//   - Theme selection with 4 built-in color schemes
//
// The field is sized to the terminal: its height stays fixed and its width
// follows the number of columns left beside the panel. A left click drops a
// ripple under the cursor.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	R     - Reset points and parameters
//	T     - Cycle color themes
//	G     - Toggle GIF recording
//	Tab   - Select a parameter, Up/Down to tune it
//	?     - Show help overlay
//
// # Recording
//
// GIF frames are rasterized at half scale from the field itself, not from
// the Braille cells, and saved under the data directory.
package viz
