// Package terminal sits between the grid model and a physical terminal:
// an abstract command sink (Backend), a hand-rolled ANSI implementation,
// a tcell-based implementation, the attribute-diff directive builder, and
// the renderer that drives a backend from a grid diff.
//
// Features:
//   - True color (24-bit) and 256-color palette support with downsampling
//   - Raw stdin input parsing with escape sequence handling
//   - SGR mouse reports and bracketed paste
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// The ANSI backend bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals. The tcell backend trades directness for tcell's terminal
// database.
package terminal
