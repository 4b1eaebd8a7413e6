// Package window provides bordered, movable, resizable windows composited
// onto a shared double-buffered surface, and the Manager loop that drives
// them at a fixed frame budget.
//
// A Window frames an interior grid owned by a Content implementation.
// Content never touches the terminal: it repaints its interior and
// declares scrollbar state; the window composites interior plus chrome
// into a parent grid; the Manager diffs the composite against the
// previously shown frame and only the changed cells reach the backend.
//
// Usage pattern:
//
//	backend, _ := terminal.New("ansi", terminal.Options{})
//	if err := backend.Start(); err != nil { ... }
//	defer backend.Stop()
//
//	m := window.NewManager(backend, window.Options{})
//	m.Add(window.New("log", grid.NewRect(2, 1, 40, 12), content))
//	err := m.Run()
//
// Manager chords: Ctrl+arrows move the focused window, Ctrl+Shift+arrows
// resize it, Ctrl+PageDown/PageUp rotate focus, Ctrl+C exits. Everything
// else is forwarded to the focused window's content.
package window
