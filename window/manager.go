package window

import (
	"fmt"
	"time"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/log"
	"github.com/lixenwraith/termwin/status"
	"github.com/lixenwraith/termwin/terminal"
)

// DefaultFrameBudget is the redraw period when no events arrive
const DefaultFrameBudget = 50 * time.Millisecond

// Options configures a Manager
type Options struct {
	// FrameBudget is the tick period; zero selects DefaultFrameBudget
	FrameBudget time.Duration
	// Metrics receives frame counters; nil disables collection
	Metrics *status.Registry
	// Logger receives lifecycle lines; nil discards them
	Logger *log.Logger
}

// Manager owns the double buffer and the window list and drives the
// fixed-rate event/redraw loop. Index 0 of the list is the focused
// window; it is drawn first, so it sits visually under later windows.
type Manager struct {
	backend  terminal.Backend
	renderer *terminal.Renderer
	metrics  *status.Registry
	logger   *log.Logger

	buffers [2]*grid.Grid
	current int

	windows []*Window
	budget  time.Duration
	exiting bool
}

// NewManager sizes the double buffer from the backend, which must already
// be started
func NewManager(b terminal.Backend, opts Options) *Manager {
	width, height := b.Size()
	budget := opts.FrameBudget
	if budget <= 0 {
		budget = DefaultFrameBudget
	}
	return &Manager{
		backend:  b,
		renderer: terminal.NewRenderer(b, opts.Metrics),
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		buffers:  [2]*grid.Grid{grid.New(width, height), grid.New(width, height)},
		budget:   budget,
	}
}

// Add appends a window to the end of the list. The first window added
// receives focus
func (m *Manager) Add(w *Window) {
	m.windows = append(m.windows, w)
	m.refreshFocus()
}

// Exit flags the loop to stop after the current iteration's redraw
func (m *Manager) Exit() {
	m.exiting = true
}

// SetCursor moves where the renderer parks the hardware cursor after
// each frame
func (m *Manager) SetCursor(x, y int) {
	m.renderer.SetCursor(x, y)
}

func (m *Manager) refreshFocus() {
	for i, w := range m.windows {
		w.setFocused(i == 0)
	}
}

// Run drives the loop: wait for an event until the next frame deadline,
// route it, recomposite and render; on deadline, tick every window
// instead. Returns when the exit flag is set, the event channel closes,
// or rendering fails.
func (m *Manager) Run() error {
	m.logger.Infof("manager: loop started, budget %s", m.budget)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	nextFrame := time.Now().Add(m.budget)
	for !m.exiting {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(time.Until(nextFrame))

		select {
		case ev, ok := <-m.backend.Events():
			if !ok {
				m.logger.Infof("manager: event channel closed")
				return nil
			}
			switch ev.Type {
			case terminal.EventKey:
				if !m.handleKey(ev) && len(m.windows) > 0 {
					m.windows[0].HandleEvent(ev)
				}
			case terminal.EventResize:
				m.logger.Debugf("manager: resize to %dx%d", ev.Width, ev.Height)
				m.resize(ev.Width, ev.Height)
			case terminal.EventMouse, terminal.EventPaste:
				if len(m.windows) > 0 {
					m.windows[0].HandleEvent(ev)
				}
			case terminal.EventError:
				m.logger.Errorf("manager: backend error: %v", ev.Err)
				return fmt.Errorf("window: backend: %w", ev.Err)
			case terminal.EventClosed:
				m.logger.Infof("manager: input closed")
				return nil
			default:
				// Nothing changed, skip the redraw
				continue
			}

		case <-timer.C:
			for _, w := range m.windows {
				w.Update()
			}
			nextFrame = time.Now().Add(m.budget)
		}

		m.composite()
		if err := m.render(); err != nil {
			m.logger.Errorf("manager: %v", err)
			return err
		}
	}

	snap := m.metrics.Snapshot()
	m.logger.Infof("manager: exit after %d frames, %d events (%d dropped)",
		snap.FramesRendered, snap.EventsSeen, snap.EventsDropped)
	return nil
}

// handleKey consumes manager chords: Ctrl+C exits, Ctrl+arrows move the
// focused window, Ctrl+Shift+arrows resize it, Ctrl+PageDown sends the
// focused window to the back of the list, Ctrl+PageUp brings the last
// window to the front. Everything else passes through
func (m *Manager) handleKey(ev terminal.Event) bool {
	if ev.Key == terminal.KeyCtrlC {
		m.exiting = true
		return true
	}
	if ev.Modifiers&terminal.ModCtrl == 0 || len(m.windows) == 0 {
		return false
	}

	focused := m.windows[0]
	width, height := m.buffers[0].Size()

	if ev.Modifiers&terminal.ModShift != 0 {
		switch ev.Key {
		case terminal.KeyLeft:
			focused.ResizeBy(-1, 0)
		case terminal.KeyUp:
			focused.ResizeBy(0, -1)
		case terminal.KeyRight:
			focused.ResizeBy(1, 0)
		case terminal.KeyDown:
			focused.ResizeBy(0, 1)
		default:
			return false
		}
		if focused.ClampTo(width, height) {
			focused.Redraw()
		}
		return true
	}

	switch ev.Key {
	case terminal.KeyLeft:
		focused.MoveBy(-1, 0)
	case terminal.KeyUp:
		focused.MoveBy(0, -1)
	case terminal.KeyRight:
		focused.MoveBy(1, 0)
	case terminal.KeyDown:
		focused.MoveBy(0, 1)
	case terminal.KeyPageDown:
		m.windows = append(m.windows[1:], m.windows[0])
		m.refreshFocus()
		return true
	case terminal.KeyPageUp:
		last := len(m.windows) - 1
		m.windows = append([]*Window{m.windows[last]}, m.windows[:last]...)
		m.refreshFocus()
		return true
	default:
		return false
	}

	// A move can push the window past the right or bottom edge
	if focused.ClampTo(width, height) {
		focused.Redraw()
	}
	return true
}

// resize adapts the double buffer to the terminal and forces every window
// back inside the new bounds with a fresh repaint. Both buffers come out
// blank, so the next diff repaints the whole screen
func (m *Manager) resize(width, height int) {
	m.buffers[0].Resize(width, height)
	m.buffers[1].Resize(width, height)
	for _, w := range m.windows {
		w.ClampTo(width, height)
		w.Redraw()
	}
}

// composite paints every window into the current buffer in list order;
// later windows overdraw earlier ones. A window that cannot fit the
// surface even at the 3x3 floor is skipped for the frame
func (m *Manager) composite() {
	cur := m.buffers[m.current]
	width, height := cur.Size()
	for _, w := range m.windows {
		if !w.fitsIn(width, height) {
			continue
		}
		w.Draw(cur)
	}
}

// render sends the changed cells to the backend, then blanks the buffer
// just diffed against and swaps roles
func (m *Manager) render() error {
	start := time.Now()
	cur := m.buffers[m.current]
	prev := m.buffers[1-m.current]
	if err := m.renderer.Draw(cur.Diff(prev)); err != nil {
		return fmt.Errorf("window: render: %w", err)
	}
	prev.Reset()
	m.current = 1 - m.current
	m.metrics.CountFrame(time.Since(start))
	return nil
}
