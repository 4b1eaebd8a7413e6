package terminal

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"sync"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/status"
)

// writeBufferSize holds a full-screen redraw without intermediate
// flushes on typical terminal sizes
const writeBufferSize = 128 * 1024

// countingWriter forwards writes and feeds the bytes-written counter
type countingWriter struct {
	w       io.Writer
	metrics *status.Registry
}

func (cw countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.metrics.AddBytes(int64(n))
	return n, err
}

// ANSIBackend drives the terminal with hand-built escape sequences over
// raw stdin/stdout. Command methods only buffer; Flush writes.
type ANSIBackend struct {
	tty       *tty
	writer    *bufio.Writer
	colorMode ColorMode
	mouse     MouseMode
	paste     bool
	input     *inputReader
	eventCh   chan Event
	metrics   *status.Registry

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewANSI creates the backend without touching the terminal; Start does
// that.
func NewANSI(opts Options) *ANSIBackend {
	t := newTTY()
	return &ANSIBackend{
		tty:       t,
		writer:    bufio.NewWriterSize(countingWriter{w: t.out, metrics: opts.Metrics}, writeBufferSize),
		colorMode: opts.ColorMode,
		mouse:     opts.Mouse,
		paste:     opts.BracketedPaste,
		eventCh:   make(chan Event, 256),
		metrics:   opts.Metrics,
	}
}

func (b *ANSIBackend) Start() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.started {
		return nil
	}

	if err := b.tty.makeRaw(); err != nil {
		return err
	}

	if b.colorMode == ColorModeAuto {
		b.colorMode = DetectColorMode()
	}

	b.writer.Write(csiAltScreenEnter)
	b.writer.Write(csiCursorHide)
	// Prevents terminal scroll/wrap on bottom-right corner write
	b.writer.Write(csiAutoWrapOff)

	if b.mouse != MouseModeNone {
		// SGR extension first so reports carry full coordinates
		b.writer.Write(csiMouseSGROn)
		if b.mouse&MouseModeClick != 0 {
			b.writer.Write(csiMouseClickOn)
		}
		if b.mouse&MouseModeDrag != 0 {
			b.writer.Write(csiMouseDragOn)
		}
		if b.mouse&MouseModeMotion != 0 {
			b.writer.Write(csiMouseMotionOn)
		}
	}
	if b.paste {
		b.writer.Write(csiPasteOn)
	}

	b.writer.Write(csiSGR0)
	b.writer.Write(csiClear)

	if err := b.writer.Flush(); err != nil {
		b.tty.restore()
		return fmt.Errorf("terminal init: %w", err)
	}

	b.tty.watchResize(func(w, h int) {
		b.postEvent(Event{Type: EventResize, Width: w, Height: h})
	})

	b.input = newInputReader(b.tty, b.eventCh, b.metrics)
	b.input.start()

	b.started = true
	return nil
}

func (b *ANSIBackend) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.started || b.stopped {
		return
	}

	// Disable mouse and paste reporting before other cleanup
	if b.mouse != MouseModeNone {
		b.writer.Write(csiMouseMotionOff)
		b.writer.Write(csiMouseDragOff)
		b.writer.Write(csiMouseClickOff)
		b.writer.Write(csiMouseSGROff)
	}
	if b.paste {
		b.writer.Write(csiPasteOff)
	}
	b.writer.Flush()

	b.input.stop()

	b.writer.Write(csiCursorShow)
	b.writer.Write(csiAltScreenExit)
	// Re-enable auto-wrap AFTER exiting alt screen to ensure the main
	// buffer has wrap enabled
	b.writer.Write(csiAutoWrapOn)
	b.writer.Write(csiSGR0)
	b.writer.Flush()

	b.tty.restore()
	b.stopped = true
}

func (b *ANSIBackend) Size() (int, int) {
	return b.tty.size()
}

func (b *ANSIBackend) Events() <-chan Event {
	return b.eventCh
}

// ColorMode reports the mode in effect after Start resolved auto-detection
func (b *ANSIBackend) ColorMode() ColorMode {
	return b.colorMode
}

func (b *ANSIBackend) MoveTo(x, y int) {
	writeCursorPos(b.writer, x, y)
}

func (b *ANSIBackend) SetForeground(c grid.Color) {
	switch c.Kind {
	case grid.ColorKindANSI:
		b.writer.Write(csi)
		if c.R < 8 {
			writeInt(b.writer, 30+int(c.R))
		} else {
			writeInt(b.writer, 90+int(c.R-8))
		}
		b.writer.WriteByte('m')
	case grid.ColorKindIndexed:
		b.writer.Write(csiFg256)
		writeInt(b.writer, int(c.R))
		b.writer.WriteByte('m')
	case grid.ColorKindRGB:
		if b.colorMode == ColorModeTrueColor {
			b.writer.Write(csiFgRGB)
			writeInt(b.writer, int(c.R))
			b.writer.WriteByte(';')
			writeInt(b.writer, int(c.G))
			b.writer.WriteByte(';')
			writeInt(b.writer, int(c.B))
			b.writer.WriteByte('m')
		} else {
			b.writer.Write(csiFg256)
			writeInt(b.writer, int(RGBTo256(c.R, c.G, c.B)))
			b.writer.WriteByte('m')
		}
	default:
		b.writer.Write(csiDefaultFg)
	}
}

func (b *ANSIBackend) SetBackground(c grid.Color) {
	switch c.Kind {
	case grid.ColorKindANSI:
		b.writer.Write(csi)
		if c.R < 8 {
			writeInt(b.writer, 40+int(c.R))
		} else {
			writeInt(b.writer, 100+int(c.R-8))
		}
		b.writer.WriteByte('m')
	case grid.ColorKindIndexed:
		b.writer.Write(csiBg256)
		writeInt(b.writer, int(c.R))
		b.writer.WriteByte('m')
	case grid.ColorKindRGB:
		if b.colorMode == ColorModeTrueColor {
			b.writer.Write(csiBgRGB)
			writeInt(b.writer, int(c.R))
			b.writer.WriteByte(';')
			writeInt(b.writer, int(c.G))
			b.writer.WriteByte(';')
			writeInt(b.writer, int(c.B))
			b.writer.WriteByte('m')
		} else {
			b.writer.Write(csiBg256)
			writeInt(b.writer, int(RGBTo256(c.R, c.G, c.B)))
			b.writer.WriteByte('m')
		}
	default:
		b.writer.Write(csiDefaultBg)
	}
}

func (b *ANSIBackend) EnableAttr(m grid.Modifier) {
	for m != 0 {
		bit := bits.TrailingZeros16(uint16(m))
		m &^= 1 << bit
		b.writer.Write(csi)
		writeInt(b.writer, bit+1)
		b.writer.WriteByte('m')
	}
}

func (b *ANSIBackend) DisableAttr(m grid.Modifier) {
	prev := -1
	for m != 0 {
		bit := bits.TrailingZeros16(uint16(m))
		m &^= 1 << bit
		code := int(sgrDisable[bit])
		if code == prev {
			continue
		}
		prev = code
		b.writer.Write(csi)
		writeInt(b.writer, code)
		b.writer.WriteByte('m')
	}
}

func (b *ANSIBackend) Print(grapheme string) {
	b.writer.WriteString(grapheme)
}

func (b *ANSIBackend) Reset() {
	b.writer.Write(csiSGR0)
}

func (b *ANSIBackend) Flush() error {
	if err := b.writer.Flush(); err != nil {
		return fmt.Errorf("terminal write: %w", err)
	}
	return nil
}

// postEvent delivers backend-originated events, non-blocking
func (b *ANSIBackend) postEvent(ev Event) {
	b.metrics.CountEvent()
	select {
	case b.eventCh <- ev:
	default:
		b.metrics.CountDroppedEvent()
	}
}
