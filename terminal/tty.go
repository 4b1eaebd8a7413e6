package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// pollTimeoutMs bounds a single input poll so readers can check their
// stop channel
const pollTimeoutMs = 100

// tty owns raw-mode state and low-level I/O for the controlling terminal
type tty struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

func newTTY() *tty {
	return &tty{
		in:    os.Stdin,
		out:   os.Stdout,
		inFd:  int(os.Stdin.Fd()),
		outFd: int(os.Stdout.Fd()),
	}
}

func (t *tty) makeRaw() error {
	if !term.IsTerminal(t.inFd) || !term.IsTerminal(t.outFd) {
		return ErrNotTerminal
	}

	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return fmt.Errorf("terminal raw mode: %w", err)
	}
	t.oldTerm = old
	return nil
}

// restore undoes makeRaw and stops the resize watcher. Safe to call
// repeatedly.
func (t *tty) restore() {
	if t.resizeStopCh != nil {
		close(t.resizeStopCh)
		<-t.resizeDoneCh
		t.resizeStopCh = nil
		t.resizeDoneCh = nil
	}
	if t.oldTerm != nil {
		term.Restore(t.inFd, t.oldTerm)
		t.oldTerm = nil
	}
}

func (t *tty) size() (int, int) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24 // Fallback
	}
	return int(ws.Col), int(ws.Row)
}

func (t *tty) write(p []byte) (int, error) {
	return t.out.Write(p)
}

// read waits up to timeoutMs for input and returns whatever arrived in
// one read. nil data with nil error means nothing arrived (timeout,
// stop, or interrupted syscall); io.EOF means the fd is closed.
func (t *tty) read(stopCh <-chan struct{}, timeoutMs int) ([]byte, error) {
	select {
	case <-stopCh:
		return nil, nil
	default:
	}

	fds := []unix.PollFd{
		{Fd: int32(t.inFd), Events: unix.POLLIN},
	}
	n, err := unix.Poll(fds, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return nil, nil
		}
		return nil, fmt.Errorf("terminal poll: %w", err)
	}
	if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
		return nil, nil
	}

	buf := make([]byte, 256)
	rn, err := unix.Read(t.inFd, buf)
	if err != nil {
		if err == unix.EINTR || err == unix.EAGAIN {
			return nil, nil
		}
		return nil, fmt.Errorf("terminal read: %w", err)
	}
	if rn == 0 {
		return nil, io.EOF
	}
	return buf[:rn], nil
}

// watchResize delivers terminal dimensions to handler after each
// SIGWINCH. The handler runs on the watcher goroutine.
func (t *tty) watchResize(handler func(width, height int)) {
	t.resizeStopCh = make(chan struct{})
	t.resizeDoneCh = make(chan struct{})

	stopCh := t.resizeStopCh
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	go func() {
		defer close(t.resizeDoneCh)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				w, h := t.size()
				if w > 0 && h > 0 {
					handler(w, h)
				}
			}
		}
	}()
}

// resetCookedMode restores cooked mode via /dev/tty, which works even
// when stdin was redirected. Best-effort for crash recovery; errors
// ignored.
func resetCookedMode() {
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer f.Close()

	fd := int(f.Fd())
	if termios, err := unix.IoctlGetTermios(fd, ioctlReadTermios); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlWriteTermios, termios)
	}
}
