// Raw event inspector: every key, mouse report, paste and resize the
// backend parses is appended to an on-screen log. Useful when a terminal
// emulator and the ANSI parser disagree about an escape sequence.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/terminal"
)

const maxLog = 128

var (
	backendFlag = flag.String("backend", "ansi", "Terminal backend: ansi or tcell")
	motionFlag  = flag.Bool("motion", false, "Report all mouse motion, not just clicks and drags")
	pasteFlag   = flag.Bool("paste", true, "Enable bracketed paste")
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mINPUT-PROBE CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	mouse := terminal.MouseModeClick | terminal.MouseModeDrag
	if *motionFlag {
		mouse |= terminal.MouseModeMotion
	}

	backend, err := terminal.New(*backendFlag, terminal.Options{
		Mouse:          mouse,
		BracketedPaste: *pasteFlag,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "input-probe: %v\n", err)
		os.Exit(1)
	}
	if err := backend.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "input-probe: %v\n", err)
		os.Exit(1)
	}
	defer backend.Stop()

	width, height := backend.Size()
	screen := grid.New(width, height)
	renderer := terminal.NewRenderer(backend, nil)

	entries := make([]string, 0, maxLog)
	addLog := func(s string) {
		if len(entries) >= maxLog {
			copy(entries, entries[1:])
			entries = entries[:maxLog-1]
		}
		entries = append(entries, s)
	}

	titleStyle := grid.Style{Fg: grid.RGB(200, 200, 200), Add: grid.ModBold}
	ruleStyle := grid.Style{Fg: grid.RGB(60, 60, 80)}
	statusStyle := grid.Style{Fg: grid.RGB(140, 140, 160)}

	repaint := func() error {
		w, h := screen.Size()
		screen.Reset()
		screen.SetString(0, 0, "termwin input probe - Ctrl+C or Ctrl+Q quits", titleStyle)
		if h < 5 {
			return renderer.Draw(screen.Draw())
		}
		screen.SetString(0, 1, strings.Repeat("─", w), ruleStyle)

		// Newest entries in the rows between the rules
		visible := h - 4
		start := len(entries) - visible
		if start < 0 {
			start = 0
		}
		for row := 0; row < visible && start+row < len(entries); row++ {
			screen.SetString(1, 2+row, entries[start+row], grid.StyleReset())
		}

		screen.SetString(0, h-2, strings.Repeat("─", w), ruleStyle)
		screen.SetString(1, h-1, fmt.Sprintf("size %dx%d | backend %s | %d events", w, h, *backendFlag, len(entries)), statusStyle)
		return renderer.Draw(screen.Draw())
	}

	if err := repaint(); err != nil {
		backend.Stop()
		fmt.Fprintf(os.Stderr, "input-probe: %v\n", err)
		os.Exit(1)
	}

	for ev := range backend.Events() {
		switch ev.Type {
		case terminal.EventKey:
			if ev.Key == terminal.KeyCtrlC || ev.Key == terminal.KeyCtrlQ {
				return
			}
		case terminal.EventClosed:
			return
		case terminal.EventResize:
			screen.Resize(ev.Width, ev.Height)
		}

		addLog(ev.String())
		if err := repaint(); err != nil {
			backend.Stop()
			fmt.Fprintf(os.Stderr, "input-probe: %v\n", err)
			os.Exit(1)
		}
	}
}
