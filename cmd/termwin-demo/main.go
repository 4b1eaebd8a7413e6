// Demo binary composing several windows over one manager: a frame counter,
// a scrollable text viewer, an event log and a live metrics view. Layout,
// colors and backend come from the YAML config, overridable by flags.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"
	"strings"

	"github.com/lixenwraith/termwin/config"
	"github.com/lixenwraith/termwin/content"
	"github.com/lixenwraith/termwin/grid"
	"github.com/lixenwraith/termwin/log"
	"github.com/lixenwraith/termwin/status"
	"github.com/lixenwraith/termwin/terminal"
	"github.com/lixenwraith/termwin/window"
)

var (
	configFlag   = flag.String("config", "termwin.yaml", "Path to the YAML config file")
	backendFlag  = flag.String("backend", "", "Terminal backend: ansi or tcell (overrides config)")
	colorFlag    = flag.String("color", "", "Color mode: auto, truecolor, 256 (overrides config)")
	budgetFlag   = flag.Int("budget", 0, "Frame budget in milliseconds (overrides config)")
	logFileFlag  = flag.String("log", "", "Log file path (overrides config)")
	logLevelFlag = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	textFlag     = flag.String("text", "", "File to show in the viewer window")
)

func main() {
	// Restore the terminal even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			terminal.EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\n\x1b[31mTERMWIN-DEMO CRASHED: %v\x1b[0m\r\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
		os.Exit(1)
	}
	if *backendFlag != "" {
		cfg.Backend = *backendFlag
	}
	if *colorFlag != "" {
		cfg.ColorMode = *colorFlag
	}
	if *budgetFlag != 0 {
		cfg.FrameBudgetMS = *budgetFlag
	}
	if *logFileFlag != "" {
		cfg.LogFile = *logFileFlag
	}
	if *logLevelFlag != "" {
		cfg.LogLevel = *logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
		os.Exit(1)
	}

	var logger *log.Logger
	if cfg.LogFile != "" {
		level, _ := log.ParseLevel(cfg.LogLevel)
		logger, err = log.New(cfg.LogFile, level)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
			os.Exit(1)
		}
		defer logger.Close()
	}

	theme, err := themeFromConfig(cfg.Theme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
		os.Exit(1)
	}

	text := sampleText()
	if *textFlag != "" {
		data, err := os.ReadFile(*textFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
			os.Exit(1)
		}
		text = string(data)
	}

	var colorMode terminal.ColorMode
	switch cfg.ColorMode {
	case "256":
		colorMode = terminal.ColorMode256
	case "truecolor":
		colorMode = terminal.ColorModeTrueColor
	default:
		colorMode = terminal.ColorModeAuto
	}

	reg := status.NewRegistry()
	opts := terminal.Options{
		ColorMode:      colorMode,
		BracketedPaste: cfg.Paste,
		Metrics:        reg,
	}
	if cfg.Mouse {
		opts.Mouse = terminal.MouseModeClick | terminal.MouseModeDrag
	}

	backend, err := terminal.New(cfg.Backend, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
		os.Exit(1)
	}
	if err := backend.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
		os.Exit(1)
	}
	defer backend.Stop()

	logger.Infof("demo: backend=%s color=%s budget=%v", cfg.Backend, cfg.ColorMode, cfg.FrameBudget())

	windows := []*window.Window{
		window.New("counter", grid.NewRect(2, 1, 24, 5), content.NewCounter()),
		window.New("events", grid.NewRect(2, 7, 24, 15), content.NewEventLog(0)),
		window.New("viewer", grid.NewRect(28, 1, 46, 16), content.NewTextViewer(text)),
		window.New("status", grid.NewRect(24, 15, 30, 8), content.NewStatus(reg)),
	}

	m := window.NewManager(backend, window.Options{
		FrameBudget: cfg.FrameBudget(),
		Metrics:     reg,
		Logger:      logger,
	})

	// The layout above assumes a reasonable surface; smaller terminals get
	// the windows shrunk and shifted into view
	width, height := backend.Size()
	for _, w := range windows {
		w.SetTheme(theme)
		if w.ClampTo(width, height) {
			w.Redraw()
		}
		m.Add(w)
	}

	if err := m.Run(); err != nil {
		backend.Stop()
		fmt.Fprintf(os.Stderr, "termwin-demo: %v\n", err)
		os.Exit(1)
	}
}

func themeFromConfig(tc config.Theme) (window.Theme, error) {
	border, err := window.ParseHex(tc.Border)
	if err != nil {
		return window.Theme{}, err
	}
	title, err := window.ParseHex(tc.Title)
	if err != nil {
		return window.Theme{}, err
	}
	scrollbar, err := window.ParseHex(tc.Scrollbar)
	if err != nil {
		return window.Theme{}, err
	}
	return window.NewTheme(border, title, scrollbar), nil
}

func sampleText() string {
	var b strings.Builder
	b.WriteString(`Welcome to the termwin demo.

Manager chords:
  Ctrl+Arrow        move the focused window
  Ctrl+Shift+Arrow  resize the focused window
  Ctrl+PageDown     send the focused window back
  Ctrl+PageUp       focus the rearmost window
  Ctrl+C            quit

Everything else goes to the focused window. This
viewer scrolls with j/k, the arrows, PageUp and
PageDown, g/G or Home/End, and the mouse wheel.
The counter resets on r.
`)
	for i := 1; i <= 40; i++ {
		fmt.Fprintf(&b, "\nscroll filler line %d", i)
	}
	return b.String()
}
