// Package progress reports slicing progress through phases (slicing,
// contour building, rasterizing) to a terminal or to nowhere.
package progress

import (
	"context"
	"fmt"
	"os"

	uv "github.com/charmbracelet/ultraviolet"
)

// Reporter receives progress updates for the current phase.
type Reporter interface {
	// Phase announces the start of a new named phase.
	Phase(name string)
	// Update reports fractional completion (0.0-1.0) of the current phase.
	Update(fraction float64)
	// Close releases any terminal resources the reporter holds.
	Close() error
}

// NullReporter discards every update. It is the default Reporter used when
// the CLI is run non-interactively (output piped, or --quiet).
type NullReporter struct{}

func (NullReporter) Phase(string)   {}
func (NullReporter) Update(float64) {}
func (NullReporter) Close() error   { return nil }

// TerminalReporter renders a single live progress line, using the
// terminal lifecycle calls (DefaultTerminal/Start/GetSize/Shutdown) for a
// non-interactive, single-line progress readout rather than a full
// per-frame render loop.
type TerminalReporter struct {
	term  uv.Terminal
	width int
	phase string
}

// NewTerminalReporter starts a terminal session for progress reporting.
func NewTerminalReporter() (*TerminalReporter, error) {
	term := uv.DefaultTerminal()

	width, _, err := term.GetSize()
	if err != nil {
		return nil, fmt.Errorf("get terminal size: %w", err)
	}

	if err := term.Start(); err != nil {
		return nil, fmt.Errorf("start terminal: %w", err)
	}

	return &TerminalReporter{term: term, width: width}, nil
}

func (r *TerminalReporter) Phase(name string) {
	r.phase = name
	fmt.Fprintf(os.Stdout, "\r\x1b[2K%s: starting...", name)
}

func (r *TerminalReporter) Update(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}

	barWidth := r.width - len(r.phase) - 10
	if barWidth < 10 {
		barWidth = 10
	}
	filled := int(fraction * float64(barWidth))

	bar := ""
	for i := 0; i < barWidth; i++ {
		if i < filled {
			bar += "#"
		} else {
			bar += "-"
		}
	}

	fmt.Fprintf(os.Stdout, "\r\x1b[2K%s: [%s] %3.0f%%", r.phase, bar, fraction*100)
}

func (r *TerminalReporter) Close() error {
	fmt.Fprintln(os.Stdout)
	return r.term.Shutdown(context.Background())
}
