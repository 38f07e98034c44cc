// Package console renders progress lines for interactive runs.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"

	"github.com/silopkg/silo/internal/core/ports"
)

// Console implements ports.Reporter with glyph-prefixed status lines in the
// depot CLI style.
type Console struct {
	mu     sync.Mutex
	w      io.Writer
	output *termenv.Output
}

// New creates a Console writing to stderr.
func New() *Console {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Console writing to w.
func NewWithWriter(w io.Writer) *Console {
	if w == nil {
		w = os.Stderr
	}
	return &Console{
		w:      w,
		output: termenv.NewOutput(w, termenv.WithProfile(colorProfile())),
	}
}

func colorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.ANSI
}

// Begin announces a new phase of the run.
func (c *Console) Begin(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	glyph := c.output.String("»").Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", glyph, msg)
}

// Status reports one step within a phase.
func (c *Console) Status(status ports.Status, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	glyph, color := statusDecoration(status)
	label := c.output.String(glyph + " " + string(status)).Foreground(color).String()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", label, msg)
}

// Warn reports a diagnostic that does not abort the run by itself.
func (c *Console) Warn(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	glyph := c.output.String("!").Foreground(termenv.ANSIYellow).String()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", glyph, msg)
}

// End announces the run outcome.
func (c *Console) End(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	glyph := c.output.String("★").Foreground(termenv.ANSIGreen).String()
	_, _ = fmt.Fprintf(c.w, "%s %s\n", glyph, msg)
}

func statusDecoration(status ports.Status) (string, termenv.Color) {
	switch status {
	case ports.StatusResolving:
		return "Ω", termenv.ANSIGreen
	case ports.StatusUsing, ports.StatusFound:
		return "→", termenv.ANSIGreen
	case ports.StatusDownloading:
		return "↓", termenv.ANSIGreen
	case ports.StatusCached:
		return "☑", termenv.ANSIGreen
	case ports.StatusVerifying:
		return "✓", termenv.ANSIGreen
	case ports.StatusSkipping:
		return "∅", termenv.ANSIYellow
	case ports.StatusMissing:
		return "✗", termenv.ANSIRed
	default:
		return "•", termenv.ANSIWhite
	}
}
