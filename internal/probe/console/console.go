// Package console renders the probe's tag-prefixed output lines. This is the
// observable surface of the tool: one line per event, written in arrival
// order. Structured operational logs go to slog separately.
package console

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/vietddude/wsprobe/internal/core/domain"
)

// Printer writes tag-prefixed lines to a single output stream.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) line(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Connecting announces a connection attempt.
func (p *Printer) Connecting(uri string) {
	p.line("[INFO] Connecting to %s...", uri)
}

// Connected announces a completed handshake.
func (p *Printer) Connected() {
	p.line("[INFO] Connected to WebSocket server.")
}

// Frame prints one classified inbound frame.
func (p *Printer) Frame(f *domain.Frame) {
	switch f.Kind {
	case domain.FrameText:
		p.line("[TEXT] %s", f.Display())
	case domain.FrameBinary:
		p.line("[BINARY] %s", f.Display())
	default:
		p.line("[UNKNOWN TYPE] %s", f.Display())
	}
}

// ConnectionClosed reports a graceful or abrupt stream closure.
func (p *Printer) ConnectionClosed() {
	p.line("[WARN] Connection closed by server.")
}

// UnexpectedError reports an error raised while waiting for or processing
// a frame.
func (p *Printer) UnexpectedError(err error) {
	p.line("[ERROR] Unexpected error: %v", err)
}

// Reconnecting announces the fixed wait before the next attempt.
func (p *Printer) Reconnecting(delay time.Duration) {
	p.line("[INFO] Reconnecting in %s seconds...", FormatSeconds(delay))
}

// Unhandled reports an error that escaped the session without a closure
// classification.
func (p *Printer) Unhandled(err error) {
	p.line("[FATAL] Unhandled exception: %v", err)
}

// Stopped is the final line on manual interruption.
func (p *Printer) Stopped() {
	p.line("[INFO] Client stopped manually.")
}

// FormatSeconds renders a duration as a plain decimal number of seconds
// (100ms -> "0.1", 5s -> "5").
func FormatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}
