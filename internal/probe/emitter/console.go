package emitter

import (
	"context"

	"github.com/vietddude/wsprobe/internal/core/domain"
	"github.com/vietddude/wsprobe/internal/probe/console"
)

// ConsoleEmitter prints each frame as a tag-prefixed console line.
type ConsoleEmitter struct {
	printer *console.Printer
}

// NewConsoleEmitter creates an emitter writing through the given printer.
func NewConsoleEmitter(printer *console.Printer) *ConsoleEmitter {
	return &ConsoleEmitter{printer: printer}
}

func (e *ConsoleEmitter) Emit(ctx context.Context, frame *domain.Frame) error {
	e.printer.Frame(frame)
	return nil
}

func (e *ConsoleEmitter) Close() error { return nil }
