package emitter

import (
	"context"

	"github.com/vietddude/wsprobe/internal/core/domain"
)

// Emitter defines the interface for frame sinks. Emit is called once per
// inbound frame, in arrival order, from the receiver's single task.
type Emitter interface {
	// Emit delivers a single classified frame
	Emit(ctx context.Context, frame *domain.Frame) error

	// Close closes the emitter
	Close() error
}

// Multi fans a frame out to several emitters. The first error wins but all
// emitters still see the frame.
type Multi []Emitter

func (m Multi) Emit(ctx context.Context, frame *domain.Frame) error {
	var firstErr error
	for _, e := range m {
		if err := e.Emit(ctx, frame); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m Multi) Close() error {
	var firstErr error
	for _, e := range m {
		if err := e.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
