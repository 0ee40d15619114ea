package emitter

import (
	"context"
	"log/slog"

	"github.com/vietddude/wsprobe/internal/core/domain"
	redisclient "github.com/vietddude/wsprobe/internal/infra/redis"
	"github.com/vietddude/wsprobe/internal/probe/metrics"
)

// CaptureEmitter records recent frames in the Redis capture ring. Capture
// failures never interrupt the receive loop: they are logged and counted.
type CaptureEmitter struct {
	client      *redisclient.Client
	endpoint    string
	historySize int64
	log         *slog.Logger
}

// NewCaptureEmitter creates an emitter backed by the given Redis client.
func NewCaptureEmitter(client *redisclient.Client, endpoint string, historySize int64) *CaptureEmitter {
	return &CaptureEmitter{
		client:      client,
		endpoint:    endpoint,
		historySize: historySize,
		log:         slog.Default(),
	}
}

func (e *CaptureEmitter) Emit(ctx context.Context, frame *domain.Frame) error {
	if err := e.client.AppendFrame(ctx, e.endpoint, frame, e.historySize); err != nil {
		metrics.CaptureErrors.Inc()
		e.log.Warn("Failed to capture frame", "seq", frame.Seq, "error", err)
	}
	return nil
}

func (e *CaptureEmitter) Close() error { return nil }
