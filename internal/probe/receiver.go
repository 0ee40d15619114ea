// Package probe implements the resilient receiver loop: one outbound
// WebSocket connection, a blocking read loop that classifies and emits each
// inbound frame in arrival order, and a fixed-delay reconnect policy that
// never gives up. Only context cancellation ends the loop.
package probe

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sethvargo/go-retry"

	"github.com/vietddude/wsprobe/internal/core/domain"
	"github.com/vietddude/wsprobe/internal/probe/console"
	"github.com/vietddude/wsprobe/internal/probe/emitter"
	"github.com/vietddude/wsprobe/internal/probe/metrics"
)

// Config holds receiver configuration.
type Config struct {
	URL              string
	ReconnectDelay   time.Duration
	HandshakeTimeout time.Duration
	MaxFrameSize     int64 // 0 = unbounded
}

// StateObserver receives lifecycle notifications from the receiver. All
// callbacks run on the receiver's single task, in event order.
type StateObserver interface {
	OnStateChange(state domain.State)
	OnConnect(sessionID string)
	OnFrame(frame *domain.Frame)
	OnDisconnect(reason domain.DisconnectReason, err error)
}

type noopObserver struct{}

func (noopObserver) OnStateChange(domain.State)                  {}
func (noopObserver) OnConnect(string)                            {}
func (noopObserver) OnFrame(*domain.Frame)                       {}
func (noopObserver) OnDisconnect(domain.DisconnectReason, error) {}

// Receiver is the resilient receiver loop. It holds at most one live
// connection at a time and processes frames strictly sequentially.
type Receiver struct {
	cfg      Config
	dialer   *websocket.Dialer
	emitter  emitter.Emitter
	console  *console.Printer
	observer StateObserver
	log      *slog.Logger
	running  atomic.Bool
}

// defaultReconnectDelay guards programmatic misconfiguration: the constant
// backoff requires a positive delay.
const defaultReconnectDelay = 100 * time.Millisecond

// NewReceiver creates a receiver. The observer may be nil.
func NewReceiver(cfg Config, sink emitter.Emitter, printer *console.Printer, observer StateObserver) *Receiver {
	if observer == nil {
		observer = noopObserver{}
	}
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = defaultReconnectDelay
	}
	return &Receiver{
		cfg: cfg,
		dialer: &websocket.Dialer{
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		emitter:  sink,
		console:  printer,
		observer: observer,
		log:      slog.Default().With("endpoint", cfg.URL),
	}
}

// Start runs the loop until ctx is cancelled. Every session failure, of any
// kind, becomes a fixed-delay wait followed by the next attempt: no backoff
// growth, no attempt cap, no delay before the very first attempt.
func (r *Receiver) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("receiver already running")
	}
	defer r.running.Store(false)

	backoff := retry.NewConstant(r.cfg.ReconnectDelay)
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		reason, err := r.runSession(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		metrics.DisconnectsTotal.WithLabelValues(string(reason)).Inc()
		r.observer.OnDisconnect(reason, err)
		r.log.Debug("Session ended", "reason", reason, "error", err)

		switch reason {
		case domain.ReasonClosed, domain.ReasonRefused:
			r.console.Reconnecting(r.cfg.ReconnectDelay)
		default:
			r.console.Unhandled(err)
		}

		return retry.RetryableError(err)
	})
}

// Running reports whether the loop is active.
func (r *Receiver) Running() bool {
	return r.running.Load()
}

// runSession performs one connect-receive cycle and reports how it ended.
func (r *Receiver) runSession(ctx context.Context) (domain.DisconnectReason, error) {
	r.console.Connecting(r.cfg.URL)
	r.setState(domain.StateConnecting)

	conn, resp, err := r.dialer.DialContext(ctx, r.cfg.URL, nil)
	if err != nil {
		if resp != nil {
			_ = resp.Body.Close()
		}
		r.setState(domain.StateDisconnected)
		return domain.ReasonRefused, fmt.Errorf("handshake failed: %w", err)
	}
	defer conn.Close()

	if r.cfg.MaxFrameSize > 0 {
		conn.SetReadLimit(r.cfg.MaxFrameSize)
	}

	sessionID := uuid.New().String()
	r.console.Connected()
	r.setState(domain.StateConnected)
	r.observer.OnConnect(sessionID)
	metrics.ConnectsTotal.Inc()
	metrics.Connected.Set(1)

	start := time.Now()
	defer func() {
		metrics.Connected.Set(0)
		metrics.SessionDuration.Observe(time.Since(start).Seconds())
		r.setState(domain.StateDisconnected)
	}()

	// The blocking read does not observe ctx; close the connection to
	// unblock it on cancellation.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-watchDone:
		}
	}()

	var seq uint64
	for {
		messageType, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return domain.ReasonClosed, ctx.Err()
			}
			if ClassifyDisconnect(err) == domain.ReasonClosed {
				r.console.ConnectionClosed()
				return domain.ReasonClosed, err
			}
			r.console.UnexpectedError(err)
			return domain.ReasonUnexpected, err
		}

		seq++
		frame := &domain.Frame{
			Kind:       ClassifyMessage(messageType),
			Payload:    payload,
			WireType:   messageType,
			SessionID:  sessionID,
			Seq:        seq,
			ReceivedAt: time.Now(),
		}

		if frame.Kind == domain.FrameUnknown {
			r.log.Debug("Unrecognized frame type", "wire_type", messageType, "seq", seq)
		}

		metrics.FramesReceived.WithLabelValues(string(frame.Kind)).Inc()
		metrics.FrameBytes.WithLabelValues(string(frame.Kind)).Add(float64(len(payload)))
		r.observer.OnFrame(frame)

		if err := r.emitter.Emit(ctx, frame); err != nil {
			r.console.UnexpectedError(err)
			return domain.ReasonUnexpected, fmt.Errorf("emit failed: %w", err)
		}
	}
}

func (r *Receiver) setState(state domain.State) {
	r.observer.OnStateChange(state)
}
