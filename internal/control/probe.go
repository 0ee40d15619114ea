package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/vietddude/wsprobe/internal/core/config"
	redisclient "github.com/vietddude/wsprobe/internal/infra/redis"
	"github.com/vietddude/wsprobe/internal/probe"
	"github.com/vietddude/wsprobe/internal/probe/console"
	"github.com/vietddude/wsprobe/internal/probe/emitter"
	"github.com/vietddude/wsprobe/internal/probe/health"
)

// Probe is the main application struct that manages the receiver lifecycle.
type Probe struct {
	cfg          Config
	receiver     *probe.Receiver
	monitor      *health.Monitor
	healthServer *health.Server
	printer      *console.Printer
	sink         emitter.Emitter
	redisClient  *redisclient.Client
	log          *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// Config holds the application configuration.
type Config struct {
	Port     int
	Endpoint config.EndpointConfig
	Redis    redisclient.Config
	Out      *console.Printer // optional output override, defaults to stdout
}

// NewProbe creates a new Probe instance with all dependencies initialized.
func NewProbe(cfg Config) (*Probe, error) {
	printer := cfg.Out
	if printer == nil {
		printer = console.NewPrinter(os.Stdout)
	}

	// 1. Initialize frame sinks
	sinks := emitter.Multi{emitter.NewConsoleEmitter(printer)}

	var redisClient *redisclient.Client
	if cfg.Redis.URL != "" {
		var err error
		redisClient, err = redisclient.NewClient(cfg.Redis)
		if err != nil {
			slog.Warn("Failed to connect to Redis, frame capture disabled", "error", err)
		} else {
			sinks = append(sinks, emitter.NewCaptureEmitter(
				redisClient,
				cfg.Endpoint.URL,
				cfg.Redis.HistorySize,
			))
			slog.Info("Frame capture enabled", "history_size", cfg.Redis.HistorySize)
		}
	}

	// 2. Initialize Health Monitor and Server
	monitor := health.NewMonitor(cfg.Endpoint.URL)
	healthServer := health.NewServer(monitor, cfg.Port)

	// 3. Initialize Receiver
	receiver := probe.NewReceiver(probe.Config{
		URL:              cfg.Endpoint.URL,
		ReconnectDelay:   cfg.Endpoint.ReconnectDelay.Std(),
		HandshakeTimeout: cfg.Endpoint.HandshakeTimeout.Std(),
		MaxFrameSize:     cfg.Endpoint.MaxFrameSize,
	}, sinks, printer, monitor)

	return &Probe{
		cfg:          cfg,
		receiver:     receiver,
		monitor:      monitor,
		healthServer: healthServer,
		printer:      printer,
		sink:         sinks,
		redisClient:  redisClient,
		log:          slog.Default(),
	}, nil
}

// Start starts the probe and all its components. It is non-blocking; the
// receiver runs until Stop or the parent context cancels it.
func (p *Probe) Start(ctx context.Context) error {
	if p.done != nil {
		return fmt.Errorf("probe already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	// Start Health Server
	go func() {
		if err := p.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.log.Error("Health server failed", "error", err)
		}
	}()

	// Start Receiver Loop
	go func() {
		defer close(p.done)
		if err := p.receiver.Start(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			p.log.Error("Receiver failed", "error", err)
		}
	}()

	p.log.Info("Probe started", "endpoint", p.cfg.Endpoint.URL)
	return nil
}

// Stop stops the probe: the receiver is cancelled first so no further
// connection attempts happen, then sinks and servers shut down.
func (p *Probe) Stop(ctx context.Context) error {
	p.log.Info("Stopping probe...")

	if p.cancel != nil {
		p.cancel()
	}
	if p.done != nil {
		select {
		case <-p.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := p.sink.Close(); err != nil {
		p.log.Warn("Failed to close frame sinks", "error", err)
	}

	if p.redisClient != nil {
		if err := p.redisClient.Close(); err != nil {
			p.log.Warn("Failed to close Redis", "error", err)
		}
	}

	return p.healthServer.Stop(ctx)
}

// Status returns the current health snapshot.
func (p *Probe) Status() health.Report {
	return p.monitor.Snapshot()
}

// Printer exposes the console output stream, e.g. for the final
// stopped-manually line after shutdown.
func (p *Probe) Printer() *console.Printer {
	return p.printer
}
