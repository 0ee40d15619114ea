package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FramesReceived tracks total frames received per kind
	FramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wsprobe_frames_received_total",
			Help: "Total number of frames received",
		},
		[]string{"kind"},
	)

	// FrameBytes tracks total payload bytes received per kind
	FrameBytes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wsprobe_frame_bytes_total",
			Help: "Total payload bytes received",
		},
		[]string{"kind"},
	)

	// ConnectsTotal tracks successful handshakes
	ConnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wsprobe_connects_total",
			Help: "Total number of successful connections",
		},
	)

	// DisconnectsTotal tracks session endings per reason
	DisconnectsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wsprobe_disconnects_total",
			Help: "Total number of disconnections",
		},
		[]string{"reason"},
	)

	// Connected reports whether the probe currently holds a connection
	Connected = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wsprobe_connected",
			Help: "1 while a connection is established, 0 otherwise",
		},
	)

	// SessionDuration tracks how long connections stay up
	SessionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "wsprobe_session_duration_seconds",
			Help:    "Connection lifetime in seconds",
			Buckets: prometheus.ExponentialBuckets(0.1, 4, 10),
		},
	)

	// CaptureErrors tracks failed writes to the capture buffer
	CaptureErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wsprobe_capture_errors_total",
			Help: "Total number of failed capture buffer writes",
		},
	)
)
