// Package health provides probe health monitoring and status reporting.
package health

import (
	"time"

	"github.com/vietddude/wsprobe/internal/core/domain"
)

// SystemStatus represents the overall health state of the probe.
type SystemStatus string

const (
	StatusHealthy  SystemStatus = "healthy"
	StatusDegraded SystemStatus = "degraded"
	StatusCritical SystemStatus = "critical"
)

// Report is the snapshot served by the health endpoints.
type Report struct {
	Status         SystemStatus                       `json:"status"`
	Endpoint       string                             `json:"endpoint"`
	State          domain.State                       `json:"state"`
	SessionID      string                             `json:"session_id,omitempty"`
	ConnectedAt    *time.Time                         `json:"connected_at,omitempty"`
	Connects       uint64                             `json:"connects"`
	Disconnects    map[domain.DisconnectReason]uint64 `json:"disconnects"`
	Frames         map[domain.FrameKind]uint64        `json:"frames"`
	LastFrameAt    *time.Time                         `json:"last_frame_at,omitempty"`
	LastError      string                             `json:"last_error,omitempty"`
	LastDisconnect *time.Time                         `json:"last_disconnect_at,omitempty"`
	UpdatedAt      time.Time                          `json:"updated_at"`
}
