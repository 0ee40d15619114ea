package health

import (
	"sync"
	"time"

	"github.com/vietddude/wsprobe/internal/core/domain"
)

// Monitor tracks the receiver's connection lifecycle. It implements the
// receiver's StateObserver; callbacks arrive on the receiver's single task,
// the mutex only guards concurrent reads from the HTTP handlers.
type Monitor struct {
	mu sync.RWMutex

	endpoint       string
	state          domain.State
	sessionID      string
	connectedAt    time.Time
	connects       uint64
	disconnects    map[domain.DisconnectReason]uint64
	frames         map[domain.FrameKind]uint64
	lastFrameAt    time.Time
	lastError      string
	lastDisconnect time.Time
}

// NewMonitor creates a monitor for the given endpoint.
func NewMonitor(endpoint string) *Monitor {
	return &Monitor{
		endpoint:    endpoint,
		state:       domain.StateDisconnected,
		disconnects: make(map[domain.DisconnectReason]uint64),
		frames:      make(map[domain.FrameKind]uint64),
	}
}

// OnStateChange records the inner state machine transition.
func (m *Monitor) OnStateChange(state domain.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = state
}

// OnConnect records a completed handshake.
func (m *Monitor) OnConnect(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessionID = sessionID
	m.connectedAt = time.Now()
	m.connects++
}

// OnFrame records one received frame.
func (m *Monitor) OnFrame(frame *domain.Frame) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames[frame.Kind]++
	m.lastFrameAt = frame.ReceivedAt
}

// OnDisconnect records a session ending.
func (m *Monitor) OnDisconnect(reason domain.DisconnectReason, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disconnects[reason]++
	m.lastDisconnect = time.Now()
	m.sessionID = ""
	if err != nil {
		m.lastError = err.Error()
	}
}

// Snapshot returns the current health report.
func (m *Monitor) Snapshot() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()

	report := Report{
		Endpoint:    m.endpoint,
		State:       m.state,
		SessionID:   m.sessionID,
		Connects:    m.connects,
		Disconnects: make(map[domain.DisconnectReason]uint64, len(m.disconnects)),
		Frames:      make(map[domain.FrameKind]uint64, len(m.frames)),
		LastError:   m.lastError,
		UpdatedAt:   time.Now(),
	}
	for reason, n := range m.disconnects {
		report.Disconnects[reason] = n
	}
	for kind, n := range m.frames {
		report.Frames[kind] = n
	}
	if !m.connectedAt.IsZero() && m.state == domain.StateConnected {
		t := m.connectedAt
		report.ConnectedAt = &t
	}
	if !m.lastFrameAt.IsZero() {
		t := m.lastFrameAt
		report.LastFrameAt = &t
	}
	if !m.lastDisconnect.IsZero() {
		t := m.lastDisconnect
		report.LastDisconnect = &t
	}

	// Connected is healthy; between attempts is degraded; failing without a
	// single successful handshake so far means the endpoint is unreachable.
	var failures uint64
	for _, n := range m.disconnects {
		failures += n
	}
	switch {
	case m.state == domain.StateConnected:
		report.Status = StatusHealthy
	case m.connects == 0 && failures > 0:
		report.Status = StatusCritical
	default:
		report.Status = StatusDegraded
	}

	return report
}
