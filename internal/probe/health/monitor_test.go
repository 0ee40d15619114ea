package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vietddude/wsprobe/internal/core/domain"
)

func TestMonitor_Snapshot(t *testing.T) {
	m := NewMonitor("ws://localhost:9001/ws")

	report := m.Snapshot()
	if report.Status != StatusDegraded {
		t.Errorf("expected degraded before first connect, got %s", report.Status)
	}
	if report.State != domain.StateDisconnected {
		t.Errorf("expected disconnected, got %s", report.State)
	}

	m.OnStateChange(domain.StateConnecting)
	m.OnStateChange(domain.StateConnected)
	m.OnConnect("session-1")
	m.OnFrame(&domain.Frame{Kind: domain.FrameText, ReceivedAt: time.Now()})
	m.OnFrame(&domain.Frame{Kind: domain.FrameText, ReceivedAt: time.Now()})
	m.OnFrame(&domain.Frame{Kind: domain.FrameBinary, ReceivedAt: time.Now()})

	report = m.Snapshot()
	if report.Status != StatusHealthy {
		t.Errorf("expected healthy while connected, got %s", report.Status)
	}
	if report.SessionID != "session-1" {
		t.Errorf("expected session-1, got %s", report.SessionID)
	}
	if report.Connects != 1 {
		t.Errorf("expected 1 connect, got %d", report.Connects)
	}
	if report.Frames[domain.FrameText] != 2 || report.Frames[domain.FrameBinary] != 1 {
		t.Errorf("unexpected frame counts: %v", report.Frames)
	}
	if report.ConnectedAt == nil || report.LastFrameAt == nil {
		t.Error("expected connect and frame timestamps")
	}

	m.OnDisconnect(domain.ReasonClosed, errors.New("websocket: close 1000 (normal)"))
	m.OnStateChange(domain.StateDisconnected)

	report = m.Snapshot()
	if report.Status != StatusDegraded {
		t.Errorf("expected degraded after disconnect, got %s", report.Status)
	}
	if report.Disconnects[domain.ReasonClosed] != 1 {
		t.Errorf("expected 1 closed disconnect, got %v", report.Disconnects)
	}
	if report.SessionID != "" {
		t.Errorf("expected session cleared after disconnect, got %s", report.SessionID)
	}
	if report.LastError == "" {
		t.Error("expected last error recorded")
	}
	if report.ConnectedAt != nil {
		t.Error("expected no connected_at while disconnected")
	}
}

// Repeated failures without a single successful handshake mean the endpoint
// is unreachable: critical, and 503 from /health.
func TestMonitor_CriticalWhenNeverConnected(t *testing.T) {
	m := NewMonitor("ws://localhost:9001/ws")
	s := NewServer(m, 0)

	m.OnStateChange(domain.StateConnecting)
	m.OnStateChange(domain.StateDisconnected)
	m.OnDisconnect(domain.ReasonRefused, errors.New("connection refused"))

	report := m.Snapshot()
	if report.Status != StatusCritical {
		t.Errorf("expected critical before any successful connect, got %s", report.Status)
	}

	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}

	// One successful connect clears the critical state for good.
	m.OnStateChange(domain.StateConnected)
	m.OnConnect("session-1")
	m.OnDisconnect(domain.ReasonClosed, errors.New("websocket: close 1000 (normal)"))
	m.OnStateChange(domain.StateDisconnected)

	if got := m.Snapshot().Status; got != StatusDegraded {
		t.Errorf("expected degraded after a successful connect, got %s", got)
	}
}

func TestServer_Endpoints(t *testing.T) {
	m := NewMonitor("ws://localhost:9001/ws")
	s := NewServer(m, 0)

	m.OnStateChange(domain.StateConnected)
	m.OnConnect("session-1")

	// /health
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var status map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status["status"] != string(StatusHealthy) {
		t.Errorf("expected healthy, got %s", status["status"])
	}

	// /health/detailed
	rec = httptest.NewRecorder()
	s.handleDetailed(rec, httptest.NewRequest(http.MethodGet, "/health/detailed", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	var report Report
	if err := json.NewDecoder(rec.Body).Decode(&report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if report.State != domain.StateConnected {
		t.Errorf("expected connected state, got %s", report.State)
	}
	if report.Endpoint != "ws://localhost:9001/ws" {
		t.Errorf("unexpected endpoint: %s", report.Endpoint)
	}
}
