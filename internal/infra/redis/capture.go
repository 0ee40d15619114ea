package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/vietddude/wsprobe/internal/core/domain"
)

// CapturedFrame is the compact record stored per frame. Payload holds the
// console rendering (raw text, hex, or %v) rather than the raw bytes.
type CapturedFrame struct {
	SessionID  string           `json:"session_id"`
	Seq        uint64           `json:"seq"`
	Kind       domain.FrameKind `json:"kind"`
	Payload    string           `json:"payload"`
	ReceivedAt time.Time        `json:"received_at"`
}

// Key helpers
func captureKey(endpoint string) string {
	return fmt.Sprintf("wsprobe:frames:%s", endpointLabel(endpoint))
}

// endpointLabel reduces an endpoint URL to a stable key component
// (host:port/path), falling back to the raw string when it does not parse.
func endpointLabel(endpoint string) string {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint
	}
	return u.Host + u.Path
}

// AppendFrame pushes a frame record onto the capture ring, trimming it to
// the configured history size.
func (c *Client) AppendFrame(
	ctx context.Context,
	endpoint string,
	frame *domain.Frame,
	historySize int64,
) error {
	record := CapturedFrame{
		SessionID:  frame.SessionID,
		Seq:        frame.Seq,
		Kind:       frame.Kind,
		Payload:    frame.Display(),
		ReceivedAt: frame.ReceivedAt,
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode frame record: %w", err)
	}

	key := captureKey(endpoint)
	pipe := c.rdb.TxPipeline()
	pipe.LPush(ctx, key, data)
	if historySize > 0 {
		pipe.LTrim(ctx, key, 0, historySize-1)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("capture push failed: %w", err)
	}
	return nil
}

// Recent returns up to n captured frames, newest first.
func (c *Client) Recent(ctx context.Context, endpoint string, n int64) ([]CapturedFrame, error) {
	if n <= 0 {
		return nil, nil
	}

	raw, err := c.rdb.LRange(ctx, captureKey(endpoint), 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("lrange failed: %w", err)
	}

	frames := make([]CapturedFrame, 0, len(raw))
	for _, item := range raw {
		var record CapturedFrame
		if err := json.Unmarshal([]byte(item), &record); err != nil {
			return nil, fmt.Errorf("invalid frame record: %w", err)
		}
		frames = append(frames, record)
	}
	return frames, nil
}
