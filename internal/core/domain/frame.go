package domain

import (
	"encoding/hex"
	"fmt"
	"time"
)

// FrameKind classifies an inbound frame by its wire type.
type FrameKind string

const (
	FrameText    FrameKind = "text"
	FrameBinary  FrameKind = "binary"
	FrameUnknown FrameKind = "unknown"
)

// Frame is one inbound message. Frames are ephemeral: they are classified,
// emitted and discarded in arrival order, never stored by the receiver.
type Frame struct {
	Kind       FrameKind
	Payload    []byte
	WireType   int // raw message code from the transport, kept for the unknown case
	SessionID  string
	Seq        uint64
	ReceivedAt time.Time
}

// Display renders the payload the way the console expects it:
// text as-is, binary as lowercase hex, anything else via %v.
func (f *Frame) Display() string {
	switch f.Kind {
	case FrameText:
		return string(f.Payload)
	case FrameBinary:
		return hex.EncodeToString(f.Payload)
	default:
		return fmt.Sprintf("%v", f.Payload)
	}
}
