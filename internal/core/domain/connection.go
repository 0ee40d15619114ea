package domain

// State is the inner connection state of the receiver loop.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

// DisconnectReason says why a session ended. All reasons are non-fatal:
// the loop retries regardless, only the console output differs.
type DisconnectReason string

const (
	// ReasonRefused covers connection-refused and any other handshake error.
	ReasonRefused DisconnectReason = "refused"
	// ReasonClosed covers graceful and abrupt stream closure.
	ReasonClosed DisconnectReason = "closed"
	// ReasonUnexpected covers everything else surfaced while reading or
	// processing a frame.
	ReasonUnexpected DisconnectReason = "unexpected"
)
