package probe

import (
	"errors"
	"io"
	"net"

	"github.com/gorilla/websocket"
	"github.com/vietddude/wsprobe/internal/core/domain"
)

// ClassifyMessage maps a transport message code to a frame kind. Anything
// that is not a text or binary data frame falls into the unknown bucket;
// this branch is defensive, the transport normally never produces it.
func ClassifyMessage(messageType int) domain.FrameKind {
	switch messageType {
	case websocket.TextMessage:
		return domain.FrameText
	case websocket.BinaryMessage:
		return domain.FrameBinary
	default:
		return domain.FrameUnknown
	}
}

// ClassifyDisconnect maps a read error to a disconnect reason. Graceful
// close frames and transport-level drops both count as a closure; everything
// else is unexpected.
func ClassifyDisconnect(err error) domain.DisconnectReason {
	if err == nil {
		return domain.ReasonClosed
	}

	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		return domain.ReasonClosed
	}

	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) {
		return domain.ReasonClosed
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return domain.ReasonClosed
	}

	return domain.ReasonUnexpected
}
