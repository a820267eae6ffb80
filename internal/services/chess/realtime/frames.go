package realtime

import (
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

const (
	frameMove      = "move"
	frameSubscribe = "subscribe"
	frameUpdate    = "update"
	frameAck       = "ack"
	frameError     = "error"
)

// inboundFrame is a viewer message. Move squares accept "e2" or
// {"row":6,"col":4}.
type inboundFrame struct {
	Type      string     `json:"type"`
	RequestID string     `json:"request_id,omitempty"`
	SessionID string     `json:"session_id"`
	Move      *game.Move `json:"move,omitempty"`
}

type outboundFrame struct {
	Type      string      `json:"type"`
	RequestID string      `json:"request_id,omitempty"`
	SessionID string      `json:"session_id,omitempty"`
	State     *game.State `json:"state,omitempty"`
	Error     *frameErr   `json:"error,omitempty"`
}

type frameErr struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
