package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"
	"golang.org/x/time/rate"

	apperrors "github.com/louisbranch/chess-mcp/internal/platform/errors"
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

const (
	maxFramePayloadBytes   = 16 << 10
	maxDecodeErrorsPerConn = 8
	framesPerSecond        = 10
	frameBurst             = 20
)

// Gateway is the human-side session surface consumed by the websocket handler.
type Gateway interface {
	SubmitHumanMove(ctx context.Context, sessionID string, move game.Move) (game.PendingMove, error)
	State(ctx context.Context, sessionID string) (game.State, error)
}

// NewHandler serves the viewer websocket. A session_id query parameter
// subscribes the viewer on connect.
func NewHandler(hub *Hub, gateway Gateway) http.Handler {
	wsHandler := websocket.Handler(func(conn *websocket.Conn) {
		handleWSConn(conn, hub, gateway)
	})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		wsHandler.ServeHTTP(w, r)
	})
}

func handleWSConn(conn *websocket.Conn, hub *Hub, gateway Gateway) {
	defer func() {
		_ = conn.Close()
	}()
	conn.MaxPayloadBytes = maxFramePayloadBytes

	ctx := context.Background()
	var sessionID string
	if request := conn.Request(); request != nil {
		ctx = request.Context()
		sessionID = strings.TrimSpace(request.URL.Query().Get("session_id"))
	}

	peer := newWSPeer(conn)
	hub.join(peer, sessionID)
	defer hub.leave(peer)
	if sessionID != "" {
		sendState(ctx, peer, gateway, "", sessionID)
	}

	limiter := rate.NewLimiter(rate.Limit(framesPerSecond), frameBurst)
	decodeErrors := 0

	for {
		var data []byte
		if err := websocket.Message.Receive(conn, &data); err != nil {
			if errors.Is(err, websocket.ErrFrameTooLarge) {
				_ = writeWSError(peer, "", apperrors.CodeInvalidArgument, "frame too large")
				continue
			}
			if !errors.Is(err, io.EOF) {
				log.Printf("chess: viewer read failed err=%v", err)
			}
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			decodeErrors++
			log.Printf("chess: dropped malformed viewer frame err=%v", err)
			_ = writeWSError(peer, "", apperrors.CodeInvalidArgument, "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if !limiter.Allow() {
			_ = writeWSError(peer, frame.RequestID, apperrors.CodeResourceExhausted, "rate limit exceeded")
			continue
		}

		switch frame.Type {
		case frameMove:
			handleMoveFrame(ctx, peer, gateway, frame)
		case frameSubscribe:
			id := strings.TrimSpace(frame.SessionID)
			hub.join(peer, id)
			if id != "" {
				sendState(ctx, peer, gateway, frame.RequestID, id)
			}
		default:
			_ = writeWSError(peer, frame.RequestID, apperrors.CodeInvalidArgument, "unsupported frame type")
		}
	}
}

func handleMoveFrame(ctx context.Context, peer frameWriter, gateway Gateway, frame inboundFrame) {
	sessionID := strings.TrimSpace(frame.SessionID)
	if sessionID == "" || frame.Move == nil {
		_ = writeWSError(peer, frame.RequestID, apperrors.CodeInvalidArgument, "session_id and move are required")
		return
	}
	if _, err := gateway.SubmitHumanMove(ctx, sessionID, *frame.Move); err != nil {
		code := apperrors.CodeOf(err)
		if code == apperrors.CodeUnknown {
			log.Printf("chess: human move failed id=%s err=%v", sessionID, err)
		}
		_ = writeWSError(peer, frame.RequestID, code, err.Error())
		return
	}
	_ = peer.writeFrame(outboundFrame{Type: frameAck, RequestID: frame.RequestID, SessionID: sessionID})
}

func sendState(ctx context.Context, peer frameWriter, gateway Gateway, requestID, sessionID string) {
	state, err := gateway.State(ctx, sessionID)
	if err != nil {
		_ = writeWSError(peer, requestID, apperrors.CodeOf(err), err.Error())
		return
	}
	_ = peer.writeFrame(outboundFrame{Type: frameUpdate, RequestID: requestID, SessionID: sessionID, State: &state})
}

func writeWSError(peer frameWriter, requestID string, code apperrors.Code, message string) error {
	return peer.writeFrame(outboundFrame{
		Type:      frameError,
		RequestID: requestID,
		Error:     &frameErr{Code: string(code), Message: message},
	})
}
