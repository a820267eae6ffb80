// Package realtime serves browser viewers over websocket: it fans out session
// updates and accepts human move submissions.
package realtime

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/chess-mcp/internal/platform/timeouts"
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

// Scope selects which viewers receive a session update.
type Scope string

const (
	// ScopeSession delivers updates to viewers subscribed to that session and
	// to viewers with no subscription.
	ScopeSession Scope = "session"
	// ScopeAll delivers every update to every viewer.
	ScopeAll Scope = "all"
)

// ParseScope validates a scope name.
func ParseScope(value string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(value))) {
	case "", ScopeSession:
		return ScopeSession, nil
	case ScopeAll:
		return ScopeAll, nil
	default:
		return "", fmt.Errorf("unknown broadcast scope %q", value)
	}
}

// frameWriter sends one JSON frame to a viewer.
type frameWriter interface {
	writeFrame(frame outboundFrame) error
}

type wsPeer struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func newWSPeer(conn *websocket.Conn) *wsPeer {
	return &wsPeer{conn: conn}
}

func (p *wsPeer) writeFrame(frame outboundFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.conn.SetWriteDeadline(time.Now().Add(timeouts.WebSocketWrite)); err != nil {
		return err
	}
	return websocket.JSON.Send(p.conn, frame)
}

// Hub tracks connected viewers and their session subscriptions.
type Hub struct {
	mu    sync.Mutex
	scope Scope
	peers map[frameWriter]string
}

// NewHub creates a hub with the given broadcast scope.
func NewHub(scope Scope) *Hub {
	if scope == "" {
		scope = ScopeSession
	}
	return &Hub{scope: scope, peers: make(map[frameWriter]string)}
}

// Viewers returns the number of connected viewers.
func (h *Hub) Viewers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.peers)
}

func (h *Hub) join(peer frameWriter, sessionID string) {
	h.mu.Lock()
	h.peers[peer] = strings.TrimSpace(sessionID)
	h.mu.Unlock()
}

func (h *Hub) leave(peer frameWriter) {
	h.mu.Lock()
	delete(h.peers, peer)
	h.mu.Unlock()
}

// Notify sends the state to every matching viewer. A viewer whose write fails
// is dropped; the failure never reaches the caller.
func (h *Hub) Notify(_ context.Context, sessionID string, state game.State) {
	frame := outboundFrame{Type: frameUpdate, SessionID: sessionID, State: &state}

	h.mu.Lock()
	targets := make([]frameWriter, 0, len(h.peers))
	for peer, subscribed := range h.peers {
		if h.scope == ScopeAll || subscribed == "" || subscribed == sessionID {
			targets = append(targets, peer)
		}
	}
	h.mu.Unlock()

	for _, peer := range targets {
		if err := peer.writeFrame(frame); err != nil {
			log.Printf("chess: drop viewer after failed update id=%s err=%v", sessionID, err)
			h.leave(peer)
		}
	}
}
