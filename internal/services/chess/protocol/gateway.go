package protocol

import (
	"context"
	"fmt"
	"log"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
	"github.com/louisbranch/chess-mcp/internal/services/chess/storage"
)

// Enqueuer accepts human moves into a session mailbox.
type Enqueuer interface {
	Enqueue(sessionID string, move game.Move) game.PendingMove
}

// Gateway adapts the human side of a session: move submission into the
// mailbox and read-only state for viewers. It owns no state.
type Gateway struct {
	store   storage.SessionStore
	mailbox Enqueuer
}

// NewGateway wires a gateway.
func NewGateway(store storage.SessionStore, mailbox Enqueuer) *Gateway {
	return &Gateway{store: store, mailbox: mailbox}
}

// SubmitHumanMove queues a move for the agent to pick up. Legality is checked
// later, when the agent relays the move through submit_move.
func (g *Gateway) SubmitHumanMove(ctx context.Context, sessionID string, move game.Move) (game.PendingMove, error) {
	normalized, err := move.Normalize()
	if err != nil {
		return game.PendingMove{}, fmt.Errorf("%w: %v", game.ErrInvalidMove, err)
	}
	session, err := g.store.Get(ctx, sessionID)
	if err != nil {
		return game.PendingMove{}, err
	}
	if session.Status.Terminal() {
		return game.PendingMove{}, game.ErrGameAlreadyFinished
	}
	pending := g.mailbox.Enqueue(sessionID, normalized)
	log.Printf("chess: human move enqueued id=%s move=%s", sessionID, normalized)
	return pending, nil
}

// State returns the current snapshot of one session.
func (g *Gateway) State(ctx context.Context, sessionID string) (game.State, error) {
	session, err := g.store.Get(ctx, sessionID)
	if err != nil {
		return game.State{}, err
	}
	return session.State(), nil
}

// Sessions lists active sessions ordered by creation.
func (g *Gateway) Sessions(ctx context.Context) ([]game.Summary, error) {
	sessions, err := g.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	out := make([]game.Summary, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, session.Summary())
	}
	return out, nil
}
