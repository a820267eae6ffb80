package storage

import (
	"context"

	apperrors "github.com/louisbranch/chess-mcp/internal/platform/errors"
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

// ErrSessionExists indicates a create collided with an existing session id.
var ErrSessionExists = apperrors.New(apperrors.CodeInvalidArgument, "session already exists")

// MutateFunc edits a private copy of a session. Returning an error discards
// the edit.
type MutateFunc func(*game.Session) error

// SessionStore persists chess sessions.
//
// Update runs mutate with exclusive access to one session, so two writers on
// the same id never observe the same starting state. Different sessions do not
// block each other.
type SessionStore interface {
	Create(ctx context.Context, session *game.Session) error
	Get(ctx context.Context, id string) (*game.Session, error)
	Update(ctx context.Context, id string, mutate MutateFunc) (*game.Session, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*game.Session, error)
}
