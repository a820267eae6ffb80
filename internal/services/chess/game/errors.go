package game

import (
	apperrors "github.com/louisbranch/chess-mcp/internal/platform/errors"
)

var (
	// ErrSessionNotFound is returned when no session exists for an id.
	ErrSessionNotFound = apperrors.New(apperrors.CodeSessionNotFound, "session not found")
	// ErrIllegalMove is returned when the engine rejects a move.
	ErrIllegalMove = apperrors.New(apperrors.CodeIllegalMove, "illegal move")
	// ErrGameAlreadyFinished is returned when a move targets a terminal session.
	ErrGameAlreadyFinished = apperrors.New(apperrors.CodeGameAlreadyFinished, "game already finished")
	// ErrInvalidMove is returned when a move is malformed before reaching the engine.
	ErrInvalidMove = apperrors.New(apperrors.CodeInvalidArgument, "invalid move")
)

// IsRecoverable reports whether err should be surfaced as a normal result
// rather than a transport-level failure.
func IsRecoverable(err error) bool {
	return err != nil && apperrors.CodeOf(err).Recoverable()
}
