package game

import (
	"fmt"
	"time"
)

// Move is a candidate move from one square to another.
type Move struct {
	From      Square    `json:"from" jsonschema:"origin square in algebraic notation, e.g. e2"`
	To        Square    `json:"to" jsonschema:"destination square in algebraic notation, e.g. e4"`
	Promotion PieceKind `json:"promotion,omitempty" jsonschema:"piece to promote a pawn to (queen, rook, bishop, knight)"`
}

// Normalize validates squares and canonicalizes a promotion value.
func (m Move) Normalize() (Move, error) {
	if !m.From.Valid() {
		return Move{}, fmt.Errorf("from square %q is invalid", m.From)
	}
	if !m.To.Valid() {
		return Move{}, fmt.Errorf("to square %q is invalid", m.To)
	}
	if m.Promotion != "" {
		kind, err := ParsePieceKind(string(m.Promotion))
		if err != nil {
			return Move{}, err
		}
		m.Promotion = kind
	}
	return m, nil
}

// String renders the move in long algebraic form, e.g. "e7e8q".
func (m Move) String() string {
	s := string(m.From) + string(m.To)
	switch m.Promotion {
	case Knight:
		s += "n"
	case Bishop, Rook, Queen:
		s += string(m.Promotion[:1])
	}
	return s
}

// AppliedMove records a move as accepted by the engine, or a raw human move
// relayed back to the agent (then only From, To and Promotion are set).
type AppliedMove struct {
	From        Square    `json:"from"`
	To          Square    `json:"to"`
	Promotion   PieceKind `json:"promotion,omitempty"`
	Piece       *Piece    `json:"piece,omitempty"`
	Captured    *Piece    `json:"captured,omitempty"`
	IsCheck     bool      `json:"is_check,omitempty"`
	IsCheckmate bool      `json:"is_checkmate,omitempty"`
	Notation    string    `json:"notation,omitempty"`
}

// RawMove wraps an unapplied move in the AppliedMove shape.
func RawMove(m Move) AppliedMove {
	return AppliedMove{From: m.From, To: m.To, Promotion: m.Promotion}
}

// PendingMove is a human move waiting in a session mailbox.
type PendingMove struct {
	SessionID   string
	Move        Move
	SubmittedAt time.Time
}
