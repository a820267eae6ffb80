package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Color is the side a piece belongs to.
type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

// PieceKind names a chess piece type.
type PieceKind string

const (
	Pawn   PieceKind = "pawn"
	Knight PieceKind = "knight"
	Bishop PieceKind = "bishop"
	Rook   PieceKind = "rook"
	Queen  PieceKind = "queen"
	King   PieceKind = "king"
)

// ParsePieceKind accepts full names ("queen") and single letters ("q", "Q").
func ParsePieceKind(value string) (PieceKind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "p", "pawn":
		return Pawn, nil
	case "n", "knight":
		return Knight, nil
	case "b", "bishop":
		return Bishop, nil
	case "r", "rook":
		return Rook, nil
	case "q", "queen":
		return Queen, nil
	case "k", "king":
		return King, nil
	default:
		return "", fmt.Errorf("unknown piece kind %q", value)
	}
}

// Piece is one occupant of a board square.
type Piece struct {
	Type  PieceKind `json:"type"`
	Color Color     `json:"color"`
}

// Board is an 8x8 grid indexed [row][col]; row 0 is rank 8 and col 0 is file a.
type Board [8][8]*Piece

// At returns the piece on a square, or nil when it is empty or invalid.
func (b Board) At(sq Square) *Piece {
	row, col, ok := sq.Coordinates()
	if !ok {
		return nil
	}
	return b[row][col]
}

// Square is a board coordinate in algebraic form, e.g. "e2".
//
// It decodes from either the algebraic string or a {"row":r,"col":c} object
// where row 0 is rank 8, mirroring the browser board layout.
type Square string

// SquareAt builds a square from board coordinates.
func SquareAt(row, col int) (Square, error) {
	if row < 0 || row > 7 || col < 0 || col > 7 {
		return "", fmt.Errorf("square row=%d col=%d is off the board", row, col)
	}
	return Square(fmt.Sprintf("%c%d", 'a'+col, 8-row)), nil
}

// Valid reports whether the square names one of the 64 board squares.
func (s Square) Valid() bool {
	_, _, ok := s.Coordinates()
	return ok
}

// Coordinates returns the board row and column of the square.
func (s Square) Coordinates() (row, col int, ok bool) {
	if len(s) != 2 {
		return 0, 0, false
	}
	file, rank := s[0], s[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, 0, false
	}
	return 8 - int(rank-'0'), int(file - 'a'), true
}

// UnmarshalJSON accepts "e2" or {"row":6,"col":4}.
func (s *Square) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '{' {
		var coords struct {
			Row *int `json:"row"`
			Col *int `json:"col"`
		}
		if err := json.Unmarshal(data, &coords); err != nil {
			return fmt.Errorf("decode square coordinates: %w", err)
		}
		if coords.Row == nil || coords.Col == nil {
			return fmt.Errorf("square coordinates require row and col")
		}
		sq, err := SquareAt(*coords.Row, *coords.Col)
		if err != nil {
			return err
		}
		*s = sq
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode square: %w", err)
	}
	*s = Square(strings.ToLower(strings.TrimSpace(raw)))
	return nil
}

// Position is the authoritative board state of one session.
//
// Native carries engine-owned state between moves (castling rights, en passant
// target, repetition history). Callers treat it as opaque and never mutate it.
type Position struct {
	Board      Board  `json:"board"`
	SideToMove Color  `json:"side_to_move"`
	FEN        string `json:"fen"`
	Native     any    `json:"-"`
}
