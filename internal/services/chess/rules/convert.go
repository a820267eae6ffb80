package rules

import (
	"github.com/notnil/chess"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

func positionOf(g *chess.Game) game.Position {
	pos := g.Position()
	board := pos.Board()
	var out game.Board
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			out[row][col] = pieceOf(board.Piece(chess.Square((7-row)*8 + col)))
		}
	}
	return game.Position{
		Board:      out,
		SideToMove: colorOf(pos.Turn()),
		FEN:        pos.String(),
		Native:     g,
	}
}

func squareOf(sq game.Square) (chess.Square, bool) {
	row, col, ok := sq.Coordinates()
	if !ok {
		return chess.NoSquare, false
	}
	return chess.Square((7-row)*8 + col), true
}

func pieceOf(p chess.Piece) *game.Piece {
	if p == chess.NoPiece {
		return nil
	}
	return &game.Piece{Type: pieceKind(p.Type()), Color: colorOf(p.Color())}
}

func colorOf(c chess.Color) game.Color {
	if c == chess.Black {
		return game.Black
	}
	return game.White
}

func pieceKind(t chess.PieceType) game.PieceKind {
	switch t {
	case chess.King:
		return game.King
	case chess.Queen:
		return game.Queen
	case chess.Rook:
		return game.Rook
	case chess.Bishop:
		return game.Bishop
	case chess.Knight:
		return game.Knight
	case chess.Pawn:
		return game.Pawn
	default:
		return ""
	}
}

func pieceType(k game.PieceKind) chess.PieceType {
	switch k {
	case game.King:
		return chess.King
	case game.Queen:
		return chess.Queen
	case game.Rook:
		return chess.Rook
	case game.Bishop:
		return chess.Bishop
	case game.Knight:
		return chess.Knight
	case game.Pawn:
		return chess.Pawn
	default:
		return chess.NoPieceType
	}
}
