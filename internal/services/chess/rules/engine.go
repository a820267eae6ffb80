// Package rules adapts github.com/notnil/chess to the game.Engine contract.
package rules

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

// Engine validates and applies moves with full standard rules.
type Engine struct{}

var _ game.Engine = Engine{}

// New returns a rules engine.
func New() Engine {
	return Engine{}
}

// Initial returns the standard starting position.
func (Engine) Initial() game.Position {
	return positionOf(chess.NewGame())
}

// Status classifies the position, including claimable draws.
func (Engine) Status(pos game.Position) game.Status {
	g, err := gameOf(pos)
	if err != nil {
		return game.StatusOngoing
	}
	return statusOf(g)
}

// Apply validates move against pos and returns the resulting position.
func (Engine) Apply(pos game.Position, move game.Move) (game.Outcome, error) {
	move, err := move.Normalize()
	if err != nil {
		return game.Outcome{}, fmt.Errorf("%w: %v", game.ErrIllegalMove, err)
	}
	prev, err := gameOf(pos)
	if err != nil {
		return game.Outcome{}, err
	}
	if prev.Outcome() != chess.NoOutcome {
		return game.Outcome{}, game.ErrGameAlreadyFinished
	}
	next, err := replay(prev)
	if err != nil {
		return game.Outcome{}, err
	}

	candidate := findMove(next.ValidMoves(), move)
	if candidate == nil {
		return game.Outcome{}, fmt.Errorf("%w: %s", game.ErrIllegalMove, move)
	}

	before := next.Position()
	mover := before.Board().Piece(candidate.S1())
	captured := capturedPiece(before, candidate)
	notation := chess.AlgebraicNotation{}.Encode(before, candidate)

	if err := next.Move(candidate); err != nil {
		return game.Outcome{}, fmt.Errorf("%w: %v", game.ErrIllegalMove, err)
	}

	status := statusOf(next)
	applied := game.AppliedMove{
		From:        move.From,
		To:          move.To,
		Promotion:   pieceKind(candidate.Promo()),
		Piece:       pieceOf(mover),
		Captured:    pieceOf(captured),
		IsCheck:     candidate.HasTag(chess.Check),
		IsCheckmate: status == game.StatusCheckmate,
		Notation:    notation,
	}
	return game.Outcome{
		Position: positionOf(next),
		Status:   status,
		Move:     applied,
	}, nil
}

// gameOf recovers the engine game carried in a position.
func gameOf(pos game.Position) (*chess.Game, error) {
	if pos.Native == nil {
		return chess.NewGame(), nil
	}
	g, ok := pos.Native.(*chess.Game)
	if !ok || g == nil {
		return nil, fmt.Errorf("position was not produced by this engine")
	}
	return g, nil
}

// replay rebuilds prev into a fresh game so prev stays untouched.
func replay(prev *chess.Game) (*chess.Game, error) {
	next := chess.NewGame()
	for _, m := range prev.Moves() {
		if err := next.Move(m); err != nil {
			return nil, fmt.Errorf("replay move %s: %w", m, err)
		}
	}
	return next, nil
}

func findMove(valid []*chess.Move, move game.Move) *chess.Move {
	from, ok := squareOf(move.From)
	if !ok {
		return nil
	}
	to, ok := squareOf(move.To)
	if !ok {
		return nil
	}
	promo := pieceType(move.Promotion)
	for _, m := range valid {
		if m.S1() != from || m.S2() != to {
			continue
		}
		if m.Promo() == chess.NoPieceType {
			if promo != chess.NoPieceType {
				return nil
			}
			return m
		}
		// Promotions default to a queen when the caller omits the piece.
		wanted := promo
		if wanted == chess.NoPieceType {
			wanted = chess.Queen
		}
		if m.Promo() == wanted {
			return m
		}
	}
	return nil
}

func capturedPiece(pos *chess.Position, m *chess.Move) chess.Piece {
	if m.HasTag(chess.EnPassant) {
		if pos.Turn() == chess.White {
			return chess.BlackPawn
		}
		return chess.WhitePawn
	}
	return pos.Board().Piece(m.S2())
}

func statusOf(g *chess.Game) game.Status {
	if g.Outcome() != chess.NoOutcome {
		switch g.Method() {
		case chess.Checkmate:
			return game.StatusCheckmate
		case chess.Stalemate:
			return game.StatusStalemate
		default:
			return game.StatusDraw
		}
	}
	for _, method := range g.EligibleDraws() {
		if method == chess.ThreefoldRepetition || method == chess.FiftyMoveRule {
			return game.StatusDraw
		}
	}
	moves := g.Moves()
	if len(moves) > 0 && moves[len(moves)-1].HasTag(chess.Check) {
		return game.StatusCheck
	}
	return game.StatusOngoing
}
