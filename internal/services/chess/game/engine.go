package game

// Outcome is the result of applying a legal move.
type Outcome struct {
	Position Position
	Status   Status
	Move     AppliedMove
}

// Engine owns chess rules. Implementations must not mutate the positions passed
// to them; each Apply returns a fresh Position.
type Engine interface {
	// Initial returns the standard starting position.
	Initial() Position
	// Status classifies a position.
	Status(pos Position) Status
	// Apply validates and plays move. Rejected moves return an error wrapping
	// ErrIllegalMove and leave pos unchanged.
	Apply(pos Position, move Move) (Outcome, error)
}
