package game

import "time"

// Status is the rules-level state of a position.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCheck     Status = "check"
	StatusCheckmate Status = "checkmate"
	StatusStalemate Status = "stalemate"
	StatusDraw      Status = "draw"
)

// Terminal reports whether no further moves may be made.
func (s Status) Terminal() bool {
	switch s {
	case StatusCheckmate, StatusStalemate, StatusDraw:
		return true
	default:
		return false
	}
}

// Phase tracks whose turn the protocol is waiting on.
type Phase string

const (
	PhaseNotStarted        Phase = "not_started"
	PhaseAwaitingAgentMove Phase = "awaiting_agent_move"
	PhaseAwaitingHumanMove Phase = "awaiting_human_move"
	PhaseFinished          Phase = "finished"
)

// AgentColor is the side the MCP agent plays.
const AgentColor = White

// PhaseFor derives the protocol phase from position and status.
func PhaseFor(side Color, status Status) Phase {
	if status.Terminal() {
		return PhaseFinished
	}
	if side == AgentColor {
		return PhaseAwaitingAgentMove
	}
	return PhaseAwaitingHumanMove
}

// Session is one game between the agent and a human viewer.
type Session struct {
	ID        string
	Position  Position
	Status    Status
	History   []AppliedMove
	Phase     Phase
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Clone returns a copy that shares no mutable slices with s.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.History = append([]AppliedMove(nil), s.History...)
	return &out
}

// LastMove returns the most recent applied move, if any.
func (s *Session) LastMove() *AppliedMove {
	if s == nil || len(s.History) == 0 {
		return nil
	}
	last := s.History[len(s.History)-1]
	return &last
}

// State is the serializable snapshot sent to agents and viewers.
type State struct {
	SessionID   string        `json:"session_id"`
	Board       Board         `json:"board"`
	SideToMove  Color         `json:"side_to_move"`
	Status      Status        `json:"status"`
	Phase       Phase         `json:"phase"`
	FEN         string        `json:"fen"`
	MoveHistory []AppliedMove `json:"move_history"`
	LastMove    *AppliedMove  `json:"last_move,omitempty"`
}

// State builds the public snapshot of the session.
func (s *Session) State() State {
	history := append([]AppliedMove{}, s.History...)
	return State{
		SessionID:   s.ID,
		Board:       s.Position.Board,
		SideToMove:  s.Position.SideToMove,
		Status:      s.Status,
		Phase:       s.Phase,
		FEN:         s.Position.FEN,
		MoveHistory: history,
		LastMove:    s.LastMove(),
	}
}

// Summary is the listing entry for a session.
type Summary struct {
	SessionID  string    `json:"session_id"`
	Status     Status    `json:"status"`
	SideToMove Color     `json:"side_to_move"`
	Moves      int       `json:"moves"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Summary builds the listing entry for the session.
func (s *Session) Summary() Summary {
	return Summary{
		SessionID:  s.ID,
		Status:     s.Status,
		SideToMove: s.Position.SideToMove,
		Moves:      len(s.History),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
