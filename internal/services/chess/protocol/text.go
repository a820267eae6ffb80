package protocol

import (
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
	"github.com/louisbranch/chess-mcp/internal/services/chess/i18n"
)

// nextAction maps a session phase to the tool the agent must call next.
func (s *Service) nextAction(phase game.Phase) *game.NextAction {
	switch phase {
	case game.PhaseAwaitingAgentMove:
		return &game.NextAction{Tool: game.OpSubmitMove, Reason: s.printer.Sprintf(i18n.KeyNextSubmit)}
	case game.PhaseAwaitingHumanMove:
		return &game.NextAction{Tool: game.OpPollHumanMove, Reason: s.printer.Sprintf(i18n.KeyNextPoll)}
	case game.PhaseFinished:
		return &game.NextAction{Tool: game.OpFinish, Reason: s.printer.Sprintf(i18n.KeyNextFinish)}
	default:
		return nil
	}
}

func (s *Service) moveText(move game.AppliedMove, status game.Status) string {
	notation := move.Notation
	if notation == "" {
		notation = string(move.From) + string(move.To)
	}
	switch {
	case status.Terminal():
		return s.printer.Sprintf(i18n.KeyMoveGameOver, notation, s.statusText(status))
	case status == game.StatusCheck:
		return s.printer.Sprintf(i18n.KeyMoveCheck, notation)
	default:
		return s.printer.Sprintf(i18n.KeyMoveOK, notation)
	}
}

func (s *Service) statusText(status game.Status) string {
	return s.printer.Sprintf("status." + string(status))
}
