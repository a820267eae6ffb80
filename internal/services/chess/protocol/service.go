package protocol

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	apperrors "github.com/louisbranch/chess-mcp/internal/platform/errors"
	"github.com/louisbranch/chess-mcp/internal/platform/id"
	platformotel "github.com/louisbranch/chess-mcp/internal/platform/otel"
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
	"github.com/louisbranch/chess-mcp/internal/services/chess/i18n"
	"github.com/louisbranch/chess-mcp/internal/services/chess/storage"
)

const (
	// DefaultPollMinDelay is the minimum time a poll takes before returning.
	DefaultPollMinDelay = 1200 * time.Millisecond
	// DefaultPollWindow bounds how long a poll waits for a move to arrive.
	DefaultPollWindow = 25 * time.Second
)

// Mailbox is the slice of the move mailbox the protocol consumes.
type Mailbox interface {
	AwaitTimeout(ctx context.Context, sessionID string, minDelay, window time.Duration) (game.PendingMove, bool, error)
	Discard(sessionID string) int
}

// Broadcaster pushes post-move state to realtime viewers. Delivery is
// best-effort and must not fail the caller.
type Broadcaster interface {
	Notify(ctx context.Context, sessionID string, state game.State)
}

// Options tune protocol behavior.
type Options struct {
	PollMinDelay time.Duration
	PollWindow   time.Duration
	Locale       language.Tag
	// NewID allocates session ids; defaults to id.NewID.
	NewID func() (string, error)
	// Now defaults to time.Now.
	Now func() time.Time
}

// Service runs the turn protocol.
type Service struct {
	store       storage.SessionStore
	engine      game.Engine
	mailbox     Mailbox
	broadcaster Broadcaster
	opts        Options
	printer     *message.Printer
	tracer      trace.Tracer
}

// NewService wires a protocol service. A nil broadcaster disables viewer
// notifications.
func NewService(store storage.SessionStore, engine game.Engine, mailbox Mailbox, broadcaster Broadcaster, opts Options) *Service {
	if opts.PollMinDelay < 0 {
		opts.PollMinDelay = 0
	}
	if opts.PollWindow < 0 {
		opts.PollWindow = 0
	}
	if opts.Locale == language.Und {
		opts.Locale = i18n.Default()
	}
	if opts.NewID == nil {
		opts.NewID = id.NewID
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if broadcaster == nil {
		broadcaster = noopBroadcaster{}
	}
	return &Service{
		store:       store,
		engine:      engine,
		mailbox:     mailbox,
		broadcaster: broadcaster,
		opts:        opts,
		printer:     i18n.Printer(opts.Locale),
		tracer:      platformotel.Tracer("services/chess/protocol"),
	}
}

// Start creates a session at the initial position with the agent to move.
func (s *Service) Start(ctx context.Context) (game.ToolResult, error) {
	ctx, span := s.tracer.Start(ctx, "protocol.start")
	defer span.End()

	sessionID, err := s.opts.NewID()
	if err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("generate session id: %w", err))
	}
	span.SetAttributes(attribute.String("chess.session_id", sessionID))

	pos := s.engine.Initial()
	now := s.opts.Now().UTC()
	status := s.engine.Status(pos)
	session := &game.Session{
		ID:        sessionID,
		Position:  pos,
		Status:    status,
		Phase:     game.PhaseFor(pos.SideToMove, status),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, session); err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("create session: %w", err))
	}
	log.Printf("chess: session started id=%s", sessionID)

	state := session.State()
	return game.ToolResult{
		Operation:    game.OpStart,
		SessionID:    sessionID,
		CurrentState: &state,
		NextAction:   s.nextAction(session.Phase),
		HumanText:    s.printer.Sprintf(i18n.KeyStartOK),
	}, nil
}

// SubmitMove validates and applies a move for whichever side is to move.
//
// Rejected moves leave the session unchanged and return a result with
// ErrorCode set; only a missing session or an infrastructure failure is
// returned as an error.
func (s *Service) SubmitMove(ctx context.Context, sessionID string, move game.Move) (game.ToolResult, error) {
	ctx, span := s.tracer.Start(ctx, "protocol.submit_move", trace.WithAttributes(
		attribute.String("chess.session_id", sessionID),
		attribute.String("chess.move", move.String()),
	))
	defer span.End()

	normalized := move
	var applied game.AppliedMove
	session, err := s.store.Update(ctx, sessionID, func(session *game.Session) error {
		if session.Status.Terminal() {
			return game.ErrGameAlreadyFinished
		}
		var err error
		normalized, err = move.Normalize()
		if err != nil {
			normalized = move
			return fmt.Errorf("%w: %v", game.ErrInvalidMove, err)
		}
		outcome, err := s.engine.Apply(session.Position, normalized)
		if err != nil {
			return err
		}
		session.Position = outcome.Position
		session.Status = outcome.Status
		session.Phase = game.PhaseFor(outcome.Position.SideToMove, outcome.Status)
		session.History = append(session.History, outcome.Move)
		session.UpdatedAt = s.opts.Now().UTC()
		applied = outcome.Move
		return nil
	})
	if err != nil {
		if game.IsRecoverable(err) {
			return s.rejectMove(ctx, span, sessionID, normalized, err)
		}
		return game.ToolResult{}, s.fail(span, fmt.Errorf("submit move: %w", err))
	}

	log.Printf("chess: move applied id=%s move=%s san=%s status=%s", sessionID, normalized, applied.Notation, session.Status)
	state := session.State()
	s.broadcaster.Notify(ctx, sessionID, state)

	return game.ToolResult{
		Operation:    game.OpSubmitMove,
		SessionID:    sessionID,
		CurrentState: &state,
		LastMove:     &applied,
		NextAction:   s.nextAction(session.Phase),
		HumanText:    s.moveText(applied, session.Status),
	}, nil
}

// PollHumanMove waits for the next human move and hands it back unapplied.
//
// The call never returns before PollMinDelay. If no move arrives within
// PollWindow the result asks the agent to poll again. Polling a finished game
// returns immediately with finish as the next action.
func (s *Service) PollHumanMove(ctx context.Context, sessionID string) (game.ToolResult, error) {
	ctx, span := s.tracer.Start(ctx, "protocol.poll_human_move", trace.WithAttributes(
		attribute.String("chess.session_id", sessionID),
	))
	defer span.End()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("poll human move: %w", err))
	}
	if session.Status.Terminal() {
		state := session.State()
		return game.ToolResult{
			Operation:    game.OpPollHumanMove,
			SessionID:    sessionID,
			CurrentState: &state,
			NextAction:   s.nextAction(game.PhaseFinished),
			HumanText:    s.printer.Sprintf(i18n.KeyPollGameOver, s.statusText(session.Status)),
		}, nil
	}

	pending, ok, err := s.mailbox.AwaitTimeout(ctx, sessionID, s.opts.PollMinDelay, s.opts.PollWindow)
	if err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("await human move: %w", err))
	}
	if !ok {
		span.SetAttributes(attribute.Bool("chess.move_received", false))
		// The session may have been finished or advanced while waiting.
		session, err = s.store.Get(ctx, sessionID)
		if err != nil {
			return game.ToolResult{}, s.fail(span, fmt.Errorf("poll human move: %w", err))
		}
		if session.Status.Terminal() {
			state := session.State()
			return game.ToolResult{
				Operation:    game.OpPollHumanMove,
				SessionID:    sessionID,
				CurrentState: &state,
				NextAction:   s.nextAction(game.PhaseFinished),
				HumanText:    s.printer.Sprintf(i18n.KeyPollGameOver, s.statusText(session.Status)),
			}, nil
		}
		state := session.State()
		return game.ToolResult{
			Operation:    game.OpPollHumanMove,
			SessionID:    sessionID,
			CurrentState: &state,
			NextAction:   s.nextAction(game.PhaseAwaitingHumanMove),
			HumanText:    s.printer.Sprintf(i18n.KeyPollWaiting),
		}, nil
	}
	span.SetAttributes(attribute.Bool("chess.move_received", true))

	// The agent relays the human move through submit_move next.
	session, err = s.store.Update(ctx, sessionID, func(session *game.Session) error {
		session.Phase = game.PhaseAwaitingAgentMove
		return nil
	})
	if err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("poll human move: %w", err))
	}
	log.Printf("chess: human move delivered id=%s move=%s", sessionID, pending.Move)

	raw := game.RawMove(pending.Move)
	state := session.State()
	return game.ToolResult{
		Operation:    game.OpPollHumanMove,
		SessionID:    sessionID,
		CurrentState: &state,
		LastMove:     &raw,
		NextAction:   s.nextAction(game.PhaseAwaitingAgentMove),
		HumanText:    s.printer.Sprintf(i18n.KeyPollReceived, pending.Move.String()),
	}, nil
}

// Finish destroys the session. An unknown session yields a "not found" result
// rather than an error so the agent can treat it as already cleaned up.
func (s *Service) Finish(ctx context.Context, sessionID string) (game.ToolResult, error) {
	ctx, span := s.tracer.Start(ctx, "protocol.finish", trace.WithAttributes(
		attribute.String("chess.session_id", sessionID),
	))
	defer span.End()

	session, err := s.store.Get(ctx, sessionID)
	if err == nil {
		err = s.store.Delete(ctx, sessionID)
	}
	if errors.Is(err, game.ErrSessionNotFound) {
		return game.ToolResult{
			Operation: game.OpFinish,
			SessionID: sessionID,
			HumanText: s.printer.Sprintf(i18n.KeyFinishNotFound),
			ErrorCode: string(apperrors.CodeSessionNotFound),
		}, nil
	}
	if err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("finish session: %w", err))
	}
	if dropped := s.mailbox.Discard(sessionID); dropped > 0 {
		log.Printf("chess: discarded %d pending moves id=%s", dropped, sessionID)
	}
	log.Printf("chess: session finished id=%s moves=%d status=%s", sessionID, len(session.History), session.Status)

	session.Phase = game.PhaseFinished
	state := session.State()
	return game.ToolResult{
		Operation:    game.OpFinish,
		SessionID:    sessionID,
		CurrentState: &state,
		HumanText:    s.printer.Sprintf(i18n.KeyFinishOK),
	}, nil
}

// rejectMove reports a recoverable move failure with the unchanged state.
func (s *Service) rejectMove(ctx context.Context, span trace.Span, sessionID string, move game.Move, cause error) (game.ToolResult, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return game.ToolResult{}, s.fail(span, fmt.Errorf("submit move: %w", err))
	}
	code := apperrors.CodeOf(cause)
	span.SetAttributes(attribute.String("chess.error_code", string(code)))
	log.Printf("chess: move rejected id=%s move=%s code=%s", sessionID, move, code)

	state := session.State()
	result := game.ToolResult{
		Operation:    game.OpSubmitMove,
		SessionID:    sessionID,
		CurrentState: &state,
		ErrorCode:    string(code),
	}
	if errors.Is(cause, game.ErrGameAlreadyFinished) {
		result.NextAction = s.nextAction(game.PhaseFinished)
		result.HumanText = s.printer.Sprintf(i18n.KeyMoveFinished)
		return result, nil
	}
	result.NextAction = s.nextAction(game.PhaseAwaitingAgentMove)
	result.HumanText = s.printer.Sprintf(i18n.KeyMoveInvalid, move.String())
	return result, nil
}

func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(otelcodes.Error, err.Error())
	return err
}

type noopBroadcaster struct{}

func (noopBroadcaster) Notify(context.Context, string, game.State) {}
