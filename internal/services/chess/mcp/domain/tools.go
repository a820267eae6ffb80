package domain

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	apperrors "github.com/louisbranch/chess-mcp/internal/platform/errors"
	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

// toolCallTimeout bounds every tool except poll_human_move, whose wait is
// bounded by the protocol poll window.
const toolCallTimeout = 10 * time.Second

// Protocol is the turn protocol consumed by the tool handlers.
type Protocol interface {
	Start(ctx context.Context) (game.ToolResult, error)
	SubmitMove(ctx context.Context, sessionID string, move game.Move) (game.ToolResult, error)
	PollHumanMove(ctx context.Context, sessionID string) (game.ToolResult, error)
	Finish(ctx context.Context, sessionID string) (game.ToolResult, error)
}

// StartInput represents the MCP tool input for starting a game.
type StartInput struct{}

// SubmitMoveInput represents the MCP tool input for submitting a move.
type SubmitMoveInput struct {
	SessionID string    `json:"session_id" jsonschema:"game session identifier returned by start"`
	Move      game.Move `json:"move" jsonschema:"move to play for the side to move"`
}

// SessionInput represents the MCP tool input for session-scoped tools.
type SessionInput struct {
	SessionID string `json:"session_id" jsonschema:"game session identifier returned by start"`
}

// StartTool defines the MCP tool schema for starting a game.
func StartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        string(game.OpStart),
		Description: "Starts a new chess game against a human in the browser. The agent plays white and moves first. Follow next_action in every result.",
	}
}

// SubmitMoveTool defines the MCP tool schema for submitting a move.
func SubmitMoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        string(game.OpSubmitMove),
		Description: "Applies a move for the side to move: the agent's own move, or the human move returned by poll_human_move. Illegal moves are reported with error_code and can be retried.",
	}
}

// PollHumanMoveTool defines the MCP tool schema for waiting on the human.
func PollHumanMoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        string(game.OpPollHumanMove),
		Description: "Waits for the human's next move and returns it unapplied in last_move. Submit it with submit_move. If next_action is poll_human_move, call again.",
	}
}

// FinishTool defines the MCP tool schema for ending a game.
func FinishTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        string(game.OpFinish),
		Description: "Ends the game and discards its session. Unknown sessions report not found.",
	}
}

// StartHandler executes a start request.
func StartHandler(protocol Protocol) mcp.ToolHandlerFor[StartInput, game.ToolResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StartInput) (*mcp.CallToolResult, game.ToolResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
		defer cancel()

		result, err := protocol.Start(runCtx)
		if err != nil {
			return nil, game.ToolResult{}, fmt.Errorf("start failed: %w", err)
		}
		return textResult(result), result, nil
	}
}

// SubmitMoveHandler executes a submit move request.
func SubmitMoveHandler(protocol Protocol) mcp.ToolHandlerFor[SubmitMoveInput, game.ToolResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SubmitMoveInput) (*mcp.CallToolResult, game.ToolResult, error) {
		sessionID, err := requireSessionID(input.SessionID)
		if err != nil {
			return nil, game.ToolResult{}, err
		}
		runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
		defer cancel()

		result, err := protocol.SubmitMove(runCtx, sessionID, input.Move)
		if err != nil {
			return nil, game.ToolResult{}, fmt.Errorf("submit move failed: %w", err)
		}
		return textResult(result), result, nil
	}
}

// PollHumanMoveHandler executes a poll request.
func PollHumanMoveHandler(protocol Protocol) mcp.ToolHandlerFor[SessionInput, game.ToolResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, game.ToolResult, error) {
		sessionID, err := requireSessionID(input.SessionID)
		if err != nil {
			return nil, game.ToolResult{}, err
		}
		result, err := protocol.PollHumanMove(ctx, sessionID)
		if err != nil {
			return nil, game.ToolResult{}, fmt.Errorf("poll human move failed: %w", err)
		}
		return textResult(result), result, nil
	}
}

// FinishHandler executes a finish request.
func FinishHandler(protocol Protocol) mcp.ToolHandlerFor[SessionInput, game.ToolResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SessionInput) (*mcp.CallToolResult, game.ToolResult, error) {
		sessionID, err := requireSessionID(input.SessionID)
		if err != nil {
			return nil, game.ToolResult{}, err
		}
		runCtx, cancel := context.WithTimeout(ctx, toolCallTimeout)
		defer cancel()

		result, err := protocol.Finish(runCtx, sessionID)
		if err != nil {
			return nil, game.ToolResult{}, fmt.Errorf("finish failed: %w", err)
		}
		return textResult(result), result, nil
	}
}

func requireSessionID(value string) (string, error) {
	sessionID := strings.TrimSpace(value)
	if sessionID == "" {
		return "", apperrors.New(apperrors.CodeInvalidArgument, "session_id is required")
	}
	return sessionID, nil
}

func textResult(result game.ToolResult) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: result.HumanText}},
	}
}
