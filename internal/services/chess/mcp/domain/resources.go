package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

const (
	sessionsURI         = "chess://sessions"
	sessionURIPrefix    = "chess://session/"
	sessionURITemplate  = sessionURIPrefix + "{session_id}"
	resourceContentType = "application/json"
)

// SessionReader exposes read-only session views.
type SessionReader interface {
	Sessions(ctx context.Context) ([]game.Summary, error)
	State(ctx context.Context, sessionID string) (game.State, error)
}

// SessionListResource defines the resource listing active games.
func SessionListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "sessions",
		Title:       "Active chess games",
		Description: "Active game sessions ordered by creation.",
		MIMEType:    resourceContentType,
		URI:         sessionsURI,
	}
}

// SessionStateResourceTemplate defines the resource for one game state.
func SessionStateResourceTemplate() *mcp.ResourceTemplate {
	return &mcp.ResourceTemplate{
		Name:        "session_state",
		Title:       "Chess game state",
		Description: "Board, status and move history of one game. URI format: chess://session/{session_id}",
		MIMEType:    resourceContentType,
		URITemplate: sessionURITemplate,
	}
}

// SessionListResourceHandler reads the active session list.
func SessionListResourceHandler(reader SessionReader) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		sessions, err := reader.Sessions(ctx)
		if err != nil {
			return nil, fmt.Errorf("session list failed: %w", err)
		}
		payload := struct {
			Sessions []game.Summary `json:"sessions"`
		}{Sessions: sessions}
		return jsonResource(sessionsURI, payload)
	}
}

// SessionStateResourceHandler reads one session state.
func SessionStateResourceHandler(reader SessionReader) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		if req == nil || req.Params == nil || req.Params.URI == "" {
			return nil, fmt.Errorf("session ID is required; use URI format %s", sessionURITemplate)
		}
		uri := req.Params.URI
		sessionID, err := parseSessionIDFromURI(uri)
		if err != nil {
			return nil, err
		}
		state, err := reader.State(ctx, sessionID)
		if err != nil {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, state)
	}
}

func parseSessionIDFromURI(uri string) (string, error) {
	if !strings.HasPrefix(uri, sessionURIPrefix) {
		return "", fmt.Errorf("URI must start with %q", sessionURIPrefix)
	}
	sessionID := strings.TrimSpace(strings.TrimPrefix(uri, sessionURIPrefix))
	if sessionID == "" || strings.Contains(sessionID, "/") {
		return "", fmt.Errorf("invalid session URI %q", uri)
	}
	return sessionID, nil
}

func jsonResource(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: resourceContentType,
				Text:     string(data),
			},
		},
	}, nil
}
