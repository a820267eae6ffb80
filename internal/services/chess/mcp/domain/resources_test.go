package domain

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

type fakeReader struct {
	sessions []game.Summary
	states   map[string]game.State
}

func (f fakeReader) Sessions(context.Context) ([]game.Summary, error) {
	return f.sessions, nil
}

func (f fakeReader) State(_ context.Context, sessionID string) (game.State, error) {
	state, ok := f.states[sessionID]
	if !ok {
		return game.State{}, game.ErrSessionNotFound
	}
	return state, nil
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestSessionListResourceHandler(t *testing.T) {
	reader := fakeReader{sessions: []game.Summary{{SessionID: "g1"}, {SessionID: "g2"}}}
	result, err := SessionListResourceHandler(reader)(context.Background(), readRequest(sessionsURI))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(result.Contents) != 1 || result.Contents[0].MIMEType != "application/json" {
		t.Fatalf("unexpected contents: %+v", result.Contents)
	}
	var payload struct {
		Sessions []game.Summary `json:"sessions"`
	}
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if len(payload.Sessions) != 2 || payload.Sessions[1].SessionID != "g2" {
		t.Fatalf("sessions = %+v", payload.Sessions)
	}
}

func TestSessionStateResourceHandler(t *testing.T) {
	reader := fakeReader{states: map[string]game.State{"g1": {SessionID: "g1", Status: game.StatusCheck}}}
	handler := SessionStateResourceHandler(reader)

	result, err := handler(context.Background(), readRequest("chess://session/g1"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var state game.State
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &state); err != nil {
		t.Fatalf("decode state: %v", err)
	}
	if state.Status != game.StatusCheck {
		t.Fatalf("status = %q", state.Status)
	}

	for _, uri := range []string{"chess://session/missing", "chess://session/", "campaign://g1", ""} {
		if _, err := handler(context.Background(), readRequest(uri)); err == nil {
			t.Fatalf("expected error for %q", uri)
		}
	}
	if _, err := handler(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil request")
	}
}
