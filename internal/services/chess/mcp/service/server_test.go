package service

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
	"github.com/louisbranch/chess-mcp/internal/services/chess/mailbox"
	"github.com/louisbranch/chess-mcp/internal/services/chess/protocol"
	"github.com/louisbranch/chess-mcp/internal/services/chess/rules"
	"github.com/louisbranch/chess-mcp/internal/services/chess/storage/memory"
)

type harness struct {
	server  *mcp.Server
	gateway *protocol.Gateway
}

func newHarness(t *testing.T) harness {
	t.Helper()
	store := memory.New()
	mb := mailbox.New()
	svc := protocol.NewService(store, rules.New(), mb, nil, protocol.Options{
		PollMinDelay: 10 * time.Millisecond,
		PollWindow:   500 * time.Millisecond,
	})
	gateway := protocol.NewGateway(store, mb)
	server, err := NewServer(Deps{Protocol: svc, Reader: gateway})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return harness{server: server, gateway: gateway}
}

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- Serve(ctx, server, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("connect client: %v", err)
	}
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		select {
		case <-serveErr:
		case <-time.After(2 * time.Second):
			t.Error("server did not stop")
		}
	})
	return session
}

func callTool(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) (*mcp.CallToolResult, game.ToolResult) {
	t.Helper()
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		t.Fatalf("call %s: %v", name, err)
	}
	var out game.ToolResult
	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		if err != nil {
			t.Fatalf("marshal structured content: %v", err)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("decode structured content: %v", err)
		}
	}
	return result, out
}

func TestParseTransport(t *testing.T) {
	for input, want := range map[string]Transport{"": TransportStdio, "stdio": TransportStdio, "HTTP": TransportHTTP} {
		got, err := ParseTransport(input)
		if err != nil {
			t.Fatalf("ParseTransport(%q): %v", input, err)
		}
		if got != want {
			t.Fatalf("ParseTransport(%q) = %q, want %q", input, got, want)
		}
	}
	if _, err := ParseTransport("websocket"); err == nil || !strings.Contains(err.Error(), "not supported") {
		t.Fatalf("expected not supported error, got %v", err)
	}
}

func TestNewServerRequiresProtocol(t *testing.T) {
	if _, err := NewServer(Deps{}); err == nil {
		t.Fatal("expected error without protocol")
	}
}

func TestServeRejectsNilServer(t *testing.T) {
	if err := Serve(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for nil server")
	}
}

func TestListTools(t *testing.T) {
	session := connect(t, newHarness(t).server)
	tools, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("list tools: %v", err)
	}
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	sort.Strings(names)
	want := []string{"finish", "poll_human_move", "start", "submit_move"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Fatalf("tools = %v, want %v", names, want)
	}
}

func TestGameOverMCP(t *testing.T) {
	h := newHarness(t)
	session := connect(t, h.server)

	_, started := callTool(t, session, "start", map[string]any{})
	if started.SessionID == "" {
		t.Fatal("expected session id")
	}
	if started.NextAction == nil || started.NextAction.Tool != game.OpSubmitMove {
		t.Fatalf("next action = %+v", started.NextAction)
	}

	result, moved := callTool(t, session, "submit_move", map[string]any{
		"session_id": started.SessionID,
		"move":       map[string]any{"from": "e2", "to": "e4"},
	})
	if result.IsError {
		t.Fatalf("submit move failed: %+v", result.Content)
	}
	if moved.NextAction == nil || moved.NextAction.Tool != game.OpPollHumanMove {
		t.Fatalf("next action = %+v", moved.NextAction)
	}
	if text, ok := result.Content[0].(*mcp.TextContent); !ok || text.Text != "Moved e4." {
		t.Fatalf("content = %+v", result.Content)
	}

	if _, err := h.gateway.SubmitHumanMove(context.Background(), started.SessionID, game.Move{From: "e7", To: "e5"}); err != nil {
		t.Fatalf("human move: %v", err)
	}
	_, polled := callTool(t, session, "poll_human_move", map[string]any{"session_id": started.SessionID})
	if polled.LastMove == nil || polled.LastMove.From != "e7" {
		t.Fatalf("last move = %+v", polled.LastMove)
	}
	if polled.NextAction == nil || polled.NextAction.Tool != game.OpSubmitMove {
		t.Fatalf("next action = %+v", polled.NextAction)
	}

	_, illegal := callTool(t, session, "submit_move", map[string]any{
		"session_id": started.SessionID,
		"move":       map[string]any{"from": "e5", "to": "e3"},
	})
	if illegal.ErrorCode != "ILLEGAL_MOVE" {
		t.Fatalf("error code = %q", illegal.ErrorCode)
	}

	_, finished := callTool(t, session, "finish", map[string]any{"session_id": started.SessionID})
	if finished.NextAction != nil {
		t.Fatalf("next action = %+v, want nil", finished.NextAction)
	}
	_, missing := callTool(t, session, "finish", map[string]any{"session_id": started.SessionID})
	if missing.ErrorCode != "SESSION_NOT_FOUND" {
		t.Fatalf("error code = %q", missing.ErrorCode)
	}
}

func TestUnknownSessionIsToolError(t *testing.T) {
	session := connect(t, newHarness(t).server)
	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "poll_human_move",
		Arguments: map[string]any{"session_id": "missing"},
	})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected tool error for unknown session")
	}
}

func TestSessionResources(t *testing.T) {
	h := newHarness(t)
	session := connect(t, h.server)
	_, started := callTool(t, session, "start", map[string]any{})

	list, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "chess://sessions"})
	if err != nil {
		t.Fatalf("read sessions: %v", err)
	}
	if len(list.Contents) != 1 || !strings.Contains(list.Contents[0].Text, started.SessionID) {
		t.Fatalf("sessions resource = %+v", list.Contents)
	}

	state, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "chess://session/" + started.SessionID})
	if err != nil {
		t.Fatalf("read state: %v", err)
	}
	if !strings.Contains(state.Contents[0].Text, `"side_to_move": "white"`) {
		t.Fatalf("state resource = %s", state.Contents[0].Text)
	}
}

func TestHTTPHandlerServesStreamableTransport(t *testing.T) {
	srv := httptest.NewServer(HTTPHandler(newHarness(t).server))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "v0.0.1"}, nil)
	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{Endpoint: srv.URL}, nil)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer session.Close()

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "start", Arguments: map[string]any{}})
	if err != nil {
		t.Fatalf("call start: %v", err)
	}
	if result.IsError {
		t.Fatalf("start failed: %+v", result.Content)
	}
}
