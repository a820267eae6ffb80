package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/chess-mcp/internal/services/chess/mcp/domain"
)

const (
	serverName    = "chess-mcp"
	serverVersion = "0.1.0"

	serverInstructions = "Play chess as white against a human in the browser. Call start, then follow next_action in every result: submit_move for your move or the human move you polled, poll_human_move to wait for the human, finish when the game is over."
)

// Transport selects how MCP traffic reaches the server.
type Transport string

const (
	// TransportStdio serves MCP over the process stdin and stdout.
	TransportStdio Transport = "stdio"
	// TransportHTTP serves MCP at /mcp on the HTTP listener.
	TransportHTTP Transport = "http"
)

// ParseTransport validates a transport name.
func ParseTransport(value string) (Transport, error) {
	switch Transport(strings.ToLower(strings.TrimSpace(value))) {
	case "", TransportStdio:
		return TransportStdio, nil
	case TransportHTTP:
		return TransportHTTP, nil
	default:
		return "", fmt.Errorf("transport %q is not supported", value)
	}
}

// Deps are the collaborators the tool handlers run against.
type Deps struct {
	Protocol domain.Protocol
	Reader   domain.SessionReader
}

type registrationModule struct {
	name     string
	register func(*mcp.Server)
}

func registrationModules(deps Deps) []registrationModule {
	modules := []registrationModule{
		{
			name: "turn-tools",
			register: func(server *mcp.Server) {
				mcp.AddTool(server, domain.StartTool(), domain.StartHandler(deps.Protocol))
				mcp.AddTool(server, domain.SubmitMoveTool(), domain.SubmitMoveHandler(deps.Protocol))
				mcp.AddTool(server, domain.PollHumanMoveTool(), domain.PollHumanMoveHandler(deps.Protocol))
				mcp.AddTool(server, domain.FinishTool(), domain.FinishHandler(deps.Protocol))
			},
		},
	}
	if deps.Reader != nil {
		modules = append(modules, registrationModule{
			name: "session-resources",
			register: func(server *mcp.Server) {
				server.AddResource(domain.SessionListResource(), domain.SessionListResourceHandler(deps.Reader))
				server.AddResourceTemplate(domain.SessionStateResourceTemplate(), domain.SessionStateResourceHandler(deps.Reader))
			},
		})
	}
	return modules
}

// NewServer creates the MCP server with every chess tool and resource bound.
func NewServer(deps Deps) (*mcp.Server, error) {
	if deps.Protocol == nil {
		return nil, fmt.Errorf("MCP protocol is not configured")
	}
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})
	for _, module := range registrationModules(deps) {
		module.register(server)
	}
	return server, nil
}

// Serve runs the server on transport until ctx is canceled or the client
// disconnects. Cancellation and end of input are clean stops.
func Serve(ctx context.Context, server *mcp.Server, transport mcp.Transport) error {
	if server == nil {
		return fmt.Errorf("MCP server is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	err := server.Run(ctx, transport)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeStdio runs the server over the process stdin and stdout.
func ServeStdio(ctx context.Context, server *mcp.Server) error {
	return Serve(ctx, server, &mcp.StdioTransport{})
}

// HTTPHandler exposes the server over the streamable HTTP transport.
func HTTPHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
