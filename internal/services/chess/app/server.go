// Package app composes the chess service: session store, rules engine, move
// mailbox, turn protocol, viewer websocket and MCP server behind one HTTP
// listener.
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/louisbranch/chess-mcp/internal/platform/timeouts"
	"github.com/louisbranch/chess-mcp/internal/services/chess/mailbox"
	mcpservice "github.com/louisbranch/chess-mcp/internal/services/chess/mcp/service"
	"github.com/louisbranch/chess-mcp/internal/services/chess/protocol"
	"github.com/louisbranch/chess-mcp/internal/services/chess/realtime"
	"github.com/louisbranch/chess-mcp/internal/services/chess/rules"
	"github.com/louisbranch/chess-mcp/internal/services/chess/storage/memory"
)

// Config defines the inputs for the chess process.
type Config struct {
	HTTPAddr     string
	Port         int
	PortAttempts int
	Transport    mcpservice.Transport
	// MCPTransport replaces stdio when Transport is stdio.
	MCPTransport      mcp.Transport
	PollMinDelay      time.Duration
	PollWindow        time.Duration
	BroadcastScope    realtime.Scope
	Locale            language.Tag
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration
}

// Server hosts the chess HTTP surface and the MCP server.
type Server struct {
	config     Config
	httpServer *http.Server
	listener   net.Listener
	mcpServer  *mcp.Server
	hub        *realtime.Hub
}

// NewServer wires every component without binding a port.
func NewServer(config Config) (*Server, error) {
	if strings.TrimSpace(config.HTTPAddr) == "" {
		return nil, errors.New("http address is required")
	}
	if config.Transport == "" {
		config.Transport = mcpservice.TransportStdio
	}
	if config.PortAttempts <= 0 {
		config.PortAttempts = 1
	}
	if config.ReadHeaderTimeout <= 0 {
		config.ReadHeaderTimeout = timeouts.ReadHeader
	}
	if config.ShutdownTimeout <= 0 {
		config.ShutdownTimeout = timeouts.Shutdown
	}

	store := memory.New()
	moves := mailbox.New()
	hub := realtime.NewHub(config.BroadcastScope)
	svc := protocol.NewService(store, rules.New(), moves, hub, protocol.Options{
		PollMinDelay: config.PollMinDelay,
		PollWindow:   config.PollWindow,
		Locale:       config.Locale,
	})
	gateway := protocol.NewGateway(store, moves)

	mcpServer, err := mcpservice.NewServer(mcpservice.Deps{Protocol: svc, Reader: gateway})
	if err != nil {
		return nil, fmt.Errorf("init MCP server: %w", err)
	}

	var mcpHandler http.Handler
	if config.Transport == mcpservice.TransportHTTP {
		mcpHandler = mcpservice.HTTPHandler(mcpServer)
	}

	return &Server{
		config: config,
		httpServer: &http.Server{
			Handler:           newHandler(gateway, realtime.NewHandler(hub, gateway), mcpHandler),
			ReadHeaderTimeout: config.ReadHeaderTimeout,
		},
		mcpServer: mcpServer,
		hub:       hub,
	}, nil
}

// Run creates and serves a chess server until the context ends or the stdio
// MCP client disconnects.
func Run(ctx context.Context, config Config) error {
	server, err := NewServer(config)
	if err != nil {
		return fmt.Errorf("init chess server: %w", err)
	}
	if _, err := server.Listen(); err != nil {
		return err
	}
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("serve chess: %w", err)
	}
	return nil
}

// Listen binds the HTTP listener, moving to the next port while the address
// is in use.
func (s *Server) Listen() (net.Addr, error) {
	if s == nil {
		return nil, errors.New("chess server is nil")
	}
	listener, err := listenWithFallback(s.config.HTTPAddr, s.config.Port, s.config.PortAttempts)
	if err != nil {
		return nil, err
	}
	s.listener = listener
	return listener.Addr(), nil
}

// Serve runs HTTP and, for the stdio transport, MCP until ctx ends. Either
// side stopping stops the other.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("chess server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	if s.listener == nil {
		if _, err := s.Listen(); err != nil {
			return err
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	log.Printf("chess server listening on %s transport=%s", s.listener.Addr(), s.config.Transport)

	group.Go(func() error {
		err := s.httpServer.Serve(s.listener)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	if s.config.Transport == mcpservice.TransportStdio {
		group.Go(func() error {
			transport := s.config.MCPTransport
			if transport == nil {
				transport = &mcp.StdioTransport{}
			}
			if err := mcpservice.Serve(groupCtx, s.mcpServer, transport); err != nil {
				log.Printf("chess: MCP stdio session ended err=%v", err)
			} else {
				log.Printf("chess: MCP stdio session ended")
			}
			// The agent disconnected; stop serving viewers too.
			return errStdioClosed
		})
	}

	err := group.Wait()
	if errors.Is(err, errStdioClosed) {
		return nil
	}
	return err
}

var errStdioClosed = errors.New("mcp stdio closed")

// Addr returns the bound listener address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s == nil || s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Viewers returns the number of connected realtime viewers.
func (s *Server) Viewers() int {
	return s.hub.Viewers()
}
