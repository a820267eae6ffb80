// Package chess parses chess command flags and composes the service entrypoint.
package chess

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/louisbranch/chess-mcp/internal/platform/cmd"
	"github.com/louisbranch/chess-mcp/internal/services/chess/app"
	"github.com/louisbranch/chess-mcp/internal/services/chess/i18n"
	mcpservice "github.com/louisbranch/chess-mcp/internal/services/chess/mcp/service"
	"github.com/louisbranch/chess-mcp/internal/services/chess/realtime"
)

// Config holds chess command configuration.
type Config struct {
	HTTPAddr       string        `env:"CHESS_MCP_HTTP_ADDR"       envDefault:"localhost:3000"`
	Port           int           `env:"CHESS_MCP_PORT"            envDefault:"0"`
	PortAttempts   int           `env:"CHESS_MCP_PORT_ATTEMPTS"   envDefault:"10"`
	Transport      string        `env:"CHESS_MCP_TRANSPORT"       envDefault:"stdio"`
	PollMinDelay   time.Duration `env:"CHESS_MCP_POLL_MIN_DELAY"  envDefault:"1200ms"`
	PollWindow     time.Duration `env:"CHESS_MCP_POLL_WINDOW"     envDefault:"25s"`
	BroadcastScope string        `env:"CHESS_MCP_BROADCAST_SCOPE" envDefault:"session"`
	Locale         string        `env:"CHESS_MCP_LOCALE"          envDefault:"en-US"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address for viewers and MCP over HTTP")
	fs.IntVar(&cfg.Port, "port", cfg.Port, "HTTP port, overriding the one in -http-addr")
	fs.IntVar(&cfg.PortAttempts, "port-attempts", cfg.PortAttempts, "ports to try when the HTTP port is in use")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "MCP transport (stdio or http)")
	fs.DurationVar(&cfg.PollMinDelay, "poll-min-delay", cfg.PollMinDelay, "minimum duration of a poll_human_move call")
	fs.DurationVar(&cfg.PollWindow, "poll-window", cfg.PollWindow, "how long poll_human_move waits for a move")
	fs.StringVar(&cfg.BroadcastScope, "broadcast-scope", cfg.BroadcastScope, "viewer update scope (session or all)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for agent-facing text")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := mcpservice.ParseTransport(c.Transport); err != nil {
		return err
	}
	if _, err := realtime.ParseScope(c.BroadcastScope); err != nil {
		return err
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port %d is out of range", c.Port)
	}
	if c.PollMinDelay < 0 || c.PollWindow < 0 {
		return fmt.Errorf("poll durations must not be negative")
	}
	return nil
}

// Run builds the chess app and serves until ctx ends or the stdio agent leaves.
func Run(ctx context.Context, cfg Config) error {
	transport, err := mcpservice.ParseTransport(cfg.Transport)
	if err != nil {
		return err
	}
	scope, err := realtime.ParseScope(cfg.BroadcastScope)
	if err != nil {
		return err
	}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceChess, func(ctx context.Context) error {
		return app.Run(ctx, app.Config{
			HTTPAddr:       cfg.HTTPAddr,
			Port:           cfg.Port,
			PortAttempts:   cfg.PortAttempts,
			Transport:      transport,
			PollMinDelay:   cfg.PollMinDelay,
			PollWindow:     cfg.PollWindow,
			BroadcastScope: scope,
			Locale:         i18n.ParseTag(cfg.Locale),
		})
	})
}
