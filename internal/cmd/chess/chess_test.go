package chess

import (
	"context"
	"flag"
	"testing"
	"time"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("chess", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "localhost:3000" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport, got %q", cfg.Transport)
	}
	if cfg.PortAttempts != 10 {
		t.Fatalf("expected default port attempts, got %d", cfg.PortAttempts)
	}
	if cfg.PollMinDelay != 1200*time.Millisecond {
		t.Fatalf("expected default poll min delay, got %s", cfg.PollMinDelay)
	}
	if cfg.PollWindow != 25*time.Second {
		t.Fatalf("expected default poll window, got %s", cfg.PollWindow)
	}
	if cfg.BroadcastScope != "session" {
		t.Fatalf("expected default broadcast scope, got %q", cfg.BroadcastScope)
	}
	if cfg.Locale != "en-US" {
		t.Fatalf("expected default locale, got %q", cfg.Locale)
	}
}

func TestParseConfigOverrides(t *testing.T) {
	t.Setenv("CHESS_MCP_HTTP_ADDR", "env-host:4000")
	t.Setenv("CHESS_MCP_POLL_WINDOW", "5s")
	t.Setenv("CHESS_MCP_TRANSPORT", "http")

	fs := flag.NewFlagSet("chess", flag.ContinueOnError)
	args := []string{
		"-http-addr", "flag-host:5000",
		"-port", "5001",
		"-poll-min-delay", "250ms",
		"-broadcast-scope", "all",
		"-locale", "pt-BR",
	}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-host:5000" {
		t.Fatalf("expected flag http addr, got %q", cfg.HTTPAddr)
	}
	if cfg.Port != 5001 {
		t.Fatalf("expected flag port, got %d", cfg.Port)
	}
	if cfg.PollMinDelay != 250*time.Millisecond {
		t.Fatalf("expected flag poll min delay, got %s", cfg.PollMinDelay)
	}
	if cfg.PollWindow != 5*time.Second {
		t.Fatalf("expected env poll window, got %s", cfg.PollWindow)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
	if cfg.BroadcastScope != "all" || cfg.Locale != "pt-BR" {
		t.Fatalf("unexpected scope/locale: %q %q", cfg.BroadcastScope, cfg.Locale)
	}
}

func TestParseConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string][]string{
		"transport": {"-transport", "websocket"},
		"scope":     {"-broadcast-scope", "room"},
		"port":      {"-port", "70000"},
		"delay":     {"-poll-min-delay", "-1s"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("chess", flag.ContinueOnError)
			if _, err := ParseConfig(fs, args); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestParseConfigRejectsBadEnv(t *testing.T) {
	t.Setenv("CHESS_MCP_POLL_WINDOW", "soon")
	fs := flag.NewFlagSet("chess", flag.ContinueOnError)
	if _, err := ParseConfig(fs, nil); err == nil {
		t.Fatal("expected env parse error")
	}
}

func TestRunRejectsUnsupportedTransport(t *testing.T) {
	err := Run(context.Background(), Config{HTTPAddr: "127.0.0.1:0", Transport: "websocket"})
	if err == nil {
		t.Fatal("expected error for unsupported transport")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, Config{HTTPAddr: "127.0.0.1:0", Transport: "http", BroadcastScope: "session"})
	}()
	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("run did not stop after cancel")
	}
}
