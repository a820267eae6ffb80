package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Port  int           `env:"CHESS_MCP_TEST_PORT" envDefault:"123"`
	Delay time.Duration `env:"CHESS_MCP_TEST_DELAY" envDefault:"1200ms"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Delay != 1200*time.Millisecond {
		t.Fatalf("expected default delay 1.2s, got %s", cfg.Delay)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("CHESS_MCP_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvWithLookup(t *testing.T) {
	var cfg envTestConfig
	lookup := func(key string) (string, bool) {
		if key == "CHESS_MCP_TEST_DELAY" {
			return "3s", true
		}
		return "", false
	}

	if err := ParseEnvWithLookup(&cfg, lookup); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
	if cfg.Delay != 3*time.Second {
		t.Fatalf("expected lookup delay 3s, got %s", cfg.Delay)
	}
}
