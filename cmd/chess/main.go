// Package main starts the chess MCP service and handles termination.
//
// The agent talks MCP over stdio (or HTTP at /mcp); browser viewers watch and
// play over the websocket at /ws on the same HTTP listener.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	chesscmd "github.com/louisbranch/chess-mcp/internal/cmd/chess"
)

func main() {
	cfg, err := chesscmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CHESS] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := chesscmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
