package app

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/louisbranch/chess-mcp/internal/services/chess/game"
)

// sessionViews is the passive query surface.
type sessionViews interface {
	Sessions(ctx context.Context) ([]game.Summary, error)
	State(ctx context.Context, sessionID string) (game.State, error)
}

func newHandler(views sessionViews, ws http.Handler, mcpHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/up", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
	mux.HandleFunc("GET /games", func(w http.ResponseWriter, r *http.Request) {
		sessions, err := views.Sessions(r.Context())
		if err != nil {
			log.Printf("chess: list games failed err=%v", err)
			http.Error(w, "failed to list games", http.StatusInternalServerError)
			return
		}
		ids := make([]string, 0, len(sessions))
		for _, session := range sessions {
			ids = append(ids, session.SessionID)
		}
		writeJSON(w, http.StatusOK, ids)
	})
	mux.HandleFunc("GET /state/{id}", func(w http.ResponseWriter, r *http.Request) {
		state, err := views.State(r.Context(), r.PathValue("id"))
		if errors.Is(err, game.ErrSessionNotFound) {
			http.Error(w, "Game not found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("chess: read game state failed err=%v", err)
			http.Error(w, "failed to read game", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, state)
	})
	mux.Handle("/ws", ws)
	if mcpHandler != nil {
		mux.Handle("/mcp", mcpHandler)
	}
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("chess: write response failed err=%v", err)
	}
}
