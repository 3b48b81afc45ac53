// Package dashboard serves a read-only observation API over an affect
// manager: a JSON snapshot endpoint and a websocket that pushes the
// snapshot on connect and on every Broadcast call. cmd/affectd calls
// Broadcast after each decay tick; stimuli applied by other processes
// (affectctl, mcpglue) are not pushed until the next tick.
package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/affectengine/affectengine/internal/affect"
)

// Server owns the mux, the manager it reads from, and the broadcaster that
// feeds GET /ws. Shaped after internal/shortlink/server.go's
// "one mux, one handler, graceful shutdown on ctx" idiom.
type Server struct {
	addr     string
	manager  *affect.Manager
	logger   zerolog.Logger
	hub      *hub
	httpSrv  *http.Server
}

// New builds a dashboard server bound to addr, reading snapshots through
// manager.
func New(addr string, manager *affect.Manager, logger zerolog.Logger) *Server {
	return &Server{
		addr:    addr,
		manager: manager,
		logger:  logger,
		hub:     newHub(),
	}
}

// RunWithContext starts the HTTP server and respects ctx for graceful
// shutdown; it blocks until the server exits. Run in a goroutine.
func (s *Server) RunWithContext(ctx context.Context) {
	mux := http.NewServeMux()
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/ws", s.handleWebsocket)

	s.httpSrv = &http.Server{Addr: s.addr, Handler: mux}

	go func() {
		<-ctx.Done()
		s.logger.Info().Msg("shutting down dashboard server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	s.logger.Info().Str("addr", s.addr).Msg("dashboard server listening")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error().Err(err).Msg("dashboard server exited")
	}
}

// Broadcast pushes snap to every connected websocket client. Call this
// after every decay tick or applied stimulus.
func (s *Server) Broadcast(snap affect.Snapshot) {
	s.hub.broadcast(snap)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	state := s.manager.Read()
	decayed := s.manager.ApplyDecay(state, time.Now().UTC())
	snap := affect.BuildSnapshot(decayed)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		s.logger.Error().Err(err).Msg("failed to encode snapshot")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
