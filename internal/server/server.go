// Package server exposes a running animator over HTTP and websocket so an
// external renderer can draw the turns as they happen.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/SeamusWaldron/cubesim"
)

const (
	maxBodySize     = 8192
	shutdownTimeout = 5 * time.Second
)

// Server routes HTTP requests to an Engine.
type Server struct {
	addr   string
	engine *Engine
	logger *zap.Logger
	router *mux.Router
}

// New builds the routes for engine.
func New(addr string, engine *Engine, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{addr: addr, engine: engine, logger: logger, router: mux.NewRouter()}

	s.router.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	s.router.HandleFunc("/moves", s.handleMoves).Methods(http.MethodPost)
	s.router.HandleFunc("/pause", s.handlePause(true)).Methods(http.MethodPost)
	s.router.HandleFunc("/resume", s.handlePause(false)).Methods(http.MethodPost)
	s.router.HandleFunc("/ws", s.handleWebsocket).Methods(http.MethodGet)
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve runs the engine and the HTTP listener until ctx is cancelled or
// either one fails.
func (s *Server) Serve(ctx context.Context) error {
	group, groupCtx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return groupCtx },
	}

	group.Go(func() error {
		return s.engine.Run(groupCtx)
	})
	group.Go(func() error {
		s.logger.Info("listening", zap.String("addr", s.addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	resp, err := s.engine.State(r.Context())
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleMoves accepts either {"moves": "..."} or a plain-text body.
func (s *Server) handleMoves(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.fail(w, http.StatusBadRequest, err)
		return
	}

	notation := string(body)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var req MovesRequest
		if err := json.Unmarshal(body, &req); err != nil {
			s.fail(w, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err))
			return
		}
		notation = req.Moves
	}

	resp, err := s.engine.Enqueue(r.Context(), notation)
	if err != nil {
		s.fail(w, http.StatusServiceUnavailable, err)
		return
	}
	s.writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handlePause(pause bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := query(r.Context(), s.engine, func(a *cubesim.Animator) Status {
			if pause {
				a.Pause()
			} else {
				a.Resume()
			}
			return statusOf(a)
		})
		if err != nil {
			s.fail(w, http.StatusServiceUnavailable, err)
			return
		}
		s.writeJSON(w, http.StatusOK, st)
	}
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	cli, err := newClient(s.engine, s.logger, w, r)
	if err != nil {
		s.logger.Warn("upgrade failed", zap.Error(err))
		return
	}
	if err := cli.Sync(); err != nil {
		s.logger.Debug("websocket closed", zap.Error(err))
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

func (s *Server) fail(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}
