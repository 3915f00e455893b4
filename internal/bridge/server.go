// Package bridge exposes the message hub to the real browser extension over a
// localhost HTTP API. The extension polls for commands and posts statuses.
package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sandeepkv93/questd/internal/bus"
)

const (
	MaxStatusBytes  = 64 << 10
	maxDrainPerPoll = 64
)

type Options struct {
	// Token, when set, is required as a Bearer token on the /v1 routes.
	Token  string
	Logger *slog.Logger
}

type Server struct {
	hub   *bus.Hub
	token string
	log   *slog.Logger
}

func NewServer(hub *bus.Hub, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{hub: hub, token: opts.Token, log: opts.Logger.With("component", "bridge")}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/v1", func(r chi.Router) {
		if s.token != "" {
			r.Use(BearerToken(s.token))
		}
		r.Get("/commands", s.handleCommands)
		r.Post("/status", s.handleStatus)
	})
	return r
}

// handleCommands drains the requests queued since the last poll.
func (s *Server) handleCommands(w http.ResponseWriter, r *http.Request) {
	pending := make([]bus.Request, 0)
drain:
	for len(pending) < maxDrainPerPoll {
		select {
		case req := <-s.hub.Requests():
			pending = append(pending, req)
		default:
			break drain
		}
	}
	writeJSON(w, http.StatusOK, pending)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxStatusBytes)
	var resp bus.Response
	if err := json.NewDecoder(r.Body).Decode(&resp); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "status body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "invalid status message", http.StatusBadRequest)
		return
	}
	accepted := s.hub.Deliver(resp)
	if !accepted {
		s.log.Debug("foreign message type ignored", "type", resp.Type)
	}
	writeJSON(w, http.StatusAccepted, map[string]bool{"accepted": accepted})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

// ListenAndServe serves the bridge until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("bridge listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("bridge server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
