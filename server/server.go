package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/poiesic/poetica/core"
	"github.com/poiesic/poetica/filter"
	"github.com/poiesic/poetica/storage"
	"github.com/rs/cors"
)

const shutdownTimeout = 5 * time.Second

// Server serves the catalog over HTTP.
type Server struct {
	poems          storage.PoemRepository
	allowedOrigins []string
	logger         *slog.Logger
}

// Option configures a Server.
type Option func(*Server) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithAllowedOrigins sets the CORS origins. Default allows every origin.
func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.allowedOrigins = origins
		return nil
	}
}

// NewServer creates a new catalog server.
func NewServer(poems storage.PoemRepository, opts ...Option) (*Server, error) {
	if poems == nil {
		return nil, ErrPoemRepositoryRequired
	}

	s := &Server{
		poems:          poems,
		allowedOrigins: []string{"*"},
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Handler returns the CORS-wrapped request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /poems_minimal.json", s.handleCatalog)
	mux.HandleFunc("GET /api/poems/{id}", s.handlePoem)
	mux.HandleFunc("GET /api/sections", s.handleSections)

	c := cors.New(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodHead},
	})
	return c.Handler(mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving catalog", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	poems, err := s.poems.ListPoems(r.Context())
	if err != nil {
		s.internalError(w, "listing poems", err)
		return
	}
	if poems == nil {
		poems = []*core.Poem{}
	}
	s.writeJSON(w, http.StatusOK, poems)
}

func (s *Server) handlePoem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "poem id must be an integer"})
		return
	}

	poem, err := s.poems.GetPoem(r.Context(), core.PoemID(id))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.writeJSON(w, http.StatusNotFound, errorResponse{Error: "poem not found"})
			return
		}
		s.internalError(w, "getting poem", err)
		return
	}
	s.writeJSON(w, http.StatusOK, poem)
}

func (s *Server) handleSections(w http.ResponseWriter, r *http.Request) {
	poems, err := s.poems.ListPoems(r.Context())
	if err != nil {
		s.internalError(w, "listing poems", err)
		return
	}
	s.writeJSON(w, http.StatusOK, filter.DistinctSections(poems))
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	s.logger.Error(msg, "err", err)
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("encode error", "err", err)
	}
}
