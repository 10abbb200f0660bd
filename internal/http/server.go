package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Clark-Hu/movie-catalog/internal/config"
	"github.com/Clark-Hu/movie-catalog/internal/service"
	"github.com/Clark-Hu/movie-catalog/internal/store"
)

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	store    *store.Store
	movies   *service.MovieService
	comments *service.CommentService
	logger   zerolog.Logger
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, st *store.Store, movies *service.MovieService, comments *service.CommentService, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		store:    st,
		movies:   movies,
		comments: comments,
		logger:   logger.With().Str("component", "http").Logger(),
	}

	r := chi.NewRouter()
	r.Use(s.withCorrelationID)
	r.Use(middleware.RealIP)
	r.Use(s.withRequestLogging)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	s.router = r

	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/", s.handleWelcome)
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Group(s.catalogRoutes)
	s.router.Route("/api", s.catalogRoutes)
}

func (s *Server) catalogRoutes(r chi.Router) {
	r.Get("/movies", s.handleListMovies)
	r.Post("/movies", s.handleFindOrFetchMovie)
	r.Get("/comments", s.handleListComments)
	r.Post("/comments", s.handleCreateComment)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start boots the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpSrv = &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(s.cfg.IdleTimeoutSecs) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("listening")
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleWelcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Hello! I'm working :)"))
}

type healthResponse struct {
	Status        string `json:"status"`
	TotalConns    int32  `json:"totalConns,omitempty"`
	IdleConns     int32  `json:"idleConns,omitempty"`
	AcquiredConns int32  `json:"acquiredConns,omitempty"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.HealthCheck(ctx); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("health check failed")
		http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	resp := healthResponse{Status: "ok"}
	if stat := s.store.Stats(); stat != nil {
		resp.TotalConns = stat.TotalConns()
		resp.IdleConns = stat.IdleConns()
		resp.AcquiredConns = stat.AcquiredConns()
	}
	s.respondJSON(w, r, http.StatusOK, resp)
}
