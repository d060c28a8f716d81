package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/klauspost/compress/gzhttp"

	"gitlab.com/codearena.net/internal/config"
	"gitlab.com/codearena.net/internal/core/ports/primary"
	authsvc "gitlab.com/codearena.net/internal/core/services/auth"
	"gitlab.com/codearena.net/internal/core/services/playlist"
	"gitlab.com/codearena.net/internal/core/services/problem"
	"gitlab.com/codearena.net/internal/core/services/submission"
	"gitlab.com/codearena.net/internal/handlers"
	"gitlab.com/codearena.net/internal/handlers/auth"
	"gitlab.com/codearena.net/internal/handlers/execute"
	"gitlab.com/codearena.net/internal/handlers/playlists"
	"gitlab.com/codearena.net/internal/handlers/problems"
	"gitlab.com/codearena.net/internal/handlers/response"
	"gitlab.com/codearena.net/internal/handlers/submissions"
)

const apiPrefix = "/api/v1"

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func(ctx context.Context) error

type ServiceProvider struct {
	submissionService submission.ISubmissionService
	problemService    problem.IProblemService
	playlistService   playlist.IPlaylistService
	authDeps          *auth.ServiceDependencies
	authenticator     authsvc.IAuthenticator
	healthChecks      map[string]HealthCheck
}

func NewServiceProvider(
	submissionService submission.ISubmissionService,
	problemService problem.IProblemService,
	playlistService playlist.IPlaylistService,
	authDeps *auth.ServiceDependencies,
	authenticator authsvc.IAuthenticator,
	healthChecks map[string]HealthCheck,
) *ServiceProvider {
	return &ServiceProvider{
		submissionService: submissionService,
		problemService:    problemService,
		playlistService:   playlistService,
		authDeps:          authDeps,
		authenticator:     authenticator,
		healthChecks:      healthChecks,
	}
}

type Server struct {
	handler         http.Handler
	cfg             *config.AppConfig
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
	srv             *http.Server
}

func NewServer(cfg *config.AppConfig, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		cfg:             cfg,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)

	api := r.PathPrefix(apiPrefix).Subrouter()
	mw := handlers.NewMiddlewareProvider(s.ServiceProvider.authenticator, s.logger)

	auth.NewHandler(s.ServiceProvider.authDeps, s.cfg.GGAuthConfig, s.cfg.HttpConfig, s.cfg.JwtConfig, s.logger).
		RegisterRoutes(api, mw)
	execute.NewHandler(s.ServiceProvider.submissionService, s.logger).RegisterRoutes(api, mw)
	problems.NewHandler(s.ServiceProvider.problemService, s.logger).RegisterRoutes(api, mw)
	submissions.NewHandler(s.ServiceProvider.submissionService, s.logger).RegisterRoutes(api, mw)
	playlists.NewHandler(s.ServiceProvider.playlistService, s.logger).RegisterRoutes(api, mw)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, response.ErrorMessage{Message: "route not found", StatusCode: http.StatusNotFound})
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response.WriteError(w, response.ErrorMessage{Message: "method not allowed", StatusCode: http.StatusMethodNotAllowed})
	})
	r.Use(s.logRequests, s.withDeadline)

	s.handler = gzhttp.GzipHandler(r)
	return nil
}

// Handler returns the routed handler; Init must have been called.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("HTTP request", "method", r.Method, "path", r.URL.Path, "elapsed", time.Since(started))
	})
}

// withDeadline cancels the request context at HttpConfig.RequestTimeout, so
// judge polling ends with a JudgeTimeoutError before the write deadline.
func (s *Server) withDeadline(next http.Handler) http.Handler {
	timeout := s.cfg.HttpConfig.RequestTimeout()
	if timeout <= 0 {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(s.ServiceProvider.healthChecks))
	for name := range s.ServiceProvider.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := map[string]string{}
	healthy := true
	for _, name := range names {
		if err := s.ServiceProvider.healthChecks[name](ctx); err != nil {
			s.logger.Warn("Health check failed", "dependency", name, "error", err)
			status[name] = err.Error()
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	if !healthy {
		response.WriteError(w, response.ErrorMessage{
			Message:    "service degraded",
			StatusCode: http.StatusServiceUnavailable,
			Details:    status,
		})
		return
	}
	response.WriteSuccess(w, http.StatusOK, s.ServiceName+" is healthy", status)
}

// Start serves in the background. The returned channel yields the listener error, if any.
func (s *Server) Start(_ context.Context) <-chan error {
	httpCfg := s.cfg.HttpConfig
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", httpCfg.Port),
		Handler:      s.handler,
		ReadTimeout:  httpCfg.ReadTimeout,
		WriteTimeout: httpCfg.WriteTimeout,
		IdleTimeout:  httpCfg.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		s.logger.Info("Server listening", "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			errCh <- err
		}
	}()
	return errCh
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}
