// Package server serves the static exercise pages to the device's browser.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/ytget/kalite-mobile/internal/logctx"
	"github.com/ytget/kalite-mobile/internal/telemetry"
)

// ExercisePage is the page opened by the browse action.
const ExercisePage = "exercises/addition_1.html"

// Config holds server settings.
type Config struct {
	Addr         string // host:port to bind
	Root         string // directory served at /
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// Server is a static file server started on demand.
type Server struct {
	cfg       Config
	telemetry *telemetry.Telemetry

	mu       sync.Mutex
	srv      *http.Server
	listener net.Listener
}

func New(cfg Config, t *telemetry.Telemetry) *Server {
	return &Server{cfg: cfg, telemetry: t}
}

// Handler returns the router serving the exercise root.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(telemetry.HTTPLogging)

	if s.telemetry.Enabled() {
		r.Handle("/metrics", s.telemetry.Handler())
	}

	r.Handle("/*", http.FileServer(http.Dir(s.cfg.Root)))

	if s.telemetry.Enabled() {
		return otelhttp.NewHandler(r, "exercise-server",
			otelhttp.WithMeterProvider(s.telemetry.MeterProvider()))
	}

	return r
}

// Start binds the listener and serves in the background. Calling Start on a
// running server does nothing.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.srv != nil {
		return nil
	}

	logger := logctx.LoggerFromContext(ctx)

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr, err)
	}

	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return logctx.WithLogger(context.Background(), logger)
		},
	}

	s.srv = srv
	s.listener = ln

	go func() {
		logger.Info("exercise server started", "addr", ln.Addr().String(), "root", s.cfg.Root)

		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("exercise server stopped", "err", err)
		}
	}()

	return nil
}

// Running reports whether the server has been started and not shut down.
func (s *Server) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srv != nil
}

// Port returns the bound port, or the configured one before Start.
func (s *Server) Port() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener != nil {
		if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
			return addr.Port
		}
	}

	_, port, err := net.SplitHostPort(s.cfg.Addr)
	if err != nil {
		return 0
	}
	p, _ := strconv.Atoi(port)
	return p
}

// PageURL returns the loopback URL of a page under the root.
func (s *Server) PageURL(page string) string {
	return fmt.Sprintf("http://127.0.0.1:%d/%s", s.Port(), strings.TrimPrefix(page, "/"))
}

// Shutdown gracefully stops a running server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.srv
	s.srv = nil
	s.listener = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down exercise server: %w", err)
	}

	logctx.LoggerFromContext(ctx).Info("exercise server stopped")

	return nil
}
