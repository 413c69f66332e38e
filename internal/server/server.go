// Package server exposes the renderer over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tipee-sa/markup"
)

// Config configures the render service.
type Config struct {
	// Addr is the listen address. Default ":8080".
	Addr string

	// Options are applied to every render.
	Options *markup.Options

	// MaxBodyBytes limits the size of a tree. Default 1 MiB.
	MaxBodyBytes int64

	// Namespace prefixes metric names. Default "markup".
	Namespace string

	// Registry receives the metrics and backs /metrics.
	// Default: a fresh prometheus.Registry.
	Registry *prometheus.Registry

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Server renders trees posted to /render.
type Server struct {
	config  Config
	logger  *slog.Logger
	metrics *metrics
	router  chi.Router
}

// New creates a Server with the given configuration.
func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = ":8080"
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = 1 << 20
	}
	if config.Namespace == "" {
		config.Namespace = "markup"
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:  config,
		logger:  logger,
		metrics: newMetrics(config.Registry, config.Namespace),
	}

	r := chi.NewRouter()
	r.Post("/render", s.handleRender)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	r.Handle("/metrics", promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is like ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("markup server listening", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("markup server stopped")
	return nil
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() {
		s.metrics.renderDuration.Observe(time.Since(start).Seconds())
	}()

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.config.MaxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	tree, err := markup.Decode(data)
	if err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	var buf bytes.Buffer
	if err := markup.Write(&buf, tree, s.config.Options); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	s.metrics.rendersTotal.WithLabelValues("ok").Inc()
	s.metrics.renderedBytes.Add(float64(buf.Len()))
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	_, _ = buf.WriteTo(w)
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.metrics.rendersTotal.WithLabelValues(strconv.Itoa(status)).Inc()
	s.logger.Warn("render failed", "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}
