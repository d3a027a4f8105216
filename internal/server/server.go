// Package server implements the HTTP server that exposes the sports chatbot
// via a REST API alongside health, readiness, and Prometheus metrics
// endpoints. The server is started by the `sportiq serve` CLI command.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sportiq/sportiq-go/internal/logging"
)

// New constructs a Server from the provided chatbot session and config.
func New(session answerer, cfg *Config) (*Server, error) {
	return newWithRegistry(session, cfg, prometheus.NewRegistry())
}

// newWithRegistry is the test seam: it lets tests supply a fresh registry so
// metric registration never collides across instances.
func newWithRegistry(session answerer, cfg *Config, reg *prometheus.Registry) (*Server, error) {
	if session == nil {
		return nil, fmt.Errorf("server: session must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 30 * time.Second
	}
	if cfg.WriteTimeout == 0 {
		// WriteTimeout must cover a full LLM generation round trip.
		cfg.WriteTimeout = 2 * time.Minute
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if cfg.RateBurst == 0 {
		cfg.RateBurst = defaultRateBurst
	}
	log := cfg.Logger
	if log == nil {
		log = logging.New()
	}

	s := &Server{
		session: session,
		cfg:     cfg,
		log:     log,
		pingers: cfg.Pingers,
		metrics: newServerMetrics(reg),
	}

	if cfg.APIKey == "" {
		log.Warn("server: SPORTIQ_API_KEY is not set, API authentication is disabled")
	}

	rl, stopRL := newRateLimiter(cfg.RateLimit, cfg.RateBurst, log)
	s.stopRL = stopRL

	mux := http.NewServeMux()
	mux.Handle("POST /api/ask", s.instrument("ask",
		authMiddleware(cfg.APIKey, rl.middleware(http.HandlerFunc(s.handleAsk)))))
	mux.Handle("GET /api/health", s.instrument("health", http.HandlerFunc(s.handleHealth)))
	mux.Handle("GET /api/ready", s.instrument("ready", http.HandlerFunc(s.handleReady)))
	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      requestLogger(log, mux),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s, nil
}

// Start begins listening and serving HTTP requests. It blocks until the
// context is cancelled, then performs a graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.log.Info("server: listening", slog.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.stopRL()
		return fmt.Errorf("server: listen error: %w", err)
	case <-ctx.Done():
		s.stopRL()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: graceful shutdown failed: %w", err)
		}
		return nil
	}
}

// handleAsk handles POST /api/ask. It answers a single question and returns
// the answer together with its routing category and outcome.
func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Question == "" {
		http.Error(w, "question is required", http.StatusBadRequest)
		return
	}

	start := time.Now()
	answer := s.session.Ask(r.Context(), req.Question)
	elapsed := time.Since(start)

	s.metrics.askRequestsTotal.WithLabelValues(string(answer.Category), string(answer.Outcome)).Inc()
	s.metrics.askDurationSeconds.WithLabelValues(string(answer.Outcome)).Observe(elapsed.Seconds())
	s.metrics.askPassages.WithLabelValues(string(answer.Category)).Observe(float64(answer.Passages))

	log.Info("ask handled",
		slog.String("category", string(answer.Category)),
		slog.String("outcome", string(answer.Outcome)),
		slog.Duration("duration", elapsed),
	)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(askResponse{
		Answer:   answer.Text,
		Category: string(answer.Category),
		Outcome:  string(answer.Outcome),
	}); err != nil {
		log.Error("ask encode error", slog.Any("error", err))
	}
}

// handleHealth handles GET /api/health for liveness checks.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// instrument wraps next with HTTP request counting and latency observation,
// partitioned by the logical handler name rather than the raw URL path.
func (s *Server) instrument(handler string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}

		start := time.Now()
		next.ServeHTTP(rw, r)
		elapsed := time.Since(start)

		s.metrics.httpRequestsTotal.WithLabelValues(r.Method, handler, fmt.Sprintf("%d", rw.status)).Inc()
		s.metrics.httpDurationSeconds.WithLabelValues(r.Method, handler).Observe(elapsed.Seconds())
	})
}
