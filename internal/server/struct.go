package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sportiq/sportiq-go/internal/chatbot"
)

// Config holds the HTTP server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1).
	Host string
	// Port is the TCP port to listen on (default: 8080).
	Port int
	// ReadTimeout is the maximum duration for reading the request.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration for writing the response.
	WriteTimeout time.Duration
	// ShutdownTimeout is the maximum duration for a graceful shutdown.
	ShutdownTimeout time.Duration
	// Logger is the structured logger used by the server and its handlers.
	// If nil, [logging.New] is used.
	Logger *slog.Logger
	// Pingers is the ordered list of dependency probes run by GET /api/ready.
	// If empty, /api/ready returns 200 with no checks (liveness-only mode).
	Pingers []Pinger
	// RateLimit is the sustained request rate allowed per IP on rate-limited
	// endpoints (requests/second). Defaults to 10 if zero.
	RateLimit float64
	// RateBurst is the maximum instantaneous burst per IP. Defaults to 20 if zero.
	RateBurst int
	// APIKey is the Bearer token required on all protected /api/* routes.
	// If empty, authentication is disabled (development mode).
	APIKey string
}

// answerer is the interface handleAsk calls to answer a question.
// *chatbot.Session satisfies it; tests inject a fake.
type answerer interface {
	// Ask answers the question, returning the final answer text along with
	// its routing category and outcome.
	Ask(ctx context.Context, question string) chatbot.Answer
}

// Server is the HTTP server that exposes the chatbot over a REST API.
type Server struct {
	// session answers questions; set to a *chatbot.Session in production,
	// overridden by a fake in tests.
	session answerer
	// cfg holds the resolved server configuration.
	cfg *Config
	// httpServer is the underlying net/http server.
	httpServer *http.Server
	// log is the structured logger for this server instance.
	log *slog.Logger
	// pingers is the ordered list of dependency probes for GET /api/ready.
	pingers []Pinger
	// metrics holds the Prometheus metrics registered for this instance.
	metrics *serverMetrics
	// stopRL stops the rate limiter's background eviction goroutine on shutdown.
	stopRL func()
}

// askRequest is the JSON body for POST /api/ask.
type askRequest struct {
	// Question is the user's natural language question.
	Question string `json:"question"`
}

// askResponse is the JSON response for POST /api/ask.
type askResponse struct {
	// Answer is the chatbot's final answer text.
	Answer string `json:"answer"`
	// Category is the routing category the question was classified into
	// (Factual, Comparative, Analytical, or Non-Sport).
	Category string `json:"category"`
	// Outcome describes how the answer was produced: answered, refused,
	// fallback, or error.
	Outcome string `json:"outcome"`
}
