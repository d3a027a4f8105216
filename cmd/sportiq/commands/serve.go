package commands

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cloudwego/eino/callbacks"
	"github.com/cloudwego/eino/components/model"
	"github.com/spf13/cobra"

	"github.com/sportiq/sportiq-go/internal/budget"
	"github.com/sportiq/sportiq-go/internal/chatbot"
	"github.com/sportiq/sportiq-go/internal/embedder"
	"github.com/sportiq/sportiq-go/internal/logging"
	"github.com/sportiq/sportiq-go/internal/provider"
	"github.com/sportiq/sportiq-go/internal/rag"
	"github.com/sportiq/sportiq-go/internal/routing"
	"github.com/sportiq/sportiq-go/internal/server"
	"github.com/sportiq/sportiq-go/internal/tracing"
)

// NewServeCmd constructs the `sportiq serve` command, which starts the HTTP
// server exposing the chatbot API.
func NewServeCmd() *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the SportIQ HTTP server",
		Long: `Start the SportIQ HTTP server.

The server exposes POST /api/ask for answering questions, GET /api/health
and GET /api/ready for probes, and GET /metrics for Prometheus scraping.
Set SPORTIQ_API_KEY to require Bearer authentication on /api/ask.

Examples:
  sportiq serve
  sportiq serve --port 9090
  MODEL_PROVIDER=azure sportiq serve`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			log.Info("serve starting", slog.String("provider", os.Getenv("MODEL_PROVIDER")))

			// Setup Langfuse tracing, opt-in and a no-op if keys are absent.
			handler, flush, ok := tracing.Setup()
			if ok {
				callbacks.AppendGlobalHandlers(handler)
				defer flush()
				log.Info("langfuse tracing enabled")
			} else {
				log.Info("langfuse tracing disabled", slog.String("reason", "LANGFUSE_PUBLIC_KEY not set"))
			}

			chatModel, err := provider.NewFromEnv(ctx)
			if err != nil {
				return fmt.Errorf("serve: failed to initialise model provider: %w", err)
			}
			backend := getEnvOrDefault("MODEL_PROVIDER", "ollama")
			log.Info("provider initialised", slog.String("provider", backend))

			emb, err := embedder.NewFromEnv()
			if err != nil {
				return fmt.Errorf("serve: failed to initialise embedder: %w", err)
			}

			store, closeStore, err := buildStore(ctx, log)
			if err != nil {
				return fmt.Errorf("serve: %w", err)
			}
			defer closeStore()

			retriever, err := rag.NewRetriever(emb, store, 0)
			if err != nil {
				return fmt.Errorf("serve: failed to build retriever: %w", err)
			}

			generator, err := chatbot.NewModelGenerator(chatModel)
			if err != nil {
				return fmt.Errorf("serve: failed to build generator: %w", err)
			}

			session, err := chatbot.NewSession(&chatbot.Config{
				Router:           routing.NewRouter(retriever),
				Generator:        generator,
				MaxContextTokens: getEnvInt("MAX_CONTEXT_TOKENS", budget.DefaultMaxContextTokens),
			})
			if err != nil {
				return fmt.Errorf("serve: failed to build session: %w", err)
			}

			pingers := buildPingers(chatModel, backend, store)

			srv, err := server.New(session, &server.Config{
				Host:    host,
				Port:    port,
				Logger:  log,
				Pingers: pingers,
				APIKey:  os.Getenv("SPORTIQ_API_KEY"),
			})
			if err != nil {
				return fmt.Errorf("serve: failed to create server: %w", err)
			}

			return srv.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "Host address to bind to")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "TCP port to listen on")

	return cmd
}

// buildPingers assembles the readiness probes for the server based on the
// configured backends.
func buildPingers(chatModel model.BaseChatModel, backend string, store rag.VectorStore) []server.Pinger {
	pingers := []server.Pinger{
		server.NewLLMPinger(chatModel, backend),
	}

	switch s := store.(type) {
	case *rag.LocalStore:
		pingers = append(pingers, server.NewLocalIndexPinger(s))
	case *rag.QdrantStore:
		pingers = append(pingers, server.NewQdrantPinger(s.Client()))
	}

	return pingers
}
