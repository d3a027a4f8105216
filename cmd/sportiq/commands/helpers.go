package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/sportiq/sportiq-go/internal/budget"
	"github.com/sportiq/sportiq-go/internal/chatbot"
	"github.com/sportiq/sportiq-go/internal/embedder"
	"github.com/sportiq/sportiq-go/internal/provider"
	"github.com/sportiq/sportiq-go/internal/rag"
	"github.com/sportiq/sportiq-go/internal/routing"
)

// buildStore opens the configured vector store. VECTOR_BACKEND selects the
// implementation: "local" (default) opens the SQLite index at INDEX_PATH,
// "qdrant" connects to a Qdrant cluster. The returned close function must be
// called before process exit.
func buildStore(ctx context.Context, log *slog.Logger) (rag.VectorStore, func(), error) {
	backend := getEnvOrDefault("VECTOR_BACKEND", "local")

	switch backend {
	case "local":
		path := getEnvOrDefault("INDEX_PATH", rag.DefaultIndexPath)
		store, err := rag.OpenLocal(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local index at %s: %w", path, err)
		}
		log.Info("local vector index opened", slog.String("path", path))
		return store, func() { _ = store.Close() }, nil

	case "qdrant":
		embBackend := getEnvOrDefault("EMBEDDING_PROVIDER", getEnvOrDefault("MODEL_PROVIDER", "ollama"))
		vectorSize := uint64(embedder.DefaultDimensions(embBackend)) //nolint:gosec // dimensions are bounded

		host := getEnvOrDefault("QDRANT_HOST", "localhost")
		port := getEnvInt("QDRANT_PORT", 6334)
		store, err := rag.NewQdrantStore(ctx, &rag.QdrantConfig{
			Host:       host,
			Port:       port,
			Collection: getEnvOrDefault("QDRANT_COLLECTION", "sportiq-passages"),
			VectorSize: vectorSize,
			APIKey:     os.Getenv("QDRANT_API_KEY"),
			UseTLS:     os.Getenv("QDRANT_TLS") == "true",
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to Qdrant at %s:%d: %w", host, port, err)
		}
		log.Info("qdrant store ready", slog.String("host", host), slog.Int("port", port))
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown VECTOR_BACKEND %q (valid: local, qdrant)", backend)
	}
}

// buildSession wires the full answer pipeline: embedder, vector store,
// retriever, router, chat model, and session. The returned close function
// releases the store.
func buildSession(ctx context.Context, log *slog.Logger) (*chatbot.Session, func(), error) {
	chatModel, err := provider.NewFromEnv(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialise model provider: %w", err)
	}

	emb, err := embedder.NewFromEnv()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialise embedder: %w", err)
	}

	store, closeStore, err := buildStore(ctx, log)
	if err != nil {
		return nil, nil, err
	}

	retriever, err := rag.NewRetriever(emb, store, 0)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to build retriever: %w", err)
	}

	generator, err := chatbot.NewModelGenerator(chatModel)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to build generator: %w", err)
	}

	session, err := chatbot.NewSession(&chatbot.Config{
		Router:           routing.NewRouter(retriever),
		Generator:        generator,
		MaxContextTokens: getEnvInt("MAX_CONTEXT_TOKENS", budget.DefaultMaxContextTokens),
	})
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to build session: %w", err)
	}

	return session, closeStore, nil
}

// getEnvOrDefault returns the value of the named environment variable, or
// fallback if the variable is unset or empty.
func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getEnvInt returns the integer value of the named environment variable, or
// fallback if the variable is unset, empty, or not parseable.
func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
