package server

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/qdrant/go-client/qdrant"

	"github.com/sportiq/sportiq-go/internal/rag"
)

// LLMPinger probes an LLM backend by sending a minimal single-token generate
// request. It satisfies the Pinger interface and is used by GET /api/ready.
type LLMPinger struct {
	// model is the chat model to probe.
	model model.BaseChatModel
	// name identifies the backend in readiness responses (e.g. "ollama").
	name string
}

// NewLLMPinger constructs an LLMPinger for the given model and backend name.
func NewLLMPinger(m model.BaseChatModel, name string) *LLMPinger {
	return &LLMPinger{model: m, name: name}
}

// Name returns the backend label used in readiness responses.
func (p *LLMPinger) Name() string { return p.name }

// Ping sends a single-token generate request to verify the backend responds.
func (p *LLMPinger) Ping(ctx context.Context) error {
	msgs := []*schema.Message{
		schema.UserMessage("ping"),
	}
	resp, err := p.model.Generate(ctx, msgs)
	if err != nil {
		return fmt.Errorf("generate failed: %w", err)
	}
	if resp == nil {
		return fmt.Errorf("generate returned nil response")
	}
	return nil
}

// LocalIndexPinger probes the on-disk vector index by counting its passages.
// A readable index with zero passages is reported as an error so operators
// notice an empty knowledge base before users do.
type LocalIndexPinger struct {
	// store is the local vector index to probe.
	store *rag.LocalStore
}

// NewLocalIndexPinger constructs a LocalIndexPinger for the given store.
func NewLocalIndexPinger(store *rag.LocalStore) *LocalIndexPinger {
	return &LocalIndexPinger{store: store}
}

// Name returns the dependency label used in readiness responses.
func (p *LocalIndexPinger) Name() string { return "local-index" }

// Ping verifies the index is readable and contains at least one passage.
func (p *LocalIndexPinger) Ping(ctx context.Context) error {
	n, err := p.store.Count(ctx)
	if err != nil {
		return fmt.Errorf("index unreadable: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("index is empty, run `sportiq ingest` first")
	}
	return nil
}

// QdrantPinger probes a Qdrant instance using its native HealthCheck RPC.
// It satisfies the Pinger interface and is used by GET /api/ready.
type QdrantPinger struct {
	// client is the Qdrant gRPC client to probe.
	client *qdrant.Client
}

// NewQdrantPinger constructs a QdrantPinger for the given Qdrant client.
func NewQdrantPinger(client *qdrant.Client) *QdrantPinger {
	return &QdrantPinger{client: client}
}

// Name returns the dependency label used in readiness responses.
func (p *QdrantPinger) Name() string { return "qdrant" }

// Ping calls the Qdrant HealthCheck RPC.
// Returns nil if Qdrant is reachable, or a descriptive error otherwise.
func (p *QdrantPinger) Ping(ctx context.Context) error {
	_, err := p.client.HealthCheck(ctx)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}
