package routing

import (
	"context"
	"log/slog"

	"github.com/sportiq/sportiq-go/internal/logging"
	"github.com/sportiq/sportiq-go/internal/rag"
)

// Router dispatches questions to the retrieval strategy matching their
// classified category. It holds only immutable collaborators; Route retains
// no state between calls.
type Router struct {
	// retriever performs the nearest-neighbor lookup. May be nil, in which
	// case every retrieval degrades to an empty result with a warning.
	retriever rag.Retriever
}

// NewRouter constructs a Router over the given retriever. A nil retriever is
// accepted: retrieval then always yields empty results, which the answering
// layer turns into a "no relevant information" context.
func NewRouter(retriever rag.Retriever) *Router {
	return &Router{retriever: retriever}
}

// Route classifies the question and retrieves passages with the strategy
// matching its category. Non-sport questions short-circuit before any index
// lookup and return an empty sequence. Retrieval failures are logged and
// degrade to an empty sequence — Route never returns an error; every outcome
// is a (possibly empty) passage list plus the category that produced it.
func (r *Router) Route(ctx context.Context, question string) ([]rag.Document, Category) {
	log := logging.FromContext(ctx)

	category := Classify(question)
	log.Info("routing: question classified", slog.String("category", category.String()))

	if category == CategoryNonSport {
		log.Warn("routing: non-sport question, halting retrieval")
		return nil, category
	}

	return r.retrieve(ctx, question, topKFor(category)), category
}

// retrieve performs a single lookup with the given passage budget. An absent
// retriever or a failed lookup degrades to "no context found" rather than an
// error; retrieval problems must never break answering.
func (r *Router) retrieve(ctx context.Context, question string, topK int) []rag.Document {
	log := logging.FromContext(ctx)

	if r.retriever == nil {
		log.Warn("routing: no retriever configured, returning empty context")
		return nil
	}

	docs, err := r.retriever.Retrieve(ctx, question, topK)
	if err != nil {
		log.Warn("routing: retrieval failed, returning empty context", slog.Any("error", err))
		return nil
	}

	log.Info("routing: retrieved passages", slog.Int("count", len(docs)), slog.Int("top_k", topK))
	return docs
}
