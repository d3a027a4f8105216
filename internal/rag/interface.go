// Package rag defines the interfaces for retrieval-augmented generation
// components: vector storage, passage retrieval, and embedding.
// Concrete implementations (local SQLite index, Qdrant) satisfy these
// interfaces so the routing and chatbot layers never depend on a specific
// backend.
package rag

import (
	"context"
)

// Document represents a single retrievable passage of the knowledge base:
// a bounded window of source text produced by the ingestion chunker.
type Document struct {
	// ID is the unique identifier for this passage.
	ID string

	// Content is the raw text of the passage.
	Content string

	// Source is the origin file path of the passage.
	Source string

	// Metadata holds arbitrary key-value pairs (chunk index, start offset).
	Metadata map[string]string

	// Score is the similarity score assigned during retrieval (0.0–1.0).
	// Zero value means the score was not computed.
	Score float32
}

// VectorStore is the interface for persisting and searching passage embeddings.
// Implementations must be safe to call from multiple goroutines.
type VectorStore interface {
	// Upsert stores or updates a batch of passages with their pre-computed
	// embeddings. The embeddings slice must be parallel to docs —
	// embeddings[i] is the vector for docs[i].
	Upsert(ctx context.Context, docs []Document, embeddings [][]float32) error

	// Search performs a similarity search and returns the top-k most
	// relevant passages for the given query embedding, best first.
	Search(ctx context.Context, queryEmbedding []float32, topK int) ([]Document, error)

	// Delete removes passages by their IDs.
	Delete(ctx context.Context, ids []string) error

	// Close releases any resources held by the store.
	Close() error
}

// Embedder is the interface for converting text into dense vector embeddings.
// Implementations must be safe to call from multiple goroutines.
type Embedder interface {
	// Embed converts a batch of texts into their corresponding embeddings.
	// The returned slice is parallel to the input slice.
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Retriever is the high-level interface used by the decision router to fetch
// relevant passages for a question. It combines embedding and vector search.
// Implementations must be safe to call from multiple goroutines.
type Retriever interface {
	// Retrieve returns the top-k most relevant passages for the given query,
	// in the store's relevance order.
	Retrieve(ctx context.Context, query string, topK int) ([]Document, error)
}
