// Package ingestion implements the knowledge-base ingestion pipeline.
// It loads sports documents from a directory, splits the content into
// overlapping windows, embeds each chunk, and upserts the results into the
// vector store. The pipeline is invoked by the `sportiq ingest` CLI command.
package ingestion

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/sportiq/sportiq-go/internal/rag"
)

// Config holds the configuration for the ingestion pipeline.
type Config struct {
	// ChunkSize is the maximum number of characters per passage window.
	// Defaults to 1000 if zero.
	ChunkSize int

	// ChunkOverlap is the number of characters shared between consecutive
	// windows. Defaults to 200 if zero or out of range.
	ChunkOverlap int
}

// Chunk is one overlapping text window cut from a source file.
type Chunk struct {
	// Source is the originating file path.
	Source string

	// Content is the window text.
	Content string

	// Index is the zero-based position of this window within its file.
	Index int

	// StartOffset is the character offset of the window start within the
	// file's extracted text.
	StartOffset int
}

// Pipeline orchestrates the load → chunk → embed → upsert flow for a
// knowledge-base directory.
type Pipeline struct {
	// embedder converts text chunks into dense vector embeddings.
	embedder rag.Embedder

	// store persists the embedded chunks.
	store rag.VectorStore

	// cfg holds the resolved pipeline configuration.
	cfg *Config
}

// NewPipeline constructs a Pipeline from the provided dependencies and config.
func NewPipeline(embedder rag.Embedder, store rag.VectorStore, cfg *Config) (*Pipeline, error) {
	if embedder == nil {
		return nil, fmt.Errorf("ingestion: embedder must not be nil")
	}
	if store == nil {
		return nil, fmt.Errorf("ingestion: store must not be nil")
	}
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1000
	}
	if cfg.ChunkOverlap <= 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = 200
		if cfg.ChunkOverlap >= cfg.ChunkSize {
			cfg.ChunkOverlap = cfg.ChunkSize / 5
		}
	}

	return &Pipeline{embedder: embedder, store: store, cfg: cfg}, nil
}

// IngestDirectory loads, chunks, embeds, and stores every supported file in
// dir. Files are processed sequentially; the first embedding or storage error
// aborts the run (parse failures were already downgraded by the loader).
// Progress is reported via the optional callback. Returns the total number of
// chunks indexed.
func (p *Pipeline) IngestDirectory(ctx context.Context, dir string, progress func(msg string)) (int, error) {
	if progress == nil {
		progress = func(string) {}
	}

	files, err := LoadDirectory(ctx, dir)
	if err != nil {
		return 0, err
	}
	progress(fmt.Sprintf("loaded %d documents from %s", len(files), dir))

	total := 0
	for _, file := range files {
		chunks := p.chunk(file)
		if len(chunks) == 0 {
			continue
		}
		progress(fmt.Sprintf("chunked %s into %d windows", file.Path, len(chunks)))

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		embeddings, err := p.embedder.Embed(ctx, texts)
		if err != nil {
			return total, fmt.Errorf("ingestion: embedding failed for %s: %w", file.Path, err)
		}

		docs := make([]rag.Document, 0, len(chunks))
		for _, c := range chunks {
			docs = append(docs, rag.Document{
				ID:      chunkID(c.Source, c.Index),
				Content: c.Content,
				Source:  c.Source,
				Metadata: map[string]string{
					"chunk_index":  fmt.Sprintf("%d", c.Index),
					"start_offset": fmt.Sprintf("%d", c.StartOffset),
				},
			})
		}

		if err := p.store.Upsert(ctx, docs, embeddings); err != nil {
			return total, fmt.Errorf("ingestion: upsert failed for %s: %w", file.Path, err)
		}

		total += len(chunks)
		progress(fmt.Sprintf("indexed %d chunks from %s", len(chunks), file.Path))
	}

	return total, nil
}

// chunk splits a file's text into overlapping windows of cfg.ChunkSize
// characters, each tagged with its file and start offset. Windows are cut on
// rune boundaries so multi-byte characters are never split.
func (p *Pipeline) chunk(file FileDocument) []Chunk {
	text := strings.TrimSpace(file.Content)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	size := p.cfg.ChunkSize
	overlap := p.cfg.ChunkOverlap
	step := size - overlap

	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		content := strings.TrimSpace(string(runes[start:end]))
		if content != "" {
			chunks = append(chunks, Chunk{
				Source:      file.Path,
				Content:     content,
				Index:       len(chunks),
				StartOffset: start,
			})
		}
		if end == len(runes) {
			break
		}
	}

	return chunks
}

// chunkID generates a deterministic ID for a passage based on its source
// path and chunk index, so re-ingesting the same directory updates passages
// in place instead of duplicating them.
func chunkID(source string, index int) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s#%d", source, index)))
	return fmt.Sprintf("%x", h[:16])
}
