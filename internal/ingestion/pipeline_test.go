package ingestion

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/sportiq/sportiq-go/internal/rag"
)

// fakeEmbedder returns a deterministic unit vector per text.
type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

// capturingStore records upserted documents for inspection.
type capturingStore struct {
	docs       []rag.Document
	embeddings [][]float32
	err        error
}

func (s *capturingStore) Upsert(_ context.Context, docs []rag.Document, embeddings [][]float32) error {
	if s.err != nil {
		return s.err
	}
	s.docs = append(s.docs, docs...)
	s.embeddings = append(s.embeddings, embeddings...)
	return nil
}

func (s *capturingStore) Search(context.Context, []float32, int) ([]rag.Document, error) {
	return nil, nil
}

func (s *capturingStore) Delete(context.Context, []string) error { return nil }
func (s *capturingStore) Close() error                           { return nil }

func newTestPipeline(t *testing.T, cfg *Config) (*Pipeline, *fakeEmbedder, *capturingStore) {
	t.Helper()
	emb := &fakeEmbedder{}
	store := &capturingStore{}
	p, err := NewPipeline(emb, store, cfg)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}
	return p, emb, store
}

func TestNewPipeline_NilDeps(t *testing.T) {
	t.Parallel()

	if _, err := NewPipeline(nil, &capturingStore{}, nil); err == nil {
		t.Fatal("expected error for nil embedder")
	}
	if _, err := NewPipeline(&fakeEmbedder{}, nil, nil); err == nil {
		t.Fatal("expected error for nil store")
	}
}

func TestNewPipeline_Defaults(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPipeline(t, nil)
	if p.cfg.ChunkSize != 1000 {
		t.Errorf("ChunkSize = %d, want 1000", p.cfg.ChunkSize)
	}
	if p.cfg.ChunkOverlap != 200 {
		t.Errorf("ChunkOverlap = %d, want 200", p.cfg.ChunkOverlap)
	}
}

func TestChunk_ShortTextSingleWindow(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPipeline(t, nil)
	chunks := p.chunk(FileDocument{Path: "a.txt", Content: "Lionel Messi won the 2022 World Cup."})
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0].Index != 0 || chunks[0].StartOffset != 0 {
		t.Errorf("chunk = %+v, want index 0 offset 0", chunks[0])
	}
}

func TestChunk_OverlappingWindows(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPipeline(t, &Config{ChunkSize: 10, ChunkOverlap: 4})
	text := strings.Repeat("abcdefghij", 3) // 30 chars
	chunks := p.chunk(FileDocument{Path: "a.txt", Content: text})

	if len(chunks) < 3 {
		t.Fatalf("got %d chunks, want at least 3", len(chunks))
	}
	// Step is size-overlap = 6, so windows start at 0, 6, 12, ...
	for i, c := range chunks {
		if want := i * 6; c.StartOffset != want {
			t.Errorf("chunk %d StartOffset = %d, want %d", i, c.StartOffset, want)
		}
		if len([]rune(c.Content)) > 10 {
			t.Errorf("chunk %d length %d exceeds window size", i, len([]rune(c.Content)))
		}
	}
}

func TestChunk_RuneBoundaries(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPipeline(t, &Config{ChunkSize: 5, ChunkOverlap: 2})
	chunks := p.chunk(FileDocument{Path: "a.txt", Content: strings.Repeat("日本語サッカー", 4)})
	for i, c := range chunks {
		for _, r := range c.Content {
			if r == '�' {
				t.Fatalf("chunk %d contains replacement character: %q", i, c.Content)
			}
		}
	}
}

func TestChunk_EmptyContent(t *testing.T) {
	t.Parallel()

	p, _, _ := newTestPipeline(t, nil)
	if chunks := p.chunk(FileDocument{Path: "a.txt", Content: "   \n  "}); chunks != nil {
		t.Errorf("got %d chunks for blank content, want none", len(chunks))
	}
}

func TestIngestDirectory_EndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "messi.txt", "Lionel Messi plays for Inter Miami and won the 2022 World Cup with Argentina.")
	writeFile(t, dir, "nba.md", "# NBA\nThe Denver Nuggets won the 2023 NBA championship.")
	writeFile(t, dir, "ignored.json", `{"not": "supported"}`)

	p, emb, store := newTestPipeline(t, nil)

	var messages []string
	total, err := p.IngestDirectory(context.Background(), dir, func(msg string) {
		messages = append(messages, msg)
	})
	if err != nil {
		t.Fatalf("IngestDirectory: %v", err)
	}
	if total != 2 {
		t.Errorf("total = %d, want 2 (one chunk per small file)", total)
	}
	if emb.calls != 2 {
		t.Errorf("embedder calls = %d, want 2 (one batch per file)", emb.calls)
	}
	if len(store.docs) != 2 {
		t.Fatalf("stored %d docs, want 2", len(store.docs))
	}
	for _, d := range store.docs {
		if d.ID == "" || d.Source == "" {
			t.Errorf("stored doc missing ID or Source: %+v", d)
		}
		if d.Metadata["chunk_index"] != "0" {
			t.Errorf("chunk_index = %q, want %q", d.Metadata["chunk_index"], "0")
		}
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}
}

func TestIngestDirectory_DeterministicIDs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "facts.txt", "The Boston Celtics have 18 NBA titles.")

	p, _, store := newTestPipeline(t, nil)
	ctx := context.Background()
	if _, err := p.IngestDirectory(ctx, dir, nil); err != nil {
		t.Fatalf("first ingest: %v", err)
	}
	first := store.docs[0].ID

	if _, err := p.IngestDirectory(ctx, dir, nil); err != nil {
		t.Fatalf("second ingest: %v", err)
	}
	second := store.docs[1].ID

	if first != second {
		t.Errorf("re-ingesting produced different IDs: %q vs %q", first, second)
	}
}

func TestIngestDirectory_EmbedFailureAborts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "some content")

	emb := &fakeEmbedder{err: fmt.Errorf("model unavailable")}
	store := &capturingStore{}
	p, err := NewPipeline(emb, store, nil)
	if err != nil {
		t.Fatalf("NewPipeline: %v", err)
	}

	if _, err := p.IngestDirectory(context.Background(), dir, nil); err == nil {
		t.Fatal("expected error when embedding fails")
	}
	if len(store.docs) != 0 {
		t.Errorf("stored %d docs after embed failure, want 0", len(store.docs))
	}
}
