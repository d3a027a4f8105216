package rag

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // register "sqlite" driver
)

// DefaultIndexPath is the relative path where the local vector index is
// persisted by `sportiq ingest` and reloaded by `sportiq ask` / `sportiq chat`.
const DefaultIndexPath = "vector_store/index.db"

// LocalStore implements VectorStore backed by a single SQLite file.
// Embeddings are stored as raw float32 blobs and searched with a brute-force
// cosine scan — adequate for knowledge bases of a few thousand passages, and
// it keeps the whole index in one relocatable file with no server dependency.
//
// The embedding dimension is recorded when the first batch is upserted.
// Reloading the index with an embedder of a different dimension fails at the
// first search: the embedding function used at build time is the implicit
// compatibility contract, there is no schema versioning beyond that.
type LocalStore struct {
	// db is the underlying database connection pool.
	db *sql.DB
	// path is the on-disk location, kept for error messages.
	path string
}

// OpenLocal opens (or creates) a LocalStore at the given path and runs the
// schema migration. Parent directories are created as needed.
// Use ":memory:" for an in-memory index in tests.
func OpenLocal(path string) (*LocalStore, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("rag: create index directory %s: %w", dir, err)
			}
		}
	}

	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("rag: open local index %s: %w", path, err)
	}
	// Single writer connection avoids SQLITE_BUSY during ingestion batches.
	db.SetMaxOpenConns(1)

	s := &LocalStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// migrate creates the schema if it does not already exist.
func (s *LocalStore) migrate() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS passages (
    id         TEXT PRIMARY KEY,
    content    TEXT    NOT NULL,
    source     TEXT    NOT NULL,
    metadata   TEXT    NOT NULL DEFAULT '{}',
    embedding  BLOB    NOT NULL,
    dimensions INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_passages_source ON passages (source);
`
	if _, err := s.db.Exec(ddl); err != nil {
		return fmt.Errorf("rag: migrate local index: %w", err)
	}
	return nil
}

// Upsert stores or updates a batch of passages with their embeddings.
// The embeddings slice must be parallel to docs.
func (s *LocalStore) Upsert(ctx context.Context, docs []Document, embeddings [][]float32) error {
	if len(docs) != len(embeddings) {
		return fmt.Errorf("rag: upsert: %d docs but %d embeddings", len(docs), len(embeddings))
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rag: upsert begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	const q = `
INSERT INTO passages (id, content, source, metadata, embedding, dimensions)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
    content = excluded.content,
    source = excluded.source,
    metadata = excluded.metadata,
    embedding = excluded.embedding,
    dimensions = excluded.dimensions`

	for i, doc := range docs {
		meta, err := json.Marshal(doc.Metadata)
		if err != nil {
			return fmt.Errorf("rag: upsert marshal metadata for %s: %w", doc.ID, err)
		}
		blob := encodeVector(embeddings[i])
		if _, err := tx.ExecContext(ctx, q, doc.ID, doc.Content, doc.Source, string(meta), blob, len(embeddings[i])); err != nil {
			return fmt.Errorf("rag: upsert %s: %w", doc.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rag: upsert commit: %w", err)
	}
	return nil
}

// Search performs a brute-force cosine similarity scan and returns the top-k
// passages, best first. An index built with a different embedding dimension
// than the query vector is rejected.
func (s *LocalStore) Search(ctx context.Context, queryEmbedding []float32, topK int) ([]Document, error) {
	if topK <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, content, source, metadata, embedding, dimensions FROM passages`)
	if err != nil {
		return nil, fmt.Errorf("rag: search query: %w", err)
	}
	defer rows.Close()

	type scored struct {
		doc   Document
		score float32
	}
	var candidates []scored

	for rows.Next() {
		var doc Document
		var meta string
		var blob []byte
		var dim int
		if err := rows.Scan(&doc.ID, &doc.Content, &doc.Source, &meta, &blob, &dim); err != nil {
			return nil, fmt.Errorf("rag: search scan: %w", err)
		}
		if dim != len(queryEmbedding) {
			return nil, fmt.Errorf("rag: index %s was built with %d-dimensional embeddings, query has %d — rebuild the index with the current embedding model",
				s.path, dim, len(queryEmbedding))
		}
		if err := json.Unmarshal([]byte(meta), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("rag: search unmarshal metadata for %s: %w", doc.ID, err)
		}
		vec := decodeVector(blob)
		candidates = append(candidates, scored{doc: doc, score: cosine(queryEmbedding, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rag: search rows: %w", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if topK > len(candidates) {
		topK = len(candidates)
	}
	docs := make([]Document, 0, topK)
	for _, c := range candidates[:topK] {
		c.doc.Score = c.score
		docs = append(docs, c.doc)
	}
	return docs, nil
}

// Delete removes passages from the index by their IDs.
func (s *LocalStore) Delete(ctx context.Context, ids []string) error {
	const q = `DELETE FROM passages WHERE id = ?`
	for _, id := range ids {
		if _, err := s.db.ExecContext(ctx, q, id); err != nil {
			return fmt.Errorf("rag: delete %s: %w", id, err)
		}
	}
	return nil
}

// Count returns the number of passages in the index. Used by the readiness
// probe and by the CLI to distinguish an empty index from a missing one.
func (s *LocalStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM passages`).Scan(&n); err != nil {
		return 0, fmt.Errorf("rag: count: %w", err)
	}
	return n, nil
}

// Close releases the database connection pool.
func (s *LocalStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("rag: close local index: %w", err)
	}
	return nil
}

// encodeVector serialises a float32 vector as a little-endian byte blob.
func encodeVector(vec []float32) []byte {
	buf := make([]byte, 4*len(vec))
	for i, v := range vec {
		binary.LittleEndian.PutUint32(buf[4*i:], math.Float32bits(v))
	}
	return buf
}

// decodeVector deserialises a little-endian byte blob back into a vector.
func decodeVector(buf []byte) []float32 {
	vec := make([]float32, len(buf)/4)
	for i := range vec {
		vec[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[4*i:]))
	}
	return vec
}

// cosine returns the cosine similarity of a and b. Zero-magnitude vectors
// score 0 rather than dividing by zero.
func cosine(a, b []float32) float32 {
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(na) * math.Sqrt(nb)))
}
