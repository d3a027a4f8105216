package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/sportiq/sportiq-go/internal/embedder"
	"github.com/sportiq/sportiq-go/internal/ingestion"
	"github.com/sportiq/sportiq-go/internal/logging"
)

// NewIngestCmd constructs the `sportiq ingest` command, which runs the
// document ingestion pipeline to populate the vector index.
func NewIngestCmd() *cobra.Command {
	var dir string
	var chunkSize int
	var chunkOverlap int

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest sports documents into the vector index",
		Long: `Load, chunk, embed, and index every supported document in a directory.

Supported formats: .txt, .md, .pdf. Files are split into overlapping windows,
embedded with the configured embedding model, and stored in the vector index.
Re-ingesting the same directory updates passages in place.

Relevant environment variables:
  VECTOR_BACKEND       local (default) or qdrant
  INDEX_PATH           Local index path (default: vector_store/index.db)
  KB_DIR               Default document directory when --dir is omitted
  MODEL_PROVIDER       Embedding backend fallback: ollama, openai, azure
  EMBEDDING_*          Embedding-specific overrides (see README)

Examples:
  sportiq ingest --dir ./knowledge_base
  sportiq ingest --dir ./docs --chunk-size 800 --chunk-overlap 150
  VECTOR_BACKEND=qdrant sportiq ingest --dir ./knowledge_base`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			log := logging.New()
			ctx = logging.WithLogger(ctx, log)

			if dir == "" {
				dir = getEnvOrDefault("KB_DIR", "knowledge_base")
			}

			if err := embedder.ValidateForRAG(log); err != nil {
				return fmt.Errorf("ingest: %w", err)
			}

			emb, err := embedder.NewFromEnv()
			if err != nil {
				return fmt.Errorf("ingest: failed to initialise embedder: %w", err)
			}
			log.Info("embedder initialised",
				slog.String("provider", getEnvOrDefault("EMBEDDING_PROVIDER", getEnvOrDefault("MODEL_PROVIDER", "ollama"))))

			store, closeStore, err := buildStore(ctx, log)
			if err != nil {
				return fmt.Errorf("ingest: %w", err)
			}
			defer closeStore()

			pipeline, err := ingestion.NewPipeline(emb, store, &ingestion.Config{
				ChunkSize:    chunkSize,
				ChunkOverlap: chunkOverlap,
			})
			if err != nil {
				return fmt.Errorf("ingest: failed to create pipeline: %w", err)
			}

			log.Info("starting ingestion", slog.String("dir", dir))

			total, err := pipeline.IngestDirectory(ctx, dir, func(msg string) {
				log.Info(msg)
			})
			if err != nil {
				return fmt.Errorf("ingest: pipeline failed: %w", err)
			}

			log.Info("ingestion complete", slog.Int("chunks", total), slog.String("dir", dir))
			fmt.Printf("Indexed %d chunks from %s\n", total, dir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory of documents to ingest (default: $KB_DIR or ./knowledge_base)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "Characters per chunk window (default: 1000)")
	cmd.Flags().IntVar(&chunkOverlap, "chunk-overlap", 0, "Characters shared between consecutive windows (default: 200)")

	return cmd
}
