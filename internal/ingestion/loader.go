package ingestion

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/sportiq/sportiq-go/internal/logging"
)

// FileDocument is the raw text extracted from one knowledge-base file before
// chunking.
type FileDocument struct {
	// Path is the file's path as found during the directory scan.
	Path string

	// Content is the extracted plain text.
	Content string
}

// LoadDirectory reads every supported file (.txt, .md, .pdf) in the top level
// of dir and returns the extracted texts. Unsupported extensions are silently
// skipped. Per-file parse failures are logged and that file is skipped — a
// broken file never fails the batch. Only reading the directory itself is a
// hard error.
func LoadDirectory(ctx context.Context, dir string) ([]FileDocument, error) {
	log := logging.FromContext(ctx)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ingestion: read directory %s: %w", dir, err)
	}

	var docs []FileDocument
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		content, ok, err := extractText(path)
		if !ok {
			continue // unsupported extension
		}
		if err != nil {
			log.Warn("ingestion: failed to parse file, skipping",
				slog.String("path", path),
				slog.Any("error", err),
			)
			continue
		}

		docs = append(docs, FileDocument{Path: path, Content: content})
		log.Info("ingestion: loaded file", slog.String("path", path), slog.Int("chars", len(content)))
	}

	if len(docs) == 0 {
		log.Warn("ingestion: no documents loaded", slog.String("dir", dir))
	}

	return docs, nil
}

// extractText parses one file according to its extension. The second return
// value reports whether the extension is supported at all.
func extractText(path string) (string, bool, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md":
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", true, fmt.Errorf("read: %w", err)
		}
		return string(raw), true, nil

	case ".pdf":
		content, err := extractPDF(path)
		if err != nil {
			return "", true, err
		}
		return content, true, nil

	default:
		return "", false, nil
	}
}

// extractPDF pulls the plain text out of a PDF file.
func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(textReader); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return buf.String(), nil
}
