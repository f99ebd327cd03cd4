package output

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
)

// JSONWriter writes the result document as indented JSON. An empty path or "-"
// writes to the configured stream instead of a file.
type JSONWriter struct {
	path   string
	stdout io.Writer
}

var _ ports.ResultWriter = (*JSONWriter)(nil)

// NewJSONWriter wires the target path.
func NewJSONWriter(path string) *JSONWriter {
	return &JSONWriter{path: path, stdout: os.Stdout}
}

type document struct {
	RunID       string             `json:"runId"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Mode        domain.RunMode     `json:"mode"`
	Input       string             `json:"input,omitempty"`
	Count       int                `json:"count"`
	Results     []domain.ResultRow `json:"results"`
}

// Write serializes the document; files are replaced atomically.
func (w *JSONWriter) Write(ctx context.Context, doc domain.ResultDocument) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	rows := doc.Rows
	if rows == nil {
		rows = []domain.ResultRow{}
	}
	b, err := json.MarshalIndent(document{
		RunID:       doc.RunID,
		GeneratedAt: doc.GeneratedAt,
		Mode:        doc.Mode,
		Input:       doc.Input,
		Count:       len(rows),
		Results:     rows,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	b = append(b, '\n')

	if w.path == "" || w.path == "-" {
		if _, err := w.stdout.Write(b); err != nil {
			return fmt.Errorf("write results: %w", err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(w.path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("replace %s: %w", w.path, err)
	}
	return nil
}
