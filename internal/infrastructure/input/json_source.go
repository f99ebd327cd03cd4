package input

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
)

// ErrUnrecognizedShape is returned when the document holds no record array.
var ErrUnrecognizedShape = errors.New("input is not a record array")

// Object members searched, in order, for the record array.
var arrayKeys = []string{"records", "items", "data", "results", "datasets"}

// JSONSource reads records from a JSON document on disk.
type JSONSource struct {
	path   string
	logger *slog.Logger
}

var _ ports.RecordSource = (*JSONSource)(nil)

// NewJSONSource wires the document path.
func NewJSONSource(path string, log *slog.Logger) *JSONSource {
	return &JSONSource{path: path, logger: log}
}

// Load reads the document and returns its object elements with their positions.
func (s *JSONSource) Load(ctx context.Context) ([]domain.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", s.path, err)
	}

	elements, err := DetectArray(data)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", s.path, err)
	}

	records := make([]domain.RawRecord, 0, len(elements))
	for i, raw := range elements {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			s.warn("skip non-object record", "index", i)
			continue
		}
		records = append(records, domain.RawRecord{Index: i, Fields: fields})
	}

	s.debug("input loaded", "path", s.path, "elements", len(elements), "records", len(records))
	return records, nil
}

// DetectArray accepts either a top-level array or an object wrapping one.
// Wrapped arrays are looked up under the well-known keys first, then as the
// object's only array-valued member.
func DetectArray(data []byte) ([]json.RawMessage, error) {
	var arr []json.RawMessage
	if isArray(data) {
		if err := json.Unmarshal(data, &arr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return arr, nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, fmt.Errorf("%w: neither an array nor an object", ErrUnrecognizedShape)
	}

	for _, key := range arrayKeys {
		if raw, ok := obj[key]; ok && isArray(raw) {
			if err := json.Unmarshal(raw, &arr); err == nil {
				return arr, nil
			}
		}
	}

	var arrayMembers []string
	for key, raw := range obj {
		if isArray(raw) {
			arrayMembers = append(arrayMembers, key)
		}
	}
	if len(arrayMembers) == 1 {
		if err := json.Unmarshal(obj[arrayMembers[0]], &arr); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnrecognizedShape, err)
		}
		return arr, nil
	}

	sort.Strings(arrayMembers)
	return nil, fmt.Errorf("%w: object has %d array members %v", ErrUnrecognizedShape, len(arrayMembers), arrayMembers)
}

func isArray(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func (s *JSONSource) debug(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *JSONSource) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
