package output

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"SparqlScanner/internal/domain"
)

func sampleDocument() domain.ResultDocument {
	return domain.ResultDocument{
		RunID:       "0b7f7d4e-1111-4c3a-9d2e-000000000001",
		GeneratedAt: time.Date(2026, time.October, 17, 9, 30, 0, 0, time.UTC),
		Mode:        domain.RunModeVerify,
		Input:       "datasets.json",
		Rows: []domain.ResultRow{{
			Index:      3,
			Attributes: map[string]any{"name": "X", "sparqlEndpoint": "stale"},
			Endpoint:   "https://x.org/sparql",
			Verified:   true,
			VerifiedBy: domain.ModeAskGet,
			VerifiedEndpoints: []domain.VerifiedEndpoint{
				{URL: "https://x.org/sparql", Source: domain.SourceExplicit, Mode: domain.ModeAskGet},
			},
		}},
	}
}

func TestJSONWriterFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "out", "results.json")
	if err := NewJSONWriter(path).Write(context.Background(), sampleDocument()); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	var got struct {
		RunID   string           `json:"runId"`
		Mode    string           `json:"mode"`
		Count   int              `json:"count"`
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if got.Mode != "verify" || got.Count != 1 || len(got.Results) != 1 {
		t.Fatalf("unexpected document: %+v", got)
	}

	row := got.Results[0]
	if row["name"] != "X" || row["sparqlEndpoint"] != "https://x.org/sparql" {
		t.Fatalf("unexpected row: %v", row)
	}
	if row["sparqlGuessed"] != false || row["sparqlVerified"] != true || row["sparqlVerifiedBy"] != "ask_get" {
		t.Fatalf("unexpected verification fields: %v", row)
	}
	if eps, ok := row["sparqlVerifiedEndpoints"].([]any); !ok || len(eps) != 1 {
		t.Fatalf("unexpected verified endpoints: %v", row["sparqlVerifiedEndpoints"])
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatal("temporary file must be renamed away")
	}
}

func TestJSONWriterDerivationRowsToStream(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewJSONWriter("-")
	w.stdout = &buf

	doc := domain.ResultDocument{Mode: domain.RunModeDerive, Rows: []domain.ResultRow{{
		Endpoint:   "https://x.org/query",
		Guessed:    true,
		Candidates: []domain.Candidate{{URL: "https://x.org/query", Source: domain.SourceGuessed}},
	}}}
	if err := w.Write(context.Background(), doc); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	var got struct {
		Results []map[string]any `json:"results"`
	}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	row := got.Results[0]
	if _, ok := row["sparqlVerified"]; ok {
		t.Fatal("derivation rows must not carry verification fields")
	}
	if cands, ok := row["sparqlCandidates"].([]any); !ok || len(cands) != 1 {
		t.Fatalf("unexpected candidates: %v", row["sparqlCandidates"])
	}
}

func TestDocxReport(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "report.docx")
	if err := NewDocxReport(path, "name").Write(context.Background(), sampleDocument()); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("report is empty")
	}
}

func TestDocxReportHeadingFallback(t *testing.T) {
	t.Parallel()

	r := NewDocxReport("unused.docx", "title")
	if got := r.heading(domain.ResultRow{Attributes: map[string]any{"name": " Y "}}); got != "Y" {
		t.Fatalf("unexpected heading: %q", got)
	}
	if got := r.heading(domain.ResultRow{Index: 7}); got != "Record #7" {
		t.Fatalf("unexpected heading: %q", got)
	}
}
