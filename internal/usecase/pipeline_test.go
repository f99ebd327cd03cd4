package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"SparqlScanner/internal/candidates"
	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/infrastructure/input"
	"SparqlScanner/internal/ports"
	"SparqlScanner/internal/verify"
)

type staticSource struct {
	records []domain.RawRecord
	err     error
}

func (s staticSource) Load(ctx context.Context) ([]domain.RawRecord, error) {
	return s.records, s.err
}

type captureWriter struct {
	docs []domain.ResultDocument
	err  error
}

func (w *captureWriter) Write(ctx context.Context, doc domain.ResultDocument) error {
	w.docs = append(w.docs, doc)
	return w.err
}

type tableProber map[string]domain.ProbeOutcome

func (t tableProber) Probe(ctx context.Context, url string, timeout time.Duration) domain.ProbeOutcome {
	return t[url]
}

func fixtureRecords() []domain.RawRecord {
	return []domain.RawRecord{
		{Index: 0, Fields: map[string]any{
			"name":           "X",
			"country":        "France",
			"sparqlEndpoint": "https://x.org/sparql",
			"url":            "https://x.org",
			"ignored":        "value",
		}},
		{Index: 1, Fields: map[string]any{
			"name":    "Y",
			"country": "Germany",
			"url":     "https://y.org",
		}},
		{Index: 2, Fields: map[string]any{
			"name":    "Z",
			"country": "France",
		}},
	}
}

func TestRunVerifyExplicitEndpoint(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	p := NewPipeline(PipelineDeps{
		Source:   staticSource{records: fixtureRecords()},
		Deriver:  candidates.NewDeriver(nil, nil, []string{"query"}),
		Verifier: verify.NewEngine(tableProber{"https://x.org/sparql": domain.Succeeded(domain.ModeAskGet)}, nil),
		Writers:  []ports.ResultWriter{writer},
		Fields:   []string{"name", "country"},
	})
	p.runID = func() string { return "run-1" }

	var done atomic.Int64
	doc, err := p.Run(context.Background(), RunRequest{
		Verify:  true,
		Options: domain.VerifyOptions{Timeout: time.Second, Concurrency: 4, OnTaskDone: func() { done.Add(1) }},
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}

	if doc.Mode != domain.RunModeVerify || doc.RunID != "run-1" || len(writer.docs) != 1 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	// X has 2 candidates, Y has 1, Z has none.
	if done.Load() != 3 {
		t.Fatalf("expected 3 completed tasks, got %d", done.Load())
	}
	if len(doc.Rows) != 1 {
		t.Fatalf("expected 1 row, got %+v", doc.Rows)
	}

	row := doc.Rows[0]
	if row.Endpoint != "https://x.org/sparql" || row.Guessed || !row.Verified || row.VerifiedBy != domain.ModeAskGet {
		t.Fatalf("unexpected row: %+v", row)
	}
	if len(row.VerifiedEndpoints) != 1 {
		t.Fatalf("expected 1 verified endpoint, got %d", len(row.VerifiedEndpoints))
	}
	if _, ok := row.Attributes["ignored"]; ok || row.Attributes["name"] != "X" {
		t.Fatalf("unexpected projection: %v", row.Attributes)
	}
}

func TestRunDeriveOnly(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	p := NewPipeline(PipelineDeps{
		Source:  staticSource{records: fixtureRecords()},
		Deriver: candidates.NewDeriver(nil, nil, []string{"query"}),
		Writers: []ports.ResultWriter{writer},
	})

	doc, err := p.Run(context.Background(), RunRequest{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if doc.Mode != domain.RunModeDerive || len(doc.Rows) != 2 {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Rows[0].Endpoint != "https://x.org/sparql" || doc.Rows[0].Guessed || len(doc.Rows[0].Candidates) != 2 {
		t.Fatalf("unexpected first row: %+v", doc.Rows[0])
	}
	if doc.Rows[1].Endpoint != "https://y.org/query" || !doc.Rows[1].Guessed {
		t.Fatalf("unexpected second row: %+v", doc.Rows[1])
	}

	doc, err = p.Run(context.Background(), RunRequest{Options: domain.VerifyOptions{Strict: true}})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(doc.Rows) != 1 || doc.Rows[0].Index != 0 {
		t.Fatalf("strict run kept guessed-only record: %+v", doc.Rows)
	}
}

func TestRunCountryFilter(t *testing.T) {
	t.Parallel()

	p := NewPipeline(PipelineDeps{
		Source:  staticSource{records: fixtureRecords()},
		Filter:  input.NewCountryFilter("country", "germany"),
		Deriver: candidates.NewDeriver(nil, nil, nil),
	})

	doc, err := p.Run(context.Background(), RunRequest{})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if len(doc.Rows) != 1 || doc.Rows[0].Index != 1 {
		t.Fatalf("unexpected rows: %+v", doc.Rows)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	t.Parallel()

	loadErr := errors.New("boom")
	p := NewPipeline(PipelineDeps{
		Source:  staticSource{err: loadErr},
		Deriver: candidates.NewDeriver(nil, nil, nil),
	})
	if _, err := p.Run(context.Background(), RunRequest{}); !errors.Is(err, loadErr) {
		t.Fatalf("expected load error, got %v", err)
	}

	writeErr := errors.New("disk full")
	p = NewPipeline(PipelineDeps{
		Source:  staticSource{records: fixtureRecords()},
		Deriver: candidates.NewDeriver(nil, nil, nil),
		Writers: []ports.ResultWriter{&captureWriter{err: writeErr}},
	})
	if _, err := p.Run(context.Background(), RunRequest{}); !errors.Is(err, writeErr) {
		t.Fatalf("expected write error, got %v", err)
	}

	p = NewPipeline(PipelineDeps{
		Source:  staticSource{records: fixtureRecords()},
		Deriver: candidates.NewDeriver(nil, nil, nil),
	})
	if _, err := p.Run(context.Background(), RunRequest{Verify: true}); err == nil {
		t.Fatal("expected error when verifying without a verifier")
	}
}

func TestRunCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	writer := &captureWriter{}
	p := NewPipeline(PipelineDeps{
		Source:   staticSource{records: fixtureRecords()},
		Deriver:  candidates.NewDeriver(nil, nil, nil),
		Verifier: verify.NewEngine(tableProber{}, nil),
		Writers:  []ports.ResultWriter{writer},
	})

	if _, err := p.Run(ctx, RunRequest{Verify: true, Options: domain.VerifyOptions{Concurrency: 2}}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(writer.docs) != 0 {
		t.Fatal("interrupted run must not write results")
	}
}
