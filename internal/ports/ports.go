package ports

import (
	"context"
	"time"

	"SparqlScanner/internal/domain"
)

// RecordSource loads the raw input collection.
type RecordSource interface {
	Load(ctx context.Context) ([]domain.RawRecord, error)
}

// RecordFilter decides whether a raw record takes part in the run.
type RecordFilter interface {
	Keep(record domain.RawRecord) bool
}

// CandidateDeriver turns a raw record into its ordered candidate list.
type CandidateDeriver interface {
	Derive(record domain.RawRecord) []domain.Candidate
}

// Prober tests one candidate URL; negative outcomes are never errors.
type Prober interface {
	Probe(ctx context.Context, url string, timeout time.Duration) domain.ProbeOutcome
}

// Verifier probes every candidate of every record and assembles result rows.
type Verifier interface {
	Verify(ctx context.Context, records []domain.Record, opts domain.VerifyOptions) []domain.ResultRow
}

// ResultWriter persists or renders the final result document.
type ResultWriter interface {
	Write(ctx context.Context, doc domain.ResultDocument) error
}
