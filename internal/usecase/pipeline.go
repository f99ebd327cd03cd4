package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
	"SparqlScanner/internal/progress"
	"SparqlScanner/internal/selection"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Source   ports.RecordSource
	Filter   ports.RecordFilter
	Deriver  ports.CandidateDeriver
	Verifier ports.Verifier
	Writers  []ports.ResultWriter
	// Fields projected from each input record into its result row; empty keeps all.
	Fields []string
	Logger *slog.Logger
}

// RunRequest carries the parameters of one run.
type RunRequest struct {
	Verify  bool
	Options domain.VerifyOptions
	Input   string
}

// Pipeline implements the endpoint discovery workflow.
type Pipeline struct {
	source   ports.RecordSource
	filter   ports.RecordFilter
	deriver  ports.CandidateDeriver
	verifier ports.Verifier
	writers  []ports.ResultWriter
	fields   []string
	logger   *slog.Logger

	now   func() time.Time
	runID func() string
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	return &Pipeline{
		source:   deps.Source,
		filter:   deps.Filter,
		deriver:  deps.Deriver,
		verifier: deps.Verifier,
		writers:  deps.Writers,
		fields:   deps.Fields,
		logger:   deps.Logger,
		now:      time.Now,
		runID:    uuid.NewString,
	}
}

// Run loads, filters and derives records, verifies them if requested, and hands
// the result document to every writer.
func (p *Pipeline) Run(ctx context.Context, req RunRequest) (domain.ResultDocument, error) {
	if p.source == nil || p.deriver == nil {
		return domain.ResultDocument{}, fmt.Errorf("pipeline is not configured")
	}

	raw, err := p.source.Load(ctx)
	if err != nil {
		return domain.ResultDocument{}, fmt.Errorf("load records: %w", err)
	}

	records := p.prepare(raw)

	doc := domain.ResultDocument{
		RunID: p.runID(),
		Mode:  domain.RunModeDerive,
		Input: req.Input,
	}

	if req.Verify {
		if p.verifier == nil {
			return domain.ResultDocument{}, fmt.Errorf("verification requested but no verifier configured")
		}
		doc.Mode = domain.RunModeVerify

		opts := req.Options
		counter := progress.NewCounter(countTasks(records), 0, p.logger)
		next := opts.OnTaskDone
		opts.OnTaskDone = func() {
			counter.Done()
			if next != nil {
				next()
			}
		}
		doc.Rows = p.verifier.Verify(ctx, records, opts)
	} else {
		doc.Rows = DeriveRows(records, req.Options.Strict)
	}

	if err := ctx.Err(); err != nil {
		return domain.ResultDocument{}, fmt.Errorf("run interrupted: %w", err)
	}

	doc.GeneratedAt = p.now().UTC()
	p.info("run finished", "run_id", doc.RunID, "mode", doc.Mode, "rows", len(doc.Rows))

	for _, w := range p.writers {
		if err := w.Write(ctx, doc); err != nil {
			return doc, fmt.Errorf("write results: %w", err)
		}
	}

	return doc, nil
}

// prepare filters raw records, derives their candidates and projects display attributes.
// Records without any candidate are dropped here.
func (p *Pipeline) prepare(raw []domain.RawRecord) []domain.Record {
	records := make([]domain.Record, 0, len(raw))
	filtered, empty := 0, 0
	for _, r := range raw {
		if p.filter != nil && !p.filter.Keep(r) {
			filtered++
			continue
		}
		candidates := p.deriver.Derive(r)
		if len(candidates) == 0 {
			empty++
			continue
		}
		records = append(records, domain.Record{
			Index:      r.Index,
			Attributes: project(r.Fields, p.fields),
			Candidates: candidates,
		})
	}

	p.info("records prepared",
		"input", len(raw),
		"filtered_out", filtered,
		"without_candidates", empty,
		"records", len(records),
		"candidates", countTasks(records),
	)
	return records
}

// DeriveRows selects one endpoint per record without probing. In strict mode
// records without an explicit candidate are skipped.
func DeriveRows(records []domain.Record, strict bool) []domain.ResultRow {
	rows := make([]domain.ResultRow, 0, len(records))
	for _, record := range records {
		if strict && !record.HasExplicit() {
			continue
		}
		chosen, ok := selection.ChooseCandidate(record.Candidates)
		if !ok {
			continue
		}
		rows = append(rows, domain.ResultRow{
			Index:      record.Index,
			Attributes: record.Attributes,
			Endpoint:   chosen.URL,
			Guessed:    !chosen.Explicit(),
			Candidates: record.Candidates,
		})
	}
	return rows
}

func project(fields map[string]any, keep []string) map[string]any {
	if len(keep) == 0 {
		out := make(map[string]any, len(fields))
		for k, v := range fields {
			out[k] = v
		}
		return out
	}
	out := make(map[string]any, len(keep))
	for _, k := range keep {
		if v, ok := fields[k]; ok {
			out[k] = v
		}
	}
	return out
}

func countTasks(records []domain.Record) int {
	total := 0
	for _, r := range records {
		total += len(r.Candidates)
	}
	return total
}

func (p *Pipeline) info(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}
