// Package verify probes the candidates of many records under a concurrency cap
// and assembles one result row per record with at least one live endpoint.
package verify

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
	"SparqlScanner/internal/selection"
)

type task struct {
	slot      int
	discovery int
	candidate domain.Candidate
}

// Engine distributes probe tasks across a fixed pool of workers.
type Engine struct {
	prober ports.Prober
	logger *slog.Logger
}

var _ ports.Verifier = (*Engine)(nil)

// NewEngine wires the prober used for every candidate.
func NewEngine(prober ports.Prober, log *slog.Logger) *Engine {
	return &Engine{prober: prober, logger: log}
}

// Verify probes every (record, candidate) pair and returns rows in input order.
// It blocks until all workers finish. A cancelled context stops workers from
// claiming new tasks; tasks already claimed run to completion.
func (e *Engine) Verify(ctx context.Context, records []domain.Record, opts domain.VerifyOptions) []domain.ResultRow {
	tasks := flatten(records)
	sets := make([]*VerifiedSet, len(records))
	for i := range sets {
		sets[i] = NewVerifiedSet()
	}

	workers := opts.Concurrency
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	e.info("verification started", "records", len(records), "tasks", len(tasks), "workers", workers, "timeout", opts.Timeout)

	var (
		cursor atomic.Int64
		failed atomic.Int64
		wg     sync.WaitGroup
	)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				next := int(cursor.Add(1) - 1)
				if next >= len(tasks) {
					return
				}
				if !e.run(ctx, tasks[next], sets, opts) {
					failed.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	rows := assemble(records, sets, opts.Strict)
	e.info("verification finished",
		"tasks", len(tasks),
		"failed", failed.Load(),
		"rows", len(rows),
		"elapsed", time.Since(start).Round(time.Millisecond),
	)
	return rows
}

// run probes one task and merges a success into the record's set. A panic in the
// prober is contained here and reported as a failed task.
func (e *Engine) run(ctx context.Context, t task, sets []*VerifiedSet, opts domain.VerifyOptions) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			e.warn("probe task panicked", "url", t.candidate.URL, "panic", r)
		}
		if opts.OnTaskDone != nil {
			opts.OnTaskDone()
		}
	}()

	outcome := e.prober.Probe(ctx, t.candidate.URL, opts.Timeout)
	if !outcome.Success {
		return false
	}

	sets[t.slot].Add(domain.VerifiedEndpoint{
		URL:       t.candidate.URL,
		Source:    t.candidate.Source,
		Mode:      outcome.Mode,
		Discovery: t.discovery,
	})
	return true
}

func flatten(records []domain.Record) []task {
	var tasks []task
	for slot, record := range records {
		for i, c := range record.Candidates {
			tasks = append(tasks, task{slot: slot, discovery: i, candidate: c})
		}
	}
	return tasks
}

// assemble builds rows for records with at least one verified endpoint. In strict
// mode a record also needs an explicit candidate in its original list, whether or
// not that candidate verified.
func assemble(records []domain.Record, sets []*VerifiedSet, strict bool) []domain.ResultRow {
	rows := make([]domain.ResultRow, 0, len(records))
	for slot, record := range records {
		verified := sets[slot].Endpoints()
		if len(verified) == 0 {
			continue
		}
		if strict && !record.HasExplicit() {
			continue
		}

		chosen, _ := selection.ChooseVerified(verified)
		rows = append(rows, domain.ResultRow{
			Index:             record.Index,
			Attributes:        record.Attributes,
			Endpoint:          chosen.URL,
			Guessed:           !chosen.Explicit(),
			Verified:          true,
			VerifiedBy:        chosen.Mode,
			VerifiedEndpoints: verified,
		})
	}
	return rows
}

func (e *Engine) info(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Info(msg, args...)
	}
}

func (e *Engine) warn(msg string, args ...interface{}) {
	if e.logger != nil {
		e.logger.Warn(msg, args...)
	}
}
