// Package prober tests whether a candidate URL answers like a SPARQL endpoint.
package prober

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
)

// Options tune the HTTP side of the probes.
type Options struct {
	UserAgent string
	// MaxBodyBytes caps how much of each response is read; defaults to 1 MiB.
	MaxBodyBytes int64
}

// Prober runs the registered strategies in order until one succeeds.
type Prober struct {
	registry *Registry
	logger   *slog.Logger
}

var _ ports.Prober = (*Prober)(nil)

// New wires the ask_get, ask_post and service_description strategies around one HTTP client.
// The client follows redirects; timeouts come from the per-call context.
func New(client *http.Client, opts Options, log *slog.Logger) *Prober {
	if client == nil {
		client = &http.Client{}
	}
	f := fetcher{client: client, userAgent: opts.UserAgent, maxBody: opts.MaxBodyBytes}

	registry := NewRegistry()
	registry.Register(&AskGet{fetcher: f})
	registry.Register(&AskPost{fetcher: f})
	registry.Register(&ServiceDescription{fetcher: f})

	return NewWithRegistry(registry, log)
}

// NewWithRegistry builds a prober over an explicit strategy list.
func NewWithRegistry(registry *Registry, log *slog.Logger) *Prober {
	return &Prober{registry: registry, logger: log}
}

// Probe tries each strategy with its own timeout and returns the first success.
// Transport errors, bad statuses and unrecognized bodies only move on to the next strategy.
func (p *Prober) Probe(ctx context.Context, target string, timeout time.Duration) domain.ProbeOutcome {
	for _, strategy := range p.registry.Strategies() {
		if ctx.Err() != nil {
			return domain.Failed
		}

		attempt := p.try(ctx, strategy, target, timeout)
		p.debug("probe attempt",
			"url", target,
			"mode", strategy.Mode(),
			"ok", attempt.OK,
			"status", attempt.Status,
			"content_type", attempt.ContentType,
			"reason", attempt.Reason,
			"title", attempt.Title,
		)
		if attempt.OK {
			return domain.Succeeded(strategy.Mode())
		}
	}
	return domain.Failed
}

func (p *Prober) try(ctx context.Context, strategy Strategy, target string, timeout time.Duration) Attempt {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return strategy.Try(ctx, target)
}

func (p *Prober) debug(msg string, args ...interface{}) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
