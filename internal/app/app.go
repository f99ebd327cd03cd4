package app

import (
	"context"
	"log/slog"
	"net/http"

	"SparqlScanner/internal/candidates"
	"SparqlScanner/internal/config"
	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/infrastructure/input"
	"SparqlScanner/internal/infrastructure/output"
	"SparqlScanner/internal/logging"
	"SparqlScanner/internal/ports"
	"SparqlScanner/internal/prober"
	"SparqlScanner/internal/usecase"
	"SparqlScanner/internal/verify"
)

// Application wires configs to use cases.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = cfg.Probe.Concurrency
	client := &http.Client{Transport: transport}

	endpointProber := prober.New(client, prober.Options{
		UserAgent:    cfg.Probe.UserAgent,
		MaxBodyBytes: cfg.Probe.MaxBodyBytes,
	}, baseLogger.With("component", "prober"))

	writers := []ports.ResultWriter{output.NewJSONWriter(cfg.Output.Path)}
	if cfg.Output.Report != "" {
		writers = append(writers, output.NewDocxReport(cfg.Output.Report, cfg.Output.TitleField))
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:   input.NewJSONSource(cfg.Input.Path, baseLogger.With("component", "input")),
		Filter:   input.NewCountryFilter(cfg.Input.CountryField, cfg.Input.Country),
		Deriver:  candidates.NewDeriver(cfg.Candidates.ExplicitFields, cfg.Candidates.BaseFields, cfg.Candidates.Suffixes),
		Verifier: verify.NewEngine(endpointProber, baseLogger.With("component", "verify")),
		Writers:  writers,
		Fields:   cfg.Input.Fields,
		Logger:   baseLogger.With("component", "pipeline"),
	})
	return &Application{cfg: cfg, pipeline: pipeline}
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}

	_, err := a.pipeline.Run(ctx, usecase.RunRequest{
		Verify: a.cfg.Probe.Verify,
		Input:  a.cfg.Input.Path,
		Options: domain.VerifyOptions{
			Timeout:     a.cfg.Probe.Timeout(),
			Concurrency: a.cfg.Probe.Concurrency,
			Strict:      a.cfg.Probe.Strict,
		},
	})
	return err
}
