package prober

import (
	"context"
	"fmt"

	"SparqlScanner/internal/domain"
)

// Attempt describes what one strategy observed for one candidate URL.
type Attempt struct {
	OK          bool
	Status      int
	ContentType string
	Reason      string
	// Title of a rejected HTML page, when one was found.
	Title string
}

// Strategy is a single request pattern used to test a candidate URL.
type Strategy interface {
	Mode() domain.Mode
	Try(ctx context.Context, target string) Attempt
}

// Registry keeps strategies in the order they are tried.
type Registry struct {
	order      []domain.Mode
	strategies map[domain.Mode]Strategy
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{strategies: map[domain.Mode]Strategy{}}
}

// Register appends a strategy, or replaces one with the same mode in place.
func (r *Registry) Register(strategy Strategy) {
	if r.strategies == nil {
		r.strategies = map[domain.Mode]Strategy{}
	}
	mode := strategy.Mode()
	if _, ok := r.strategies[mode]; !ok {
		r.order = append(r.order, mode)
	}
	r.strategies[mode] = strategy
}

// Resolve returns a strategy by mode or an error if it is absent.
func (r *Registry) Resolve(mode domain.Mode) (Strategy, error) {
	if strategy, ok := r.strategies[mode]; ok {
		return strategy, nil
	}
	return nil, fmt.Errorf("strategy %s is not registered", mode)
}

// Strategies lists the registered strategies in registration order.
func (r *Registry) Strategies() []Strategy {
	out := make([]Strategy, 0, len(r.order))
	for _, mode := range r.order {
		out = append(out, r.strategies[mode])
	}
	return out
}
