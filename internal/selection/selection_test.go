package selection

import (
	"testing"

	"SparqlScanner/internal/domain"
)

func TestChooseCandidateEmpty(t *testing.T) {
	t.Parallel()

	if _, ok := ChooseCandidate(nil); ok {
		t.Fatal("expected no choice for empty list")
	}
	if _, ok := ChooseVerified(nil); ok {
		t.Fatal("expected no choice for empty verified set")
	}
}

func TestChooseCandidatePrefersExplicit(t *testing.T) {
	t.Parallel()

	candidates := []domain.Candidate{
		{URL: "https://x.org/query", Source: domain.SourceGuessed},
		{URL: "https://x.org/sparql", Source: domain.SourceExplicit},
		{URL: "https://y.org/sparql", Source: domain.SourceExplicit},
	}
	chosen, ok := ChooseCandidate(candidates)
	if !ok || chosen.URL != "https://x.org/sparql" {
		t.Fatalf("unexpected choice: %+v", chosen)
	}
}

func TestChooseCandidateFallsBackToFirst(t *testing.T) {
	t.Parallel()

	candidates := []domain.Candidate{
		{URL: "https://x.org/sparql", Source: domain.SourceGuessed},
		{URL: "https://x.org/query", Source: domain.SourceGuessed},
	}
	chosen, _ := ChooseCandidate(candidates)
	if chosen.URL != "https://x.org/sparql" {
		t.Fatalf("unexpected choice: %+v", chosen)
	}
}

func TestChooseVerifiedUsesDiscoveryOrderForExplicit(t *testing.T) {
	t.Parallel()

	verified := []domain.VerifiedEndpoint{
		{URL: "https://x.org/query", Source: domain.SourceGuessed, Mode: domain.ModeAskGet, Discovery: 2},
		{URL: "https://b.org/sparql", Source: domain.SourceExplicit, Mode: domain.ModeAskPost, Discovery: 1},
		{URL: "https://a.org/sparql", Source: domain.SourceExplicit, Mode: domain.ModeAskGet, Discovery: 0},
	}
	chosen, ok := ChooseVerified(verified)
	if !ok || chosen.URL != "https://a.org/sparql" {
		t.Fatalf("unexpected choice: %+v", chosen)
	}
}

func TestChooseVerifiedGuessedOnlyTakesArrivalOrder(t *testing.T) {
	t.Parallel()

	verified := []domain.VerifiedEndpoint{
		{URL: "https://x.org/query", Source: domain.SourceGuessed, Discovery: 1},
		{URL: "https://x.org/sparql", Source: domain.SourceGuessed, Discovery: 0},
	}
	chosen, _ := ChooseVerified(verified)
	if chosen.URL != "https://x.org/query" {
		t.Fatalf("unexpected choice: %+v", chosen)
	}
}
