// Package candidates derives the ordered candidate URLs of a record.
package candidates

import (
	"net/url"
	"strings"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
)

// DefaultExplicitFields name the record attributes holding declared endpoints.
var DefaultExplicitFields = []string{"sparqlEndpoint", "sparql", "sparql_endpoint", "endpoint"}

// DefaultBaseFields name the record attributes holding a site URL to guess from.
var DefaultBaseFields = []string{"url", "homepage", "website"}

// DefaultSuffixes are appended to base URLs to guess endpoint locations.
var DefaultSuffixes = []string{"sparql", "sparql/", "query", "endpoint", "sparql-endpoint", "ds/sparql"}

// Deriver builds explicit candidates first, then guessed ones.
type Deriver struct {
	explicitFields []string
	baseFields     []string
	suffixes       []string
}

var _ ports.CandidateDeriver = (*Deriver)(nil)

// NewDeriver falls back to the defaults for any empty list.
func NewDeriver(explicitFields, baseFields, suffixes []string) *Deriver {
	if len(explicitFields) == 0 {
		explicitFields = DefaultExplicitFields
	}
	if len(baseFields) == 0 {
		baseFields = DefaultBaseFields
	}
	if len(suffixes) == 0 {
		suffixes = DefaultSuffixes
	}
	return &Deriver{explicitFields: explicitFields, baseFields: baseFields, suffixes: suffixes}
}

// Derive returns unique http(s) candidates in discovery order; first occurrence wins.
func (d *Deriver) Derive(record domain.RawRecord) []domain.Candidate {
	var out []domain.Candidate
	seen := map[string]bool{}

	add := func(raw string, source domain.Source) {
		u := strings.TrimSpace(raw)
		if !isHTTPURL(u) || seen[u] {
			return
		}
		seen[u] = true
		out = append(out, domain.Candidate{URL: u, Source: source})
	}

	for _, field := range d.explicitFields {
		for _, v := range stringValues(record.Fields[field]) {
			add(v, domain.SourceExplicit)
		}
	}

	for _, field := range d.baseFields {
		for _, base := range stringValues(record.Fields[field]) {
			base = strings.TrimSpace(base)
			if !isHTTPURL(base) {
				continue
			}
			for _, suffix := range d.suffixes {
				add(joinSuffix(base, suffix), domain.SourceGuessed)
			}
		}
	}

	return out
}

// joinSuffix appends suffix to the base path, dropping any query or fragment.
func joinSuffix(base, suffix string) string {
	parsed, err := url.Parse(base)
	if err != nil {
		return ""
	}
	parsed.RawQuery = ""
	parsed.Fragment = ""
	parsed.Path = strings.TrimRight(parsed.Path, "/") + "/" + strings.TrimLeft(suffix, "/")
	parsed.RawPath = ""
	return parsed.String()
}

func isHTTPURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return false
	}
	scheme := strings.ToLower(parsed.Scheme)
	return scheme == "http" || scheme == "https"
}

// stringValues accepts a string or an array of strings.
func stringValues(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return t
	default:
		return nil
	}
}
