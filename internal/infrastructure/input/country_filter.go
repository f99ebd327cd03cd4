package input

import (
	"strings"
	"unicode"

	"SparqlScanner/internal/domain"
	"SparqlScanner/internal/ports"
)

// CountryFilter keeps records whose country attribute matches the wanted country.
type CountryFilter struct {
	field string
	want  string
}

var _ ports.RecordFilter = (*CountryFilter)(nil)

// NewCountryFilter matches field against country; an empty country keeps every record.
func NewCountryFilter(field, country string) *CountryFilter {
	if field == "" {
		field = "country"
	}
	return &CountryFilter{field: field, want: normalizeKey(country)}
}

// Keep accepts a string or an array of strings in the country attribute.
func (f *CountryFilter) Keep(record domain.RawRecord) bool {
	if f.want == "" {
		return true
	}
	switch v := record.Fields[f.field].(type) {
	case string:
		return normalizeKey(v) == f.want
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok && normalizeKey(s) == f.want {
				return true
			}
		}
	}
	return false
}

// normalizeKey lowercases and collapses everything but letters and digits to single spaces.
func normalizeKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	b.Grow(len(s))
	prevSpace := false

	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			prevSpace = false
			continue
		}
		if !prevSpace {
			b.WriteByte(' ')
			prevSpace = true
		}
	}

	return strings.TrimSpace(b.String())
}
