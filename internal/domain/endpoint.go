package domain

import "encoding/json"

// Source tells how a candidate URL was discovered.
type Source string

const (
	SourceExplicit Source = "explicit"
	SourceGuessed  Source = "guessed"
)

// Mode names the probe strategy that confirmed an endpoint.
type Mode string

const (
	ModeAskGet             Mode = "ask_get"
	ModeAskPost            Mode = "ask_post"
	ModeServiceDescription Mode = "service_description"
)

// Candidate is a URL considered as a possible SPARQL endpoint.
type Candidate struct {
	URL    string `json:"url"`
	Source Source `json:"source"`
}

// Explicit reports whether the candidate came from curated input fields.
func (c Candidate) Explicit() bool {
	return c.Source == SourceExplicit
}

// Record is one element of the input collection with its derived candidates.
type Record struct {
	Index      int
	Attributes map[string]any
	Candidates []Candidate
}

// HasExplicit reports whether any of the record's candidates is explicit.
func (r Record) HasExplicit() bool {
	for _, c := range r.Candidates {
		if c.Explicit() {
			return true
		}
	}
	return false
}

// ProbeOutcome is the result of probing a single candidate. Mode is empty on failure.
type ProbeOutcome struct {
	Success bool
	Mode    Mode
}

// Failed is the outcome returned when every strategy was rejected.
var Failed = ProbeOutcome{}

// Succeeded builds a positive outcome for the given strategy.
func Succeeded(mode Mode) ProbeOutcome {
	return ProbeOutcome{Success: true, Mode: mode}
}

// VerifiedEndpoint is a candidate confirmed by one probe strategy.
type VerifiedEndpoint struct {
	URL    string `json:"url"`
	Source Source `json:"source"`
	Mode   Mode   `json:"mode"`

	// Position of the candidate inside the record's candidate list.
	Discovery int `json:"-"`
}

// Explicit reports whether the verified endpoint came from curated input fields.
func (v VerifiedEndpoint) Explicit() bool {
	return v.Source == SourceExplicit
}

// ResultRow is one record's line in the final result document.
type ResultRow struct {
	Index      int
	Attributes map[string]any

	Endpoint string
	Guessed  bool

	// Derivation-only mode.
	Candidates []Candidate

	// Verification mode.
	Verified          bool
	VerifiedBy        Mode
	VerifiedEndpoints []VerifiedEndpoint
}

// Output field names appended to a row's display attributes.
const (
	FieldEndpoint          = "sparqlEndpoint"
	FieldGuessed           = "sparqlGuessed"
	FieldCandidates        = "sparqlCandidates"
	FieldVerified          = "sparqlVerified"
	FieldVerifiedBy        = "sparqlVerifiedBy"
	FieldVerifiedEndpoints = "sparqlVerifiedEndpoints"
)

var reservedFields = map[string]bool{
	FieldEndpoint:          true,
	FieldGuessed:           true,
	FieldCandidates:        true,
	FieldVerified:          true,
	FieldVerifiedBy:        true,
	FieldVerifiedEndpoints: true,
}

// MarshalJSON flattens the display attributes and the endpoint fields into one object.
func (r ResultRow) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Attributes)+4)
	for k, v := range r.Attributes {
		if reservedFields[k] {
			continue
		}
		out[k] = v
	}

	out[FieldEndpoint] = r.Endpoint
	out[FieldGuessed] = r.Guessed

	if r.Verified {
		out[FieldVerified] = true
		out[FieldVerifiedBy] = r.VerifiedBy
		endpoints := r.VerifiedEndpoints
		if endpoints == nil {
			endpoints = []VerifiedEndpoint{}
		}
		out[FieldVerifiedEndpoints] = endpoints
	} else {
		candidates := r.Candidates
		if candidates == nil {
			candidates = []Candidate{}
		}
		out[FieldCandidates] = candidates
	}

	return json.Marshal(out)
}
