// Package selection picks the one endpoint reported for a record.
package selection

import "SparqlScanner/internal/domain"

// ChooseCandidate returns the first explicit candidate, otherwise the first candidate.
// ok is false only for an empty list.
func ChooseCandidate(candidates []domain.Candidate) (chosen domain.Candidate, ok bool) {
	if len(candidates) == 0 {
		return domain.Candidate{}, false
	}
	for _, c := range candidates {
		if c.Explicit() {
			return c, true
		}
	}
	return candidates[0], true
}

// ChooseVerified returns the explicit endpoint discovered earliest, otherwise the
// first entry of the verified set.
//
// The verified set is in arrival order, so when only guessed endpoints verified
// the choice depends on which probe finished first and may differ between runs.
func ChooseVerified(verified []domain.VerifiedEndpoint) (chosen domain.VerifiedEndpoint, ok bool) {
	if len(verified) == 0 {
		return domain.VerifiedEndpoint{}, false
	}
	found := false
	for _, v := range verified {
		if !v.Explicit() {
			continue
		}
		if !found || v.Discovery < chosen.Discovery {
			chosen = v
			found = true
		}
	}
	if found {
		return chosen, true
	}
	return verified[0], true
}
