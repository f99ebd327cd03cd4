// Package classify decides from a response's content type and body whether a
// server answered like a SPARQL endpoint. Every function is pure.
package classify

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	htmlSniffLimit        = 500
	xmlAckLimit           = 200_000
	descriptionSniffLimit = 300_000
)

// Content types that declare a boolean ASK result.
var ackContentTypes = []string{
	"application/sparql-results+json",
	"application/sparql-results+xml",
}

// Structured-data content types accepted from a service description probe.
var descriptionContentTypes = []string{
	"text/turtle",
	"application/rdf+xml",
	"application/ld+json",
	"application/n-triples",
	"application/n-quads",
	"application/trig",
	"text/n3",
}

// Lowercased substrings that identify the SPARQL service description vocabulary.
var descriptionMarkers = []string{
	"http://www.w3.org/ns/sparql-service-description#",
	"sd:service",
	"sd:endpoint",
	"sd:supportedlanguage",
}

var (
	htmlPrefix = regexp.MustCompile(`(?i)^(<!doctype\s+html|<html[\s>])`)
	xmlAck     = regexp.MustCompile(`(?is)<sparql[\s>].*?<boolean[^>]*>\s*(true|false)\s*</boolean>.*?</sparql>`)
)

// IsHTMLLike reports whether the response is an HTML page rather than a protocol answer.
func IsHTMLLike(contentType, body string) bool {
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		return true
	}
	head := strings.TrimSpace(prefix(body, htmlSniffLimit))
	return htmlPrefix.MatchString(head)
}

// IsBooleanJSONAck reports whether body is a JSON object with a boolean "boolean" member.
// Malformed JSON does not match.
func IsBooleanJSONAck(body string) bool {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return false
	}
	switch strings.TrimSpace(string(doc["boolean"])) {
	case "true", "false":
		return true
	default:
		return false
	}
}

// IsBooleanXMLAck reports whether the first 200k characters hold a SPARQL XML boolean result.
func IsBooleanXMLAck(body string) bool {
	return xmlAck.MatchString(prefix(body, xmlAckLimit))
}

// DeclaresAck reports whether the content type announces SPARQL results.
func DeclaresAck(contentType string) bool {
	return containsAny(strings.ToLower(contentType), ackContentTypes)
}

// IsStructuredDescriptionContentType reports whether the content type is an RDF serialization.
func IsStructuredDescriptionContentType(contentType string) bool {
	return containsAny(strings.ToLower(contentType), descriptionContentTypes)
}

// IsServiceDescriptionBody reports whether the first 300k characters mention the
// service description vocabulary.
func IsServiceDescriptionBody(body string) bool {
	return containsAny(strings.ToLower(prefix(body, descriptionSniffLimit)), descriptionMarkers)
}

// IsAskAcknowledgment reports whether a response is a valid answer to an ASK probe.
// The declared content type is not required to match: a boolean result under a
// mislabeled type still counts. HTML never does.
func IsAskAcknowledgment(contentType, body string) bool {
	if IsHTMLLike(contentType, body) {
		return false
	}
	return IsBooleanJSONAck(body) || IsBooleanXMLAck(body)
}

// IsServiceDescription reports whether a response is an RDF service description.
func IsServiceDescription(contentType, body string) bool {
	return !IsHTMLLike(contentType, body) &&
		IsStructuredDescriptionContentType(contentType) &&
		IsServiceDescriptionBody(body)
}

// HTMLTitle returns the trimmed <title> of an HTML page, or "" when there is none.
func HTMLTitle(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(prefix(body, descriptionSniffLimit)))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
}

// prefix cuts s to at most n characters without splitting a rune.
func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
