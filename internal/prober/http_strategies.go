package prober

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"SparqlScanner/internal/classify"
	"SparqlScanner/internal/domain"
)

const (
	askQuery = "ASK {}"

	askAccept = "application/sparql-results+json, application/sparql-results+xml;q=0.9, " +
		"application/json;q=0.8, application/xml;q=0.7, */*;q=0.1"
	descriptionAccept = "text/turtle, application/rdf+xml;q=0.9, application/ld+json;q=0.8, " +
		"application/n-triples;q=0.7, text/n3;q=0.6"

	defaultMaxBody = 1 << 20
)

// fetcher performs a request and reads a bounded body.
type fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
}

type response struct {
	status      int
	contentType string
	body        string
}

func (f fetcher) do(req *http.Request, accept string) (response, error) {
	req.Header.Set("Accept", accept)
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return response{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	limit := f.maxBody
	if limit <= 0 {
		limit = defaultMaxBody
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return response{}, fmt.Errorf("read body: %w", err)
	}

	return response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		body:        string(raw),
	}, nil
}

func successful(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// judgeAsk applies the ASK acknowledgment criteria shared by GET and POST.
func judgeAsk(resp response) Attempt {
	attempt := Attempt{Status: resp.status, ContentType: resp.contentType}
	switch {
	case !successful(resp.status):
		attempt.Reason = fmt.Sprintf("status %d", resp.status)
	case classify.IsHTMLLike(resp.contentType, resp.body):
		attempt.Reason = "html response"
		attempt.Title = classify.HTMLTitle(resp.body)
	case !classify.IsAskAcknowledgment(resp.contentType, resp.body):
		attempt.Reason = "no boolean result"
	default:
		attempt.OK = true
	}
	return attempt
}

func failedAttempt(err error) Attempt {
	return Attempt{Reason: err.Error()}
}

// AskGet sends ASK {} as a query parameter.
type AskGet struct {
	fetcher fetcher
}

func (s *AskGet) Mode() domain.Mode { return domain.ModeAskGet }

func (s *AskGet) Try(ctx context.Context, target string) Attempt {
	probeURL, err := withQuery(target)
	if err != nil {
		return failedAttempt(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, probeURL, nil)
	if err != nil {
		return failedAttempt(fmt.Errorf("build request: %w", err))
	}
	resp, err := s.fetcher.do(req, askAccept)
	if err != nil {
		return failedAttempt(err)
	}
	return judgeAsk(resp)
}

// AskPost sends ASK {} as a form-encoded body.
type AskPost struct {
	fetcher fetcher
}

func (s *AskPost) Mode() domain.Mode { return domain.ModeAskPost }

func (s *AskPost) Try(ctx context.Context, target string) Attempt {
	form := url.Values{}
	form.Set("query", askQuery)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(form.Encode()))
	if err != nil {
		return failedAttempt(fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.fetcher.do(req, askAccept)
	if err != nil {
		return failedAttempt(err)
	}
	return judgeAsk(resp)
}

// ServiceDescription fetches the URL asking for RDF and looks for the
// SPARQL service description vocabulary.
type ServiceDescription struct {
	fetcher fetcher
}

func (s *ServiceDescription) Mode() domain.Mode { return domain.ModeServiceDescription }

func (s *ServiceDescription) Try(ctx context.Context, target string) Attempt {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return failedAttempt(fmt.Errorf("build request: %w", err))
	}
	resp, err := s.fetcher.do(req, descriptionAccept)
	if err != nil {
		return failedAttempt(err)
	}

	attempt := Attempt{Status: resp.status, ContentType: resp.contentType}
	switch {
	case !successful(resp.status):
		attempt.Reason = fmt.Sprintf("status %d", resp.status)
	case classify.IsHTMLLike(resp.contentType, resp.body):
		attempt.Reason = "html response"
		attempt.Title = classify.HTMLTitle(resp.body)
	case !classify.IsStructuredDescriptionContentType(resp.contentType):
		attempt.Reason = "not an rdf content type"
	case !classify.IsServiceDescriptionBody(resp.body):
		attempt.Reason = "no service description markers"
	default:
		attempt.OK = true
	}
	return attempt
}

func withQuery(target string) (string, error) {
	parsed, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("invalid candidate url %s: %w", target, err)
	}

	query := parsed.Query()
	query.Set("query", askQuery)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
