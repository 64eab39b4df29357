// Package languagetool is a client for the LanguageTool HTTP API
// (POST /v2/check) used by the grammar scorer.
package languagetool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/introscore/internal/domain/scoring"
	"github.com/okian/introscore/pkg/metrics"
)

const (
	collaboratorName = "grammar"
	defaultLanguage  = "en-US"
	probeSentence    = "This is a simple sentence."
)

type checkResponse struct {
	Matches []match `json:"matches"`
}

type match struct {
	Context struct {
		Text string `json:"text"`
	} `json:"context"`
	Replacements []struct {
		Value string `json:"value"`
	} `json:"replacements"`
}

// Client calls a LanguageTool server. It is safe for concurrent use.
type Client struct {
	baseURL  string
	language string
	http     *http.Client
}

// New creates a client for the server at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		language: defaultLanguage,
		http:     &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns every issue LanguageTool reports for text.
func (c *Client) Check(ctx context.Context, text string) ([]scoring.GrammarIssue, error) {
	start := time.Now()
	out, err := c.check(ctx, text)
	metrics.RecordCollaboratorLatency(collaboratorName, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordCollaboratorError(collaboratorName)
		return nil, err
	}
	return out, nil
}

func (c *Client) check(ctx context.Context, text string) ([]scoring.GrammarIssue, error) {
	form := url.Values{}
	form.Set("text", text)
	form.Set("language", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/check", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build check request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("grammar check: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var out checkResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedReply, err)
	}

	issues := make([]scoring.GrammarIssue, 0, len(out.Matches))
	for _, m := range out.Matches {
		issue := scoring.GrammarIssue{Context: m.Context.Text}
		for _, r := range m.Replacements {
			issue.Replacements = append(issue.Replacements, r.Value)
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// Probe runs one check of a fixed sentence.
func (c *Client) Probe(ctx context.Context) error {
	if _, err := c.check(ctx, probeSentence); err != nil {
		return fmt.Errorf("probe languagetool: %w", err)
	}
	return nil
}
