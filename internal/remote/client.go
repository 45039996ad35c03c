// Package remote is the HTTP client for the practice server's hiring API.
// It only speaks the request/response contracts; it keeps no state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/thenoetrevino/hirepipe/internal/models"
)

// Client talks to the hiring endpoints of one practice server
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithToken sends token as a bearer credential on every request
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// NewClient creates a client for the server at baseURL
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListApplications returns every application of one job posting
func (c *Client) ListApplications(ctx context.Context, practiceID, jobPostingID string) ([]models.Application, error) {
	q := url.Values{"practiceId": {practiceID}, "jobPostingId": {jobPostingID}}
	raw, err := c.getList(ctx, "/api/hiring/applications", q)
	if err != nil {
		return nil, err
	}

	apps := make([]models.Application, 0, len(raw))
	for i, r := range raw {
		var app models.Application
		if err := json.Unmarshal(r, &app); err != nil {
			slog.Warn("malformed application record", "index", i, "error", err)
			h := decodeHeader(r)
			app = models.Application{ID: h.ID, Status: h.Status, Stage: h.Stage}
		}
		apps = append(apps, app)
	}
	return apps, nil
}

// ListCandidates returns every non-archived candidate of a practice
func (c *Client) ListCandidates(ctx context.Context, practiceID string) ([]models.Candidate, error) {
	q := url.Values{"practiceId": {practiceID}, "excludeArchived": {"true"}}
	raw, err := c.getList(ctx, "/api/hiring/candidates", q)
	if err != nil {
		return nil, err
	}

	candidates := make([]models.Candidate, 0, len(raw))
	for i, r := range raw {
		var cand models.Candidate
		if err := json.Unmarshal(r, &cand); err != nil {
			slog.Warn("malformed candidate record", "index", i, "error", err)
			h := decodeHeader(r)
			cand = models.Candidate{ID: h.ID, Status: h.Status}
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// ListStages returns the stage definitions of one job posting
func (c *Client) ListStages(ctx context.Context, practiceID, jobPostingID string) ([]models.StageDefinition, error) {
	var defs []models.StageDefinition
	q := url.Values{"practiceId": {practiceID}, "jobPostingId": {jobPostingID}}
	if err := c.do(ctx, http.MethodGet, "/api/hiring/pipeline-stages", q, nil, &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// ListJobPostings returns the job postings a board can be filtered by
func (c *Client) ListJobPostings(ctx context.Context, practiceID string) ([]models.JobPosting, error) {
	var jobs []models.JobPosting
	q := url.Values{"practiceId": {practiceID}}
	if err := c.do(ctx, http.MethodGet, "/api/hiring/job-postings", q, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// UpdateApplicationStage writes a new stage to one application
func (c *Client) UpdateApplicationStage(ctx context.Context, applicationID, stage string) error {
	path := "/api/hiring/applications/" + url.PathEscape(applicationID)
	return c.do(ctx, http.MethodPut, path, nil, map[string]string{"stage": stage}, nil)
}

// UpdateCandidateStatus writes a new status to one candidate
func (c *Client) UpdateCandidateStatus(ctx context.Context, candidateID, status string) error {
	path := "/api/hiring/candidates/" + url.PathEscape(candidateID)
	return c.do(ctx, http.MethodPatch, path, nil, map[string]string{"status": status}, nil)
}

func (c *Client) getList(ctx context.Context, path string, q url.Values) ([]json.RawMessage, error) {
	var raw []json.RawMessage
	if err := c.do(ctx, http.MethodGet, path, q, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			slog.Error("error closing response body", "error", closeErr)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var payload struct {
		Error string `json:"error"`
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(data, &payload) == nil {
		apiErr.Message = payload.Error
	}
	return apiErr
}

// recordHeader is the minimum salvaged from a record that fails to decode
type recordHeader struct {
	ID     string
	Status string
	Stage  string
}

func decodeHeader(raw json.RawMessage) recordHeader {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if dec.Decode(&fields) != nil {
		return recordHeader{}
	}
	str := func(key string) string {
		switch v := fields[key].(type) {
		case string:
			return v
		case json.Number:
			return v.String()
		default:
			return ""
		}
	}
	return recordHeader{ID: str("id"), Status: str("status"), Stage: str("stage")}
}
