package apiclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// Client is a thin typed front over the anubis JSON API. Methods return the
// raw "data" payload so callers can pass the JSON through unmodified.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// APIError is the decoded error body of a failed API call.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type envelope struct {
	Success bool                `json:"success"`
	Data    jsoniter.RawMessage `json:"data"`
	Error   *APIError           `json:"error"`
}

// LoadStudents posts a raw roster document; the server validates it.
func (c *Client) LoadStudents(ctx context.Context, roster []byte) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/api/student/load", bytes.NewReader(roster))
}

func (c *Client) ListStudents(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/student", nil)
}

func (c *Client) AddAssignment(ctx context.Context, name, release, due string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"name":    name,
		"release": release,
		"due":     due,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/api/assignment/add", bytes.NewReader(body))
}

func (c *Client) ListAssignments(ctx context.Context) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/assignment", nil)
}

func (c *Client) AssignmentStats(ctx context.Context, assignment string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/stats/"+url.PathEscape(assignment), nil)
}

func (c *Client) StudentStats(ctx context.Context, assignment, netid string) ([]byte, error) {
	return c.do(ctx, http.MethodGet,
		"/api/stats/"+url.PathEscape(assignment)+"/"+url.PathEscape(netid), nil)
}

func (c *Client) AddSubmission(ctx context.Context, assignment, netid, commitHash string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"assignment": assignment,
		"netid":      netid,
		"commit":     commitHash,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	return c.do(ctx, http.MethodPost, "/api/submission", bytes.NewReader(body))
}

func (c *Client) GetSubmission(ctx context.Context, id string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, "/api/submission/"+url.PathEscape(id), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%s %s: unexpected response (status %d)", method, path, resp.StatusCode)
	}

	if !env.Success {
		if env.Error != nil {
			return nil, env.Error
		}
		return nil, fmt.Errorf("%s %s: request failed (status %d)", method, path, resp.StatusCode)
	}

	return env.Data, nil
}
