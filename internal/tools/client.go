// Package tools mirrors the MOF HTTP endpoints as MCP tools for chat clients.
package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	"github.com/SscSPs/mof_report_service/internal/apperrors"
)

// Timeouts for forwarded calls. Statement runs read and write several
// snapshots and get the longer budget.
const (
	ReportTimeout  = 300 * time.Second
	DefaultTimeout = 120 * time.Second
)

// Client forwards tool calls to the HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a Client for baseURL. token is sent as a bearer token
// when it is not empty.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// RepairRequestJSON fixes the usual defects of model-written JSON (single
// quotes, trailing commas, code fences) and rejects anything that is still
// not a JSON object.
func RepairRequestJSON(raw string) (json.RawMessage, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("%w: request_json is empty", apperrors.ErrValidation)
	}
	repaired, err := jsonrepair.RepairJSON(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: request_json could not be repaired: %v", apperrors.ErrValidation, err)
	}
	var obj map[string]any
	if err := json.Unmarshal([]byte(repaired), &obj); err != nil {
		return nil, fmt.Errorf("%w: request_json is not a JSON object: %v", apperrors.ErrValidation, err)
	}
	return json.RawMessage(repaired), nil
}

// Post sends payload to path and returns the response body.
func (c *Client) Post(ctx context.Context, path string, payload json.RawMessage, timeout time.Duration) (string, error) {
	return c.do(ctx, http.MethodPost, path, payload, timeout)
}

// Get calls path and returns the response body.
func (c *Client) Get(ctx context.Context, path string, timeout time.Duration) (string, error) {
	return c.do(ctx, http.MethodGet, path, nil, timeout)
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response of %s: %w", path, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return "", fmt.Errorf("%s %s returned %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return string(data), nil
}
