package figma

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// Version is the module version reported by the CLI and the MCP server.
	Version = "0.3.0"

	defaultBaseURL = "https://api.figma.com/v1"
	maxRetries     = 3
)

// Client represents a Figma API client with configured HTTP settings for reliable communication
// with the Figma API. It includes retry logic for rate limits and transient server failures.
type Client struct {
	accessToken string
	baseURL     string
	backoff     time.Duration
	httpClient  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client to a different API root (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBackoff sets the base delay between retries. Attempt n waits n*backoff.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) {
		c.backoff = d
	}
}

// NewClient creates a new Figma API client with the provided personal access token.
// The default transport keeps a small connection pool and a generous timeout, since
// node payloads for large component sets can be several megabytes.
func NewClient(accessToken string, opts ...Option) *Client {
	transport := &http.Transport{
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
		// Disable HTTP/2 to avoid stream errors with large files
		ForceAttemptHTTP2: false,
	}

	c := &Client{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		backoff:     2 * time.Second,
		httpClient: &http.Client{
			Timeout:   5 * time.Minute,
			Transport: transport,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var fileKeyRe = regexp.MustCompile(`^https?://(?:www\.)?figma\.com/(?:file|design)/([A-Za-z0-9]+)(?:/|$|\?|#)`)

// ExtractFileKey extracts the unique file identifier from a Figma URL.
// Supports both /file/ and /design/ URL patterns (e.g., figma.com/file/ABC123/Design-Name).
// The pattern is anchored so that look-alike hosts and paths are rejected.
func ExtractFileKey(figmaURL string) (string, error) {
	matches := fileKeyRe.FindStringSubmatch(figmaURL)
	if len(matches) < 2 {
		return "", fmt.Errorf("invalid Figma URL format: must be a valid figma.com URL with /file/ or /design/ path")
	}

	return matches[1], nil
}

// ExtractNodeIDs extracts node IDs referenced by a Figma URL. Three forms are understood:
// the node-id query parameter, a #fragment and a /nodes/ path segment. Dash separated IDs
// (as written by the Figma web app) are converted to the API's colon form.
// The result is deduplicated, keeps first-seen order, and is empty when the URL names no node.
func ExtractNodeIDs(figmaURL string) ([]string, error) {
	var raw string

	if i := strings.Index(figmaURL, "/nodes/"); i >= 0 {
		raw = figmaURL[i+len("/nodes/"):]
		if j := strings.IndexAny(raw, "?#"); j >= 0 {
			raw = raw[:j]
		}
	} else if i := strings.Index(figmaURL, "?"); i >= 0 {
		query := figmaURL[i+1:]
		if j := strings.Index(query, "#"); j >= 0 {
			query = query[:j]
		}
		for _, pair := range strings.Split(query, "&") {
			key, value, _ := strings.Cut(pair, "=")
			if key == "node-id" {
				unescaped, err := url.QueryUnescape(value)
				if err != nil {
					return nil, fmt.Errorf("invalid node-id parameter %q: %w", value, err)
				}
				raw = unescaped
				break
			}
		}
	} else if i := strings.Index(figmaURL, "#"); i >= 0 {
		raw = figmaURL[i+1:]
	}

	ids := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		id := strings.TrimSpace(part)
		if id == "" {
			continue
		}
		ids = append(ids, strings.ReplaceAll(id, "-", ":"))
	}

	return deduplicateNodeIDs(ids), nil
}

// deduplicateNodeIDs removes repeated IDs, preserving the order of first occurrence.
func deduplicateNodeIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	result := make([]string, 0, len(ids))

	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			result = append(result, id)
		}
	}

	return result
}

// GetFileNodes retrieves the requested nodes, with their full subtrees and the
// component metadata published alongside them.
func (c *Client) GetFileNodes(ctx context.Context, fileKey string, nodeIDs []string) (*NodesResponse, error) {
	if len(nodeIDs) == 0 {
		return nil, fmt.Errorf("at least one node ID is required")
	}

	endpoint := fmt.Sprintf("%s/files/%s/nodes?ids=%s", c.baseURL, url.PathEscape(fileKey), url.QueryEscape(strings.Join(nodeIDs, ",")))

	var nodesResp NodesResponse
	if err := c.getJSON(ctx, endpoint, &nodesResp); err != nil {
		return nil, err
	}

	return &nodesResp, nil
}

// GetLocalVariables retrieves the variables defined in the file. The endpoint is only
// available to members of the file's organization; callers usually treat failure as
// "no variable names" rather than aborting.
func (c *Client) GetLocalVariables(ctx context.Context, fileKey string) (*VariablesResponse, error) {
	endpoint := fmt.Sprintf("%s/files/%s/variables/local", c.baseURL, url.PathEscape(fileKey))

	var varsResp VariablesResponse
	if err := c.getJSON(ctx, endpoint, &varsResp); err != nil {
		return nil, err
	}

	return &varsResp, nil
}

// getJSON performs an authenticated GET and decodes the JSON body into dst.
// Implements automatic retry logic (up to 3 attempts) with linear backoff for handling rate limits
// and temporary failures. The request retries on transport errors, 429 and 5xx responses.
func (c *Client) getJSON(ctx context.Context, endpoint string, dst any) error {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		body, retry, err := c.do(ctx, endpoint, attempt)
		if err == nil {
			if err := json.Unmarshal(body, dst); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			return nil
		}

		lastErr = err
		if !retry || attempt == maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.backoff):
		}
	}

	return lastErr
}

// do executes one attempt and reports whether a failure is worth retrying.
func (c *Client) do(ctx context.Context, endpoint string, attempt int) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Figma-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, fmt.Errorf("attempt %d failed to execute request: %w", attempt, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, fmt.Errorf("attempt %d failed to read response body: %w", attempt, err)
	}

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500
		return nil, retry, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	return body, false, nil
}
