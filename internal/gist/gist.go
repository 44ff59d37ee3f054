// Package gist fetches externally curated documents (the sponsors list)
// from a GitHub gist.
package gist

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

type Option func(*Client)

// WithBaseURL overrides the GitHub API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    "https://api.github.com",
		token:      token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FileContent returns the content of one file inside a gist.
func (c *Client) FileContent(ctx context.Context, gistID, filename string) (string, error) {
	url := fmt.Sprintf("%s/gists/%s", c.baseURL, gistID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("fetching gist %s: %w", gistID, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching gist %s: %w", gistID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching gist %s: unexpected status %s", gistID, resp.Status)
	}

	var body struct {
		Files map[string]struct {
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decoding gist %s: %w", gistID, err)
	}

	file, ok := body.Files[filename]
	if !ok {
		return "", fmt.Errorf("gist %s has no file %q", gistID, filename)
	}
	return file.Content, nil
}
