package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cfpexport/internal/store"
)

var _ HandleLookup = (*Client)(nil)

// Client looks up handles against the GitHub and Twitter REST APIs.
type Client struct {
	httpClient   *http.Client
	githubBase   string
	twitterBase  string
	githubToken  string
	twitterToken string
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithGithubBaseURL overrides the GitHub API base URL.
func WithGithubBaseURL(base string) Option {
	return func(c *Client) { c.githubBase = base }
}

// WithTwitterBaseURL overrides the Twitter API base URL.
func WithTwitterBaseURL(base string) Option {
	return func(c *Client) { c.twitterBase = base }
}

func NewClient(githubToken, twitterToken string, opts ...Option) *Client {
	c := &Client{
		httpClient:   &http.Client{Timeout: 15 * time.Second},
		githubBase:   "https://api.github.com",
		twitterBase:  "https://api.twitter.com",
		githubToken:  githubToken,
		twitterToken: twitterToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) HandleFor(ctx context.Context, platform, uid string) (string, error) {
	switch platform {
	case store.PlatformGithub:
		return c.githubHandle(ctx, uid)
	case store.PlatformTwitter:
		return c.twitterHandle(ctx, uid)
	default:
		return "", fmt.Errorf("unknown platform %q", platform)
	}
}

func (c *Client) githubHandle(ctx context.Context, uid string) (string, error) {
	var body struct {
		Login string `json:"login"`
	}
	url := fmt.Sprintf("%s/user/%s", c.githubBase, uid)
	if err := c.getJSON(ctx, url, "token "+c.githubToken, &body); err != nil {
		return "", fmt.Errorf("looking up github user %s: %w", uid, err)
	}
	if body.Login == "" {
		return "", fmt.Errorf("looking up github user %s: empty login", uid)
	}
	return body.Login, nil
}

func (c *Client) twitterHandle(ctx context.Context, uid string) (string, error) {
	var body struct {
		Data struct {
			Username string `json:"username"`
		} `json:"data"`
	}
	url := fmt.Sprintf("%s/2/users/%s", c.twitterBase, uid)
	if err := c.getJSON(ctx, url, "Bearer "+c.twitterToken, &body); err != nil {
		return "", fmt.Errorf("looking up twitter user %s: %w", uid, err)
	}
	if body.Data.Username == "" {
		return "", fmt.Errorf("looking up twitter user %s: empty username", uid)
	}
	return body.Data.Username, nil
}

func (c *Client) getJSON(ctx context.Context, url, authorization string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
