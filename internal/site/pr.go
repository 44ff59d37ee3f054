package site

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// githubAPI is overridable in tests.
var githubAPI = "https://api.github.com"

// OpenPullRequest opens a review request from the bot fork's branch against
// the base branch of the main repository. Called only after Publish
// succeeded; a failure here leaves the pushed branch in place for a manual
// retry.
func (r *Repo) OpenPullRequest(ctx context.Context, title, branch string) error {
	payload, err := json.Marshal(map[string]string{
		"title": title,
		"head":  r.cfg.BotOwner + ":" + branch,
		"base":  r.cfg.BaseBranch,
	})
	if err != nil {
		return fmt.Errorf("encoding pull request: %w", err)
	}

	url := fmt.Sprintf("%s/repos/%s/pulls", githubAPI, r.cfg.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("creating pull request: %w", err)
	}
	req.Header.Set("Authorization", "token "+r.token)
	req.Header.Set("Accept", "application/vnd.github+json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("creating pull request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("creating pull request: unexpected status %s", resp.Status)
	}
	return nil
}
