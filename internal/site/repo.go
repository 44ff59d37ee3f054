// Package site manages the conference website repository: reading and
// writing the exported document slots and staging them for review through a
// bot-owned fork and a pull request.
package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	gogit "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"

	"cfpexport/internal/config"
)

// botRemote is the name of the fork remote pushes go to.
const botRemote = "bot"

// Slots are the document files the website consumes per edition.
var Slots = []string{"speakers", "lt_speakers", "sponsors", "schedule", "presentations", "lt_presentations"}

type Repo struct {
	path  string
	repo  *gogit.Repository
	cfg   config.SiteConfig
	token string
	year  int
}

// Clone clones the website repository into the configured work directory
// and registers the bot fork as a second remote. An existing clone at the
// path is reused.
func Clone(ctx context.Context, cfg config.SiteConfig, token string, year int) (*Repo, error) {
	if err := cfg.ValidateSite(); err != nil {
		return nil, err
	}

	path := cfg.WorkDir
	if path == "" {
		path = filepath.Join(os.TempDir(), filepath.Base(cfg.Repo))
	}

	repo, err := gogit.PlainCloneContext(ctx, path, false, &gogit.CloneOptions{
		URL:           cfg.RepoURL,
		Auth:          auth(token),
		ReferenceName: plumbing.NewBranchReferenceName(cfg.BaseBranch),
		SingleBranch:  true,
	})
	if err == gogit.ErrRepositoryAlreadyExists {
		repo, err = gogit.PlainOpen(path)
	}
	if err != nil {
		return nil, fmt.Errorf("cloning site repo: %w", err)
	}

	if _, err := repo.CreateRemote(&gitconfig.RemoteConfig{
		Name: botRemote,
		URLs: []string{cfg.BotRemoteURL},
	}); err != nil && err != gogit.ErrRemoteExists {
		return nil, fmt.Errorf("adding bot remote: %w", err)
	}

	return &Repo{path: path, repo: repo, cfg: cfg, token: token, year: year}, nil
}

// slotPath maps a slot name to its data file inside the repository.
func (r *Repo) slotPath(slot string) (string, error) {
	for _, known := range Slots {
		if slot == known {
			return filepath.Join("data", fmt.Sprintf("year_%d", r.year), slot+".yml"), nil
		}
	}
	return "", fmt.Errorf("unknown document slot %q", slot)
}

// Read returns the current contents of a document slot.
func (r *Repo) Read(slot string) ([]byte, error) {
	rel, err := r.slotPath(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(r.path, rel))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return data, nil
}

// Write replaces the contents of a document slot. The change is only staged
// on disk; Publish commits and pushes it.
func (r *Repo) Write(slot string, data []byte) error {
	rel, err := r.slotPath(slot)
	if err != nil {
		return err
	}
	full := filepath.Join(r.path, rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", rel, err)
	}
	return nil
}

// Publish stages everything on a new branch, commits it with the bot
// signature and pushes the branch to the bot fork.
func (r *Repo) Publish(ctx context.Context, title, branch string) error {
	w, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	if err := w.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	}); err != nil {
		return fmt.Errorf("creating branch %s: %w", branch, err)
	}

	if err := w.AddGlob("data/"); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	_, err = w.Commit(title, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  r.cfg.AuthorName,
			Email: r.cfg.AuthorEmail,
			When:  time.Now(),
		},
	})
	if err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	if err := r.repo.PushContext(ctx, &gogit.PushOptions{
		RemoteName: botRemote,
		Auth:       auth(r.token),
	}); err != nil {
		return fmt.Errorf("pushing %s: %w", branch, err)
	}
	return nil
}

// DefaultBranchName returns the timestamped branch name used when the
// caller does not pick one.
func DefaultBranchName(now time.Time) string {
	return "from-cfpapp-" + now.Format("20060102150405")
}

func auth(token string) *githttp.BasicAuth {
	if token == "" {
		return nil
	}
	return &githttp.BasicAuth{Username: "git", Password: token}
}
