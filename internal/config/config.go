package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type ProjectConfig struct {
	Project  string         `yaml:"project"`
	Version  int            `yaml:"version"`
	Database DatabaseConfig `yaml:"database"`
	Event    EventConfig    `yaml:"event"`
	Edition  EditionConfig  `yaml:"edition"`
	Lookup   LookupConfig   `yaml:"lookup"`
	Site     SiteConfig     `yaml:"site"`
	Gist     GistConfig     `yaml:"gist"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type EventConfig struct {
	Slug string `yaml:"slug"`
	Year int    `yaml:"year"`
}

// EditionConfig holds the per-edition exception tables. Session formats alone
// cannot distinguish keynotes, discussions and lightning-talk blocks from
// ordinary talks, so each edition curates these id lists by hand.
type EditionConfig struct {
	KeynoteSessions       []int64 `yaml:"keynote_sessions"`
	DiscussionSessions    []int64 `yaml:"discussion_sessions"`
	LightningTalkSessions []int64 `yaml:"lightning_talk_sessions"`

	// SpeakerOverrides maps a proposal id to the document key to use in
	// place of the first speaker's resolved identifier (group-authored
	// items such as workshops).
	SpeakerOverrides map[int64]string `yaml:"speaker_overrides"`
}

type LookupConfig struct {
	GithubTokenEnv  string `yaml:"github_token_env"`
	TwitterTokenEnv string `yaml:"twitter_token_env"`
}

type SiteConfig struct {
	RepoURL      string `yaml:"repo_url"`
	Repo         string `yaml:"repo"`
	BotRemoteURL string `yaml:"bot_remote_url"`
	BotOwner     string `yaml:"bot_owner"`
	BaseBranch   string `yaml:"base_branch"`
	WorkDir      string `yaml:"work_dir"`
	AuthorName   string `yaml:"author_name"`
	AuthorEmail  string `yaml:"author_email"`
	TokenEnv     string `yaml:"token_env"`
}

type GistConfig struct {
	ID       string `yaml:"id"`
	File     string `yaml:"file"`
	TokenEnv string `yaml:"token_env"`
}

func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateProjectConfig(&cfg); err != nil {
		return nil, fmt.Errorf("loading project config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(cfg *ProjectConfig) {
	if cfg.Lookup.GithubTokenEnv == "" {
		cfg.Lookup.GithubTokenEnv = "GITHUB_TOKEN"
	}
	if cfg.Lookup.TwitterTokenEnv == "" {
		cfg.Lookup.TwitterTokenEnv = "TWITTER_BEARER_TOKEN"
	}
	if cfg.Site.BaseBranch == "" {
		cfg.Site.BaseBranch = "master"
	}
	if cfg.Site.TokenEnv == "" {
		cfg.Site.TokenEnv = "GITHUB_TOKEN"
	}
	if cfg.Gist.TokenEnv == "" {
		cfg.Gist.TokenEnv = "GIST_TOKEN"
	}
}

func validateProjectConfig(cfg *ProjectConfig) error {
	if strings.TrimSpace(cfg.Project) == "" {
		return fmt.Errorf("project name is required")
	}
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported version: %d", cfg.Version)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	if strings.TrimSpace(cfg.Event.Slug) == "" {
		return fmt.Errorf("event slug is required")
	}
	if cfg.Event.Year <= 0 {
		return fmt.Errorf("event year is required")
	}
	for id, key := range cfg.Edition.SpeakerOverrides {
		if strings.TrimSpace(key) == "" {
			return fmt.Errorf("speaker override for proposal %d is empty", id)
		}
	}
	return nil
}

// ValidateSite checks the fields the publish workflow needs; preview
// commands never touch them.
func (c *SiteConfig) ValidateSite() error {
	if strings.TrimSpace(c.RepoURL) == "" {
		return fmt.Errorf("site repo_url is required")
	}
	if strings.TrimSpace(c.Repo) == "" {
		return fmt.Errorf("site repo (owner/name) is required")
	}
	if strings.TrimSpace(c.BotRemoteURL) == "" {
		return fmt.Errorf("site bot_remote_url is required")
	}
	if strings.TrimSpace(c.BotOwner) == "" {
		return fmt.Errorf("site bot_owner is required")
	}
	if strings.TrimSpace(c.AuthorName) == "" || strings.TrimSpace(c.AuthorEmail) == "" {
		return fmt.Errorf("site author_name and author_email are required")
	}
	return nil
}
