package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

func initCmd() *cobra.Command {
	var projectName string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold a new cfpexport project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(projectName) == "" {
				return fmt.Errorf("--name is required")
			}
			return runInit(projectName)
		},
	}
	cmd.Flags().StringVar(&projectName, "name", "", "Project name")
	return cmd
}

func runInit(projectName string) error {
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("%s already exists", configFile)
	}

	year := time.Now().Year()
	contents := fmt.Sprintf(`project: %s
version: 1

database:
  dsn: postgres://localhost:5432/cfp_app

event:
  slug: %s%d
  year: %d

edition:
  keynote_sessions: []
  discussion_sessions: []
  lightning_talk_sessions: []
  speaker_overrides: {}

site:
  repo_url: https://github.com/example/conference-site
  repo: example/conference-site
  bot_remote_url: https://github.com/example-bot/conference-site
  bot_owner: example-bot
  base_branch: master
  author_name: CfP Bot
  author_email: bot@example.com
`, projectName, projectName, year, year)

	if err := os.WriteFile(configFile, []byte(contents), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", configFile, err)
	}

	return nil
}
