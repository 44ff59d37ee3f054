package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cfpexport/internal/config"
	"cfpexport/internal/export"
	"cfpexport/internal/gist"
	"cfpexport/internal/site"
)

func exportCmd() *cobra.Command {
	var title string
	var branch string
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all documents and open a website pull request",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(title, branch, dryRun)
		},
	}
	cmd.Flags().StringVar(&title, "title", "From cfp-app", "Commit and pull request title")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch to push (defaults to a timestamped name)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the documents instead of pushing them")
	return cmd
}

func runExport(title, branch string, dryRun bool) error {
	ctx := context.Background()

	cfg, err := config.LoadProjectConfig(configFile)
	if err != nil {
		return err
	}

	db, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close(ctx)

	ev, err := db.LoadEvent(ctx, cfg.Event.Slug)
	if err != nil {
		return err
	}

	resolver := export.NewResolver(newLookup(cfg))
	classifier := export.NewClassifier(cfg.Edition)

	speakers, err := export.BuildSpeakers(ctx, ev, resolver)
	if err != nil {
		return err
	}
	presentations, err := export.BuildPresentations(ctx, ev, resolver, classifier, cfg.Edition.SpeakerOverrides)
	if err != nil {
		return err
	}
	schedule, err := export.BuildSchedule(ctx, ev, resolver, classifier, cfg.Edition.SpeakerOverrides)
	if err != nil {
		return err
	}

	documents := []struct {
		slot string
		doc  *export.Map
	}{
		{"speakers", speakers},
		{"presentations", presentations},
		{"schedule", schedule},
	}

	rendered := make(map[string][]byte, len(documents)+1)
	order := make([]string, 0, len(documents)+1)
	for _, d := range documents {
		data, err := yaml.Marshal(d.doc)
		if err != nil {
			return fmt.Errorf("rendering %s: %w", d.slot, err)
		}
		rendered[d.slot] = data
		order = append(order, d.slot)
	}

	if cfg.Gist.ID != "" {
		content, err := gist.NewClient(os.Getenv(cfg.Gist.TokenEnv)).FileContent(ctx, cfg.Gist.ID, cfg.Gist.File)
		if err != nil {
			return err
		}
		rendered["sponsors"] = []byte(content)
		order = append(order, "sponsors")
	}

	if dryRun {
		for _, slot := range order {
			fmt.Fprintf(os.Stdout, "--- %s\n%s", slot, rendered[slot])
		}
		return nil
	}

	token := os.Getenv(cfg.Site.TokenEnv)
	repo, err := site.Clone(ctx, cfg.Site, token, cfg.Event.Year)
	if err != nil {
		return err
	}

	for _, slot := range order {
		if err := repo.Write(slot, rendered[slot]); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "  wrote %s (%d bytes)\n", slot, len(rendered[slot]))
	}

	if branch == "" {
		branch = site.DefaultBranchName(time.Now())
	}
	if err := repo.Publish(ctx, title, branch); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "  pushed %s\n", branch)

	if err := repo.OpenPullRequest(ctx, title, branch); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Export complete, pull request opened.")
	return nil
}
