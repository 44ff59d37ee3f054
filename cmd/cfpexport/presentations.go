package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"cfpexport/internal/config"
	"cfpexport/internal/export"
)

func presentationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presentations",
		Short: "Print the presentation catalog as YAML",
		RunE:  runPresentations,
	}
}

func runPresentations(cmd *cobra.Command, args []string) error {
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

	doc, err := export.BuildPresentations(ctx, ev, resolver, classifier, cfg.Edition.SpeakerOverrides)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, string(data))
	return nil
}
