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

func speakersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "speakers",
		Short: "Print the speaker directory as YAML",
		RunE:  runSpeakers,
	}
}

func runSpeakers(cmd *cobra.Command, args []string) error {
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

	doc, err := export.BuildSpeakers(ctx, ev, export.NewResolver(newLookup(cfg)))
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
