package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cfpexport/internal/config"
	"cfpexport/internal/ics"
)

func icsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ics",
		Short: "Print the program as an iCalendar feed",
		RunE:  runICS,
	}
}

func runICS(cmd *cobra.Command, args []string) error {
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

	out, err := ics.Render(ev)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}
