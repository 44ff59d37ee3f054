package main

import (
	"context"
	"os"
	"strings"

	"cfpexport/internal/config"
	"cfpexport/internal/lookup"
	"cfpexport/internal/store"
	"cfpexport/internal/store/postgres"
	"cfpexport/internal/store/sqlite"
)

const configFile = "cfpexport.yaml"

func openDB(ctx context.Context, cfg *config.ProjectConfig) (store.Store, error) {
	if strings.HasPrefix(cfg.Database.DSN, "sqlite://") {
		return sqlite.New(ctx, cfg.Database.DSN)
	}
	return postgres.New(ctx, cfg.Database.DSN)
}

func newLookup(cfg *config.ProjectConfig) *lookup.Client {
	return lookup.NewClient(
		os.Getenv(cfg.Lookup.GithubTokenEnv),
		os.Getenv(cfg.Lookup.TwitterTokenEnv),
	)
}
