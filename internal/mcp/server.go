// Package mcp exposes the export builders as MCP tools so the program team
// can preview documents over stdio without touching the website repository.
package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"cfpexport/internal/config"
	"cfpexport/internal/lookup"
	"cfpexport/internal/store"
)

type Server struct {
	cfg    *config.ProjectConfig
	db     store.Store
	lookup lookup.HandleLookup
	mcp    *sdk.Server
}

func NewServer(cfg *config.ProjectConfig, db store.Store, l lookup.HandleLookup, version string) *Server {
	s := &Server{
		cfg:    cfg,
		db:     db,
		lookup: l,
		mcp: sdk.NewServer(&sdk.Implementation{
			Name:    "cfpexport",
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

func (s *Server) Run(ctx context.Context, transport sdk.Transport) error {
	return s.mcp.Run(ctx, transport)
}
