package mcp

import (
	"context"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"gopkg.in/yaml.v3"

	"cfpexport/internal/export"
	"cfpexport/internal/store"
)

type PreviewInput struct {
	Slug string `json:"slug,omitempty" jsonschema:"event slug; defaults to the configured event"`
}

type PreviewOutput struct {
	Slug     string `json:"slug"`
	Document string `json:"document"`
}

func (s *Server) registerTools() {
	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "preview_speakers",
		Description: "Render the speaker directory as YAML",
	}, s.handlePreviewSpeakers)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "preview_presentations",
		Description: "Render the presentation catalog as YAML",
	}, s.handlePreviewPresentations)

	sdk.AddTool(s.mcp, &sdk.Tool{
		Name:        "preview_schedule",
		Description: "Render the schedule grid as YAML",
	}, s.handlePreviewSchedule)
}

func (s *Server) handlePreviewSpeakers(ctx context.Context, req *sdk.CallToolRequest, input PreviewInput) (*sdk.CallToolResult, PreviewOutput, error) {
	ev, resolver, _, err := s.load(ctx, input.Slug)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	doc, err := export.BuildSpeakers(ctx, ev, resolver)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	return s.output(ev, doc)
}

func (s *Server) handlePreviewPresentations(ctx context.Context, req *sdk.CallToolRequest, input PreviewInput) (*sdk.CallToolResult, PreviewOutput, error) {
	ev, resolver, classifier, err := s.load(ctx, input.Slug)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	doc, err := export.BuildPresentations(ctx, ev, resolver, classifier, s.cfg.Edition.SpeakerOverrides)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	return s.output(ev, doc)
}

func (s *Server) handlePreviewSchedule(ctx context.Context, req *sdk.CallToolRequest, input PreviewInput) (*sdk.CallToolResult, PreviewOutput, error) {
	ev, resolver, classifier, err := s.load(ctx, input.Slug)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	doc, err := export.BuildSchedule(ctx, ev, resolver, classifier, s.cfg.Edition.SpeakerOverrides)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	return s.output(ev, doc)
}

func (s *Server) load(ctx context.Context, slug string) (*store.Event, *export.Resolver, *export.Classifier, error) {
	if slug == "" {
		slug = s.cfg.Event.Slug
	}
	ev, err := s.db.LoadEvent(ctx, slug)
	if err != nil {
		return nil, nil, nil, err
	}
	return ev, export.NewResolver(s.lookup), export.NewClassifier(s.cfg.Edition), nil
}

func (s *Server) output(ev *store.Event, doc *export.Map) (*sdk.CallToolResult, PreviewOutput, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, PreviewOutput{}, err
	}
	return nil, PreviewOutput{Slug: ev.Slug, Document: string(data)}, nil
}
