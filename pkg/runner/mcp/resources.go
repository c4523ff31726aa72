package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/ftf/pkg/week"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerWeeksResource(srv, svc)
	registerWeekTemplate(srv, svc)
}

func registerWeeksResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"ftf://weeks",
		"Weeks",
		mcp.WithResourceDescription("Every stored week with role, goal and block counts."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		summaries, err := svc.ListWeeks(ctx)
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"weeks": summaries,
			"count": len(summaries),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerWeekTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"ftf://weeks/{id}",
		"Week Snapshot",
		mcp.WithTemplateDescription("The full snapshot of one week: roles, goals, priorities and blocks."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id := templateArg(request.Params.Arguments["id"])
		if id == "" {
			return nil, fmt.Errorf("week id is required")
		}

		w, err := svc.Week(ctx, week.ID(id))
		if err != nil {
			return nil, err
		}

		payload := map[string]any{
			"week": w,
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

// templateArg unwraps a URI template variable, which may arrive as a string
// or a single element list.
func templateArg(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []string:
		if len(t) > 0 {
			return t[0]
		}
	}
	return ""
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
