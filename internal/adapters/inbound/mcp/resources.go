package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/maturekit/maturekit/internal/domain"
)

// registerResources registers the static catalog resources.
func registerResources(s *server.MCPServer, catalog *domain.RubricCatalog) {
	// 1. maturekit://catalog - the full rubric definition
	s.AddResource(
		mcplib.NewResource(
			"maturekit://catalog",
			"Rubric Catalog",
			mcplib.WithResourceDescription("Full rubric: domains, sub-dimensions, questions and weights"),
			mcplib.WithMIMEType("application/json"),
		),
		catalogResource("maturekit://catalog", func() any { return catalog }),
	)

	// 2. maturekit://levels - the maturity ladder
	s.AddResource(
		mcplib.NewResource(
			"maturekit://levels",
			"Maturity Levels",
			mcplib.WithResourceDescription("Discrete maturity level definitions with score bands"),
			mcplib.WithMIMEType("application/json"),
		),
		catalogResource("maturekit://levels", func() any { return catalog.Levels }),
	)
}

func catalogResource(uri string, value func() any) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := json.MarshalIndent(value(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling resource: %w", err)
		}
		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
