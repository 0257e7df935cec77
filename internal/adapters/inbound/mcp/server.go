package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/maturekit/maturekit/internal/application"
	"github.com/maturekit/maturekit/internal/domain"
)

// NewMatureKitMCPServer creates an MCP server exposing the assessment
// pipeline to AI assistants: run assessments, read profiles, and inspect the
// rubric catalog.
func NewMatureKitMCPServer(svc *application.AssessmentService, catalog *domain.RubricCatalog) *server.MCPServer {
	s := server.NewMCPServer(
		"maturekit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc)
	registerResources(s, catalog)

	return s
}
