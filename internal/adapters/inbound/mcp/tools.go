package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/maturekit/maturekit/internal/application"
	"github.com/maturekit/maturekit/internal/domain"
)

// registerTools registers all MatureKit MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.AssessmentService) {
	// 1. maturekit_assess
	s.AddTool(
		mcplib.NewTool("maturekit_assess",
			mcplib.WithDescription("Run a full maturity assessment from survey responses and return the resulting profile as JSON"),
			mcplib.WithString("user",
				mcplib.Required(),
				mcplib.Description("User id the profile belongs to"),
			),
			mcplib.WithString("company",
				mcplib.Required(),
				mcplib.Description("Company id the profile belongs to"),
			),
			mcplib.WithString("responses",
				mcplib.Required(),
				mcplib.Description("JSON object mapping question ids to raw answers"),
			),
		),
		handleAssess(svc),
	)

	// 2. maturekit_profile
	s.AddTool(
		mcplib.NewTool("maturekit_profile",
			mcplib.WithDescription("Return the stored maturity profile for a user/company pair"),
			mcplib.WithString("user", mcplib.Required(), mcplib.Description("User id")),
			mcplib.WithString("company", mcplib.Required(), mcplib.Description("Company id")),
		),
		handleProfile(svc),
	)

	// 3. maturekit_update_score
	s.AddTool(
		mcplib.NewTool("maturekit_update_score",
			mcplib.WithDescription("Override a single domain score on an existing profile; level and overall score are re-derived"),
			mcplib.WithString("user", mcplib.Required(), mcplib.Description("User id")),
			mcplib.WithString("company", mcplib.Required(), mcplib.Description("Company id")),
			mcplib.WithString("domain", mcplib.Required(), mcplib.Description("Domain id to update")),
			mcplib.WithNumber("score", mcplib.Required(), mcplib.Description("New score in [0,5]")),
		),
		handleUpdateScore(svc),
	)

	// 4. maturekit_domains
	s.AddTool(
		mcplib.NewTool("maturekit_domains",
			mcplib.WithDescription("Return the rubric catalog's domain definitions"),
		),
		handleDomains(svc),
	)

	// 5. maturekit_levels
	s.AddTool(
		mcplib.NewTool("maturekit_levels",
			mcplib.WithDescription("Return the maturity level definitions"),
		),
		handleLevels(svc),
	)
}

func handleAssess(svc *application.AssessmentService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		userID, err := request.RequireString("user")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		companyID, err := request.RequireString("company")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		raw, err := request.RequireString("responses")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		var responses domain.SurveyResponses
		if err := json.Unmarshal([]byte(raw), &responses); err != nil {
			return errorResult(fmt.Sprintf("invalid responses JSON: %v", err)), nil
		}

		profile, err := svc.ConductInitialAssessment(ctx, userID, companyID, responses)
		if err != nil {
			return errorResult(fmt.Sprintf("assessment not saved: %v", err)), nil
		}
		return jsonResult(profile)
	}
}

func handleProfile(svc *application.AssessmentService) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		userID, err := request.RequireString("user")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		companyID, err := request.RequireString("company")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		profile, err := svc.Profile(userID, companyID)
		if err != nil {
			return errorResult(fmt.Sprintf("loading profile failed: %v", err)), nil
		}
		if profile == nil {
			return errorResult(fmt.Sprintf("no profile for %s/%s", companyID, userID)), nil
		}
		return jsonResult(profile)
	}
}

func handleUpdateScore(svc *application.AssessmentService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		userID, err := request.RequireString("user")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		companyID, err := request.RequireString("company")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		domainID, err := request.RequireString("domain")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		score, err := request.RequireFloat("score")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if err := svc.UpdateMaturityScore(ctx, domainID, score, userID, companyID); err != nil {
			return errorResult(fmt.Sprintf("update failed: %v", err)), nil
		}
		return jsonResult(map[string]any{"domain": domainID, "score": score, "updated": true})
	}
}

func handleDomains(svc *application.AssessmentService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(svc.MaturityDomains())
	}
}

func handleLevels(svc *application.AssessmentService) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		return jsonResult(svc.MaturityLevels())
	}
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
