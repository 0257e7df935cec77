package cli

import (
	mcpadapter "github.com/maturekit/maturekit/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the MatureKit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MatureKit MCP server (stdio)",
		Long:  "Start the MatureKit MCP server using stdio transport. This lets AI assistants run assessments, read profiles and inspect the rubric catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cat, err := buildService(flags)
			if err != nil {
				return err
			}
			s := mcpadapter.NewMatureKitMCPServer(svc, cat)
			return server.ServeStdio(s)
		},
	}

	registerServiceFlags(cmd, &flags)
	return cmd
}
