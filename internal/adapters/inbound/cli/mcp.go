package cli

import (
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/repovalidate/repovalidate/internal/adapters/inbound/mcp"
)

func newMCPCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the repovalidate MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(global))
	return cmd
}

func newMCPServeCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start repovalidate MCP server (stdio)",
		Long:  "Start the repovalidate MCP server using stdio transport. Assistants can validate and classify single files and read the failure report.",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, cfg, err := setup(cmd, global)
			if err != nil {
				return err
			}
			s := mcpadapter.NewRepoValidateMCPServer(cfg, log)
			return server.ServeStdio(s)
		},
	}
}
