package mcp

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/repovalidate/repovalidate/internal/domain"
)

// NewRepoValidateMCPServer creates a new MCP server with all repovalidate
// tools and resources registered. Paths in tool calls resolve against the
// server's working directory.
func NewRepoValidateMCPServer(cfg domain.Config, log *zap.SugaredLogger) *server.MCPServer {
	s := server.NewMCPServer(
		"repovalidate",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, cfg, log)
	registerResources(s, cfg)

	return s
}
