package mcp

import (
	"context"
	"errors"
	"fmt"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/repovalidate/repovalidate/internal/domain"
)

const failureReportURI = "repovalidate://failure-report"

// registerResources registers all repovalidate MCP resources on the given server.
func registerResources(s *server.MCPServer, cfg domain.Config) {
	s.AddResource(
		mcplib.NewResource(
			failureReportURI,
			"Failure Report",
			mcplib.WithResourceDescription("Accumulated failure blocks from every run that used this report file"),
			mcplib.WithMIMEType("text/plain"),
		),
		handleFailureReportResource(cfg.ReportPath),
	)
}

func handleFailureReportResource(reportPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		data, err := os.ReadFile(reportPath)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading failure report: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      failureReportURI,
				MIMEType: "text/plain",
				Text:     string(data),
			},
		}, nil
	}
}
