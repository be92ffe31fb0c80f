package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/report"
	"github.com/repovalidate/repovalidate/internal/application"
	"github.com/repovalidate/repovalidate/internal/bootstrap"
	"github.com/repovalidate/repovalidate/internal/domain"
)

// registerTools registers all repovalidate MCP tools on the given server.
func registerTools(s *server.MCPServer, cfg domain.Config, log *zap.SugaredLogger) {
	s.AddTool(
		mcplib.NewTool("repovalidate_validate_file",
			mcplib.WithDescription("Validate one file with the checker for its type. Failures are also appended to the failure report."),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file to validate"),
			),
		),
		handleValidateFile(cfg, log),
	)

	s.AddTool(
		mcplib.NewTool("repovalidate_classify",
			mcplib.WithDescription("Return the variant a file is classified as and the validator it is routed to, without validating it"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path of the file to classify"),
			),
		),
		handleClassify(cfg, log),
	)
}

type validateFileResult struct {
	Result   domain.TargetResult `json:"result"`
	Halted   bool                `json:"halted,omitempty"`
	Report   []string            `json:"report,omitempty"`
	ExitCode int                 `json:"exit_code"`
}

func handleValidateFile(cfg domain.Config, log *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if _, err := os.Stat(file); err != nil {
			return errorResult(fmt.Sprintf("cannot validate %s: %v", file, err)), nil
		}

		var live bytes.Buffer
		failureLog := report.NewFailureLog(cfg.ReportPath)
		defer failureLog.Close()

		svc := bootstrap.NewDispatchService(cfg, report.NewReporter(&live, failureLog), log)
		result, err := svc.ValidateTarget(ctx, file)

		out := validateFileResult{Result: result, ExitCode: result.ExitCode()}
		if err != nil {
			var halt *domain.HaltError
			if !errors.As(err, &halt) {
				return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
			}
			out.Halted = true
		}
		for _, o := range result.Outcomes {
			if o.Failed() {
				out.Report = append(out.Report, report.FormatFailure(o)...)
			}
		}
		return jsonResult(out)
	}
}

func handleClassify(cfg domain.Config, log *zap.SugaredLogger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		cls, validators := bootstrap.Validators(cfg)
		svc := application.NewDispatchService(cls, validators, nil, application.DispatchOptions{
			DefaultVariant: cfg.DefaultVariant,
		}, log)

		c := svc.Route(file)
		return jsonResult(struct {
			domain.Classification
			Check string `json:"check"`
		}{c, domain.CheckFor(c.Route)})
	}
}

func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
