package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/report"
	"github.com/repovalidate/repovalidate/internal/adapters/outbound/tui"
	"github.com/repovalidate/repovalidate/internal/application"
	"github.com/repovalidate/repovalidate/internal/bootstrap"
	"github.com/repovalidate/repovalidate/internal/domain"
)

var (
	version = "dev"
	commit  = "none"
)

type runOptions struct {
	pep8Ignore       []string
	shellcheckIgnore []string
	gitLatest        bool
	filePath         string
	reportPath       string
	timeout          time.Duration
	noStyle          bool
	jsonOut          bool
}

func newRootCmd() *cobra.Command {
	var (
		global globalOptions
		opts   runOptions
	)

	cmd := &cobra.Command{
		Use:   "repovalidate [flags] [files...]",
		Short: "Validate repository files with the right checker per file type",
		Long: "repovalidate picks a validator for every target file (YAML metadata, Python style, " +
			"PHP syntax, shellcheck), reports each result, appends failures to a report file and " +
			"exits with the number of failing files.",
		Args:          existingFiles,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, &global, &opts, args)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&global.configPath, "config", defaultConfigPath, "Project config file")
	pf.StringVar(&global.logLevel, "log-level", defaultLogLevel, "Diagnostic log level (debug, info, warn, error)")

	f := cmd.Flags()
	f.StringSliceVarP(&opts.pep8Ignore, "pep8-ignore", "p", []string{"E501"}, "Style rule codes to ignore")
	f.StringSliceVarP(&opts.shellcheckIgnore, "shellcheck-ignore", "s", nil, "Shellcheck codes to ignore")
	f.BoolVarP(&opts.gitLatest, "git-latest", "g", false, "Validate only the files touched by the latest commit")
	f.StringVarP(&opts.filePath, "file-path", "f", "", "Validate a single file")
	f.StringVar(&opts.reportPath, "report", domain.DefaultReportPath, "Failure report file (appended, never truncated)")
	f.DurationVar(&opts.timeout, "timeout", 0, "Timeout per external checker invocation (0 disables)")
	f.BoolVar(&opts.noStyle, "no-style", false, "Disable the in-process Python style checker")
	f.BoolVar(&opts.jsonOut, "json", false, "Print the run summary as JSON on stdout")

	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newClassifyCmd(&global))
	cmd.AddCommand(newMCPCmd(&global))
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

// Execute runs the CLI until completion or SIGINT/SIGTERM. Errors that were
// not already reported are printed to stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	printError(os.Stderr, err)
	return err
}

func runValidate(cmd *cobra.Command, global *globalOptions, opts *runOptions, args []string) error {
	log, cfg, err := setup(cmd, global)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()
	applyRunFlags(cmd, opts, &cfg)
	if err := cfg.Validate(); err != nil {
		return usageError(fmt.Errorf("invalid options: %w", err))
	}

	files := args
	if opts.filePath != "" {
		files = append([]string{opts.filePath}, args...)
	}

	set, err := bootstrap.NewTargetService(log).Resolve(application.TargetRequest{
		GitLatest:    opts.gitLatest,
		Files:        files,
		Root:         ".",
		ExcludePaths: cfg.ExcludePaths,
		ReportPath:   cfg.ReportPath,
	})
	if err != nil {
		return fmt.Errorf("selecting targets: %w", err)
	}

	live := cmd.OutOrStdout()
	if opts.jsonOut {
		live = cmd.ErrOrStderr()
	}
	failureLog := report.NewFailureLog(cfg.ReportPath)
	svc := bootstrap.NewDispatchService(cfg, report.NewReporter(live, failureLog), log)

	summary, runErr := svc.Run(cmd.Context(), set)
	if err := failureLog.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("closing failure report: %w", err)
	}
	log.Debugw("failure report", "path", cfg.ReportPath, "blocks", failureLog.Blocks())

	if err := printSummary(cmd.OutOrStdout(), live, summary, cfg.ReportPath, opts.jsonOut); err != nil {
		return err
	}

	if runErr != nil {
		var halt *domain.HaltError
		if errors.As(runErr, &halt) {
			return &ExitError{Code: domain.ExitFailure, Err: runErr}
		}
		return runErr
	}
	if code := domain.ClampExitCode(summary.ExitCode); code != domain.ExitSuccess {
		return &ExitError{Code: code, Silent: true,
			Err: fmt.Errorf("%d of %d target(s) failed", summary.Failures, summary.Targets)}
	}
	return nil
}

// existingFiles rejects positional arguments that are not files, so a
// space-separated ignore list such as "-p E501 W291" fails instead of turning
// W291 into a target.
func existingFiles(_ *cobra.Command, args []string) error {
	for _, a := range args {
		info, err := os.Stat(a)
		if err != nil || info.IsDir() {
			return usageError(fmt.Errorf("argument %q is not a file (pass several codes as -p E501,W291)", a))
		}
	}
	return nil
}

// applyRunFlags overrides config values with explicitly set flags. The -p
// default only applies when the config file does not set style.ignore.
func applyRunFlags(cmd *cobra.Command, opts *runOptions, cfg *domain.Config) {
	flags := cmd.Flags()
	if flags.Changed("pep8-ignore") {
		cfg.Style.Ignore = opts.pep8Ignore
	}
	if flags.Changed("shellcheck-ignore") {
		cfg.Shellcheck.Ignore = opts.shellcheckIgnore
	}
	if flags.Changed("report") {
		cfg.ReportPath = opts.reportPath
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if opts.noStyle {
		cfg.Style.Enabled = false
	}
}

func printSummary(stdout, live io.Writer, summary *domain.RunSummary, reportPath string, jsonOut bool) error {
	if jsonOut {
		out := struct {
			*domain.RunSummary
			ExitCode int    `json:"exit_code"`
			Report   string `json:"report"`
		}{summary, domain.ClampExitCode(summary.ExitCode), reportPath}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	fmt.Fprintln(live)
	fmt.Fprint(live, tui.RenderSummary(summary, reportPath))
	return nil
}
