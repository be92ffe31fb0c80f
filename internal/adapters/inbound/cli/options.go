package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/config"
	"github.com/repovalidate/repovalidate/internal/domain"
	"github.com/repovalidate/repovalidate/internal/logger"
)

const (
	defaultConfigPath = config.DefaultFileName
	defaultLogLevel   = logger.DefaultLevel
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	logLevel   string
}

// setup builds the diagnostic logger and loads the project config. An
// explicitly requested config file must exist.
func setup(cmd *cobra.Command, global *globalOptions) (*zap.SugaredLogger, domain.Config, error) {
	log, err := logger.New(cmd.ErrOrStderr(), global.logLevel)
	if err != nil {
		return nil, domain.Config{}, usageError(err)
	}

	if cmd.Flags().Changed("config") {
		if _, err := os.Stat(global.configPath); errors.Is(err, os.ErrNotExist) {
			return nil, domain.Config{}, usageError(fmt.Errorf("config file %s not found", global.configPath))
		}
	}

	cfg, err := config.New().Load(global.configPath)
	if err != nil {
		return nil, domain.Config{}, usageError(fmt.Errorf("loading config: %w", err))
	}
	log.Debugw("loaded config", "path", global.configPath, "report", cfg.ReportPath, "default_variant", cfg.DefaultVariant)
	return log, cfg, nil
}
