package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/repovalidate/repovalidate/internal/adapters/outbound/tui"
	"github.com/repovalidate/repovalidate/internal/application"
	"github.com/repovalidate/repovalidate/internal/bootstrap"
	"github.com/repovalidate/repovalidate/internal/logger"
)

func newClassifyCmd(global *globalOptions) *cobra.Command {
	var (
		jsonOut bool
		noStyle bool
	)

	cmd := &cobra.Command{
		Use:   "classify <path> [path...]",
		Short: "Show which validator each file would get",
		Long:  "Classify files by name without running any validator. Unknown files show the default variant they are routed to.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, cfg, err := setup(cmd, global)
			if err != nil {
				return err
			}
			if noStyle {
				cfg.Style.Enabled = false
			}

			cls, validators := bootstrap.Validators(cfg)
			svc := application.NewDispatchService(cls, validators, nil, application.DispatchOptions{
				DefaultVariant: cfg.DefaultVariant,
			}, logger.Nop())
			entries := svc.Classify(args)

			if jsonOut {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderClassification(entries))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Output as JSON")
	cmd.Flags().BoolVar(&noStyle, "no-style", false, "Classify as if the style checker were unavailable")
	return cmd
}
