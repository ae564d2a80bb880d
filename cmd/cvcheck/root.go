package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/cv-feedback/internal/adapter/observability"
	"github.com/fairyhunter13/cv-feedback/internal/config"
	obsctx "github.com/fairyhunter13/cv-feedback/internal/observability"
)

// cli holds state shared by the subcommands once the root pre-run has
// loaded configuration.
type cli struct {
	cfg     config.Config
	verbose bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:           "cvcheck",
		Short:         "Score CVs against role expectations",
		Long:          "cvcheck runs the CV feedback pipeline on local files and prints the JSON reports.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			c.cfg = cfg
			// logs go to stderr so stdout stays valid JSON
			level := slog.LevelWarn
			if c.verbose {
				level = slog.LevelDebug
			}
			logger := observability.NewLogger(cmd.ErrOrStderr(), cfg, level)
			slog.SetDefault(logger)
			cmd.SetContext(obsctx.ContextWithLogger(cmd.Context(), logger))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Log pipeline progress to stderr")
	root.AddCommand(newAnalyzeCmd(c), newRolesCmd(c), newHashPasswordCmd())
	return root
}
