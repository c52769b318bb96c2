package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/entrhq/harbor/pkg/config"
	"github.com/entrhq/harbor/pkg/logging"
	"github.com/entrhq/harbor/pkg/steps"
)

func newRunCmd(flags *globalFlags) *cobra.Command {
	var (
		tags   string
		format string
	)

	cmd := &cobra.Command{
		Use:   "run [features...]",
		Short: "Run feature files against the configured environment",
		Long: `Run executes Gherkin feature files in a real browser.

Without arguments it runs everything under features/. Scenarios can be
filtered with --tags; the godog tag expression syntax applies
(e.g. "@smoke && ~@wip").`,
		Example: `  harbor run
  harbor run features/login.feature
  harbor run --tags @smoke --browser firefox
  harbor run --env staging --headless=false`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd)

			cfg, err := config.Load(flags.rootDir)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			if err := cfg.EnsureDirs(); err != nil {
				return fmt.Errorf("failed to prepare report directories: %w", err)
			}
			if err := logging.Configure(cfg.LogsDir(), cfg.LogLevel()); err != nil {
				return fmt.Errorf("failed to configure logging: %w", err)
			}

			fmt.Printf("harbor %s\n", version)
			fmt.Printf("Environment: %s  Browser: %s  Base URL: %s\n\n",
				cfg.Environment(), cfg.Browser(), cfg.BaseURL())

			code := steps.Run(cfg, steps.RunOptions{
				Paths:  args,
				Tags:   tags,
				Format: format,
			})

			if code == 0 {
				color.Green("\nAll scenarios passed")
				return nil
			}
			color.Red("\nSome scenarios failed (see %s)", cfg.ReportsDir())
			os.Exit(code)
			return nil
		},
	}

	cmd.Flags().StringVar(&tags, "tags", "", "tag expression to filter scenarios")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty, progress, cucumber, junit)")

	return cmd
}
