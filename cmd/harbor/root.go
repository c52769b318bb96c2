package main

import (
	"os"

	"github.com/spf13/cobra"
)

// globalFlags are the settings every subcommand honors. Non-empty values
// override the corresponding HARBOR_* environment variables.
type globalFlags struct {
	env      string
	browser  string
	baseURL  string
	headless bool
	rootDir  string
}

// apply pushes flag overrides into the environment so the configuration
// loader sees them as the top layer.
func (f *globalFlags) apply(cmd *cobra.Command) {
	set := func(flag, key, value string) {
		if cmd.Flags().Changed(flag) {
			_ = os.Setenv(key, value)
		}
	}
	set("env", "HARBOR_ENV", f.env)
	set("browser", "HARBOR_BROWSER", f.browser)
	set("base-url", "HARBOR_BASE_URL", f.baseURL)
	if cmd.Flags().Changed("headless") {
		if f.headless {
			set("headless", "HARBOR_HEADLESS", "true")
		} else {
			set("headless", "HARBOR_HEADLESS", "false")
		}
	}
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}

	cmd := &cobra.Command{
		Use:   "harbor",
		Short: "Browser test automation runner",
		Long: `harbor runs browser-based BDD test suites.

Feature files describe scenarios in Gherkin; page objects drive the
browser through Playwright. Results, screenshots and videos are written
under reports/.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(&flags.env, "env", "dev", "target environment (dev, staging, ...)")
	cmd.PersistentFlags().StringVar(&flags.browser, "browser", "chromium", "browser type (chromium, firefox, webkit)")
	cmd.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "application base URL override")
	cmd.PersistentFlags().BoolVar(&flags.headless, "headless", true, "run the browser without a visible window")
	cmd.PersistentFlags().StringVar(&flags.rootDir, "root", "", "project root (default: working directory)")

	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newInstallCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
