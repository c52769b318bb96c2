package main

import (
	"fmt"

	"github.com/playwright-community/playwright-go"
	"github.com/spf13/cobra"
)

func newInstallCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Download browser binaries",
		Long: `Install downloads the Playwright driver and the browser selected
with --browser. Run it once before the first test run, and again after
upgrading the Playwright dependency.`,
		Example: `  harbor install
  harbor install --browser firefox`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd)

			fmt.Printf("Installing %s...\n", flags.browser)
			err := playwright.Install(&playwright.RunOptions{
				Browsers:            []string{flags.browser},
				SkipInstallBrowsers: false,
				Verbose:             true,
			})
			if err != nil {
				return fmt.Errorf("failed to install browser: %w", err)
			}

			fmt.Println("Done")
			return nil
		},
	}

	return cmd
}
