package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "distboot",
		Short: "Generate CI bootstrap environments and test plans",
		Long: `Distboot renders provisioning artifacts for the CI fleet from
static package and distribution tables, and enumerates the test-suite
plan consumed by the test orchestrator.

Subcommands:
  - generate: per-dist bootstrap script, Dockerfile, package manifest
    and Vagrantfile snippet, plus one aggregated Vagrantfile
  - testplan: ordered test-suite descriptors on stdout`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}
		},
	}

	// Global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	rootCmd.AddCommand(NewGenerateCmd())
	rootCmd.AddCommand(NewTestPlanCmd())

	return rootCmd
}
