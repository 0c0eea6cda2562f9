package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/distboot/distboot/internal/models"
	"github.com/distboot/distboot/internal/testplan"
)

// NewTestPlanCmd creates the testplan command
func NewTestPlanCmd() *cobra.Command {
	var config models.TestPlanConfig

	cmd := &cobra.Command{
		Use:   "testplan",
		Short: "Emit the test-suite plan",
		Long: `Reads the generated config header to learn which optional
capabilities were built, then writes the ordered test-suite plan to
stdout. The orchestrator parses the records positionally and applies
its own skip and known-failure lists; logs go to stderr so the record
stream stays clean.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			feats, err := testplan.LoadFeatures(&config)
			if err != nil {
				return err
			}

			logrus.Debugf("Configuration: %+v", config)
			return testplan.Enumerate(&config, feats, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&config.BinDir, "bindir", "bin", "Build output directory")
	cmd.Flags().StringVar(&config.SrcDir, "srcdir", ".", "Source tree root for script-based suites")
	cmd.Flags().StringVar(&config.ConfigH, "config-header", "", "Config header path (overrides CONFIG_H)")

	return cmd
}
