package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "maturekit",
		Short:         "Assess and track business maturity",
		Long:          "MatureKit converts survey answers and live operational metrics into a scored, benchmarked maturity profile with prioritized improvement recommendations.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newAssessCmd())
	cmd.AddCommand(newUpdateCmd())
	cmd.AddCommand(newProfileCmd())
	cmd.AddCommand(newDomainsCmd())
	cmd.AddCommand(newLevelsCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show MatureKit version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "maturekit %s (%s)\n", version, commit)
			return nil
		},
	}
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}
	return err
}
