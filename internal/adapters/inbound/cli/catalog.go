package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maturekit/maturekit/internal/adapters/outbound/catalog"
	"github.com/maturekit/maturekit/internal/adapters/outbound/tui"
)

func newDomainsCmd() *cobra.Command {
	var (
		catalogPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List the assessment domains",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New().Load(catalogPath)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, cat.Domains)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderDomains(cat))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Rubric catalog YAML (defaults to the built-in catalog)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func newLevelsCmd() *cobra.Command {
	var (
		catalogPath string
		jsonOutput  bool
	)

	cmd := &cobra.Command{
		Use:   "levels",
		Short: "List the maturity level definitions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := catalog.New().Load(catalogPath)
			if err != nil {
				return err
			}
			if jsonOutput {
				return renderJSON(cmd, cat.Levels)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderLevels(cat.Levels))
			return nil
		},
	}

	cmd.Flags().StringVar(&catalogPath, "catalog", "", "Rubric catalog YAML (defaults to the built-in catalog)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}
