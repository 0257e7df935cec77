package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maturekit/maturekit/internal/adapters/outbound/tui"
)

func newProfileCmd() *cobra.Command {
	var (
		flags      serviceFlags
		userID     string
		companyID  string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show the stored maturity profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, cat, err := buildService(flags)
			if err != nil {
				return err
			}

			profile, err := svc.Profile(userID, companyID)
			if err != nil {
				return fmt.Errorf("loading profile: %w", err)
			}
			if profile == nil {
				return fmt.Errorf("no profile found for %s/%s; run 'maturekit assess' first", companyID, userID)
			}

			if jsonOutput {
				return renderJSON(cmd, profile)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProfile(profile, cat))
			return nil
		},
	}

	registerServiceFlags(cmd, &flags)
	cmd.Flags().StringVar(&userID, "user", "local", "User id the profile belongs to")
	cmd.Flags().StringVar(&companyID, "company", "default", "Company id the profile belongs to")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the profile as JSON")

	return cmd
}
