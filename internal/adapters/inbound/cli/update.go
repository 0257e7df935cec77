package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newUpdateCmd() *cobra.Command {
	var (
		flags     serviceFlags
		userID    string
		companyID string
	)

	cmd := &cobra.Command{
		Use:   "update <domain> <score>",
		Short: "Override a single domain score",
		Long:  "Set a new score for one domain on an existing profile. The level, overall score and recommendations are re-derived; questions are not re-scored.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid score %q: %w", args[1], err)
			}

			svc, _, err := buildService(flags)
			if err != nil {
				return err
			}

			if err := svc.UpdateMaturityScore(cmd.Context(), args[0], score, userID, companyID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "updated %s to %.1f\n", args[0], score)
			return nil
		},
	}

	registerServiceFlags(cmd, &flags)
	cmd.Flags().StringVar(&userID, "user", "local", "User id the profile belongs to")
	cmd.Flags().StringVar(&companyID, "company", "default", "Company id the profile belongs to")

	return cmd
}
