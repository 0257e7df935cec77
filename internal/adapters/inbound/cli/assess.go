package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/maturekit/maturekit/internal/adapters/outbound/tui"
	"github.com/maturekit/maturekit/internal/domain"
)

func newAssessCmd() *cobra.Command {
	var (
		flags      serviceFlags
		userID     string
		companyID  string
		jsonOutput bool
		ciMode     bool
		minLevel   int
	)

	cmd := &cobra.Command{
		Use:   "assess <responses.yaml>",
		Short: "Run a full maturity assessment",
		Long:  "Score survey responses against the rubric catalog, benchmark each domain against its peer group, and persist the resulting maturity profile.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			responses, err := loadResponses(args[0])
			if err != nil {
				return err
			}

			svc, cat, err := buildService(flags)
			if err != nil {
				return err
			}

			profile, err := svc.ConductInitialAssessment(cmd.Context(), userID, companyID, responses)
			if err != nil {
				return fmt.Errorf("assessment completed but was not saved: %w", err)
			}

			if jsonOutput {
				return renderJSON(cmd, profile)
			}
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderProfile(profile, cat))

			if ciMode && profile.OverallLevel < minLevel {
				return fmt.Errorf("overall level %d is below minimum %d", profile.OverallLevel, minLevel)
			}
			return nil
		},
	}

	registerServiceFlags(cmd, &flags)
	cmd.Flags().StringVar(&userID, "user", "local", "User id the profile belongs to")
	cmd.Flags().StringVar(&companyID, "company", "default", "Company id the profile belongs to")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the profile as JSON")
	cmd.Flags().BoolVar(&ciMode, "ci", false, "CI mode: exit 1 if below --min-level")
	cmd.Flags().IntVar(&minLevel, "min-level", 0, "Minimum overall level for CI mode")

	return cmd
}

// loadResponses reads a questionId → answer mapping from a YAML (or JSON)
// file.
func loadResponses(path string) (domain.SurveyResponses, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading responses: %w", err)
	}
	var responses domain.SurveyResponses
	if err := yaml.Unmarshal(data, &responses); err != nil {
		return nil, fmt.Errorf("parsing responses %s: %w", path, err)
	}
	return responses, nil
}

func renderJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
