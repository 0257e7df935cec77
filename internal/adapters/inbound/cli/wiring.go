package cli

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maturekit/maturekit/internal/adapters/outbound/benchmark"
	"github.com/maturekit/maturekit/internal/adapters/outbound/catalog"
	"github.com/maturekit/maturekit/internal/adapters/outbound/integrations"
	"github.com/maturekit/maturekit/internal/adapters/outbound/profilestore"
	"github.com/maturekit/maturekit/internal/application"
	"github.com/maturekit/maturekit/internal/domain"
)

// serviceFlags are the wiring flags shared by the data-touching commands.
type serviceFlags struct {
	workdir     string
	catalogPath string
	metricsPath string
	benchPath   string
	peerGroup   string
}

// buildService wires the outbound adapters into an assessment service.
// Catalog validation failures abort here, before any scoring starts.
func buildService(f serviceFlags) (*application.AssessmentService, *domain.RubricCatalog, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	cat, err := catalog.New().Load(f.catalogPath)
	if err != nil {
		return nil, nil, err
	}

	registry, err := integrations.FromYAML(f.metricsPath)
	if err != nil {
		return nil, nil, err
	}
	metrics := integrations.NewResilientProvider(registry, integrations.DefaultFetchTimeout, logger)

	profiles := profilestore.New(f.workdir)

	benchPath := f.benchPath
	if benchPath == "" {
		benchPath = filepath.Join(f.workdir, ".maturekit", "benchmarks.yaml")
	}
	benchmarks := benchmark.New(benchPath, profiles)

	svc := application.NewAssessmentService(cat, profiles, benchmarks, metrics,
		application.WithPeerGroup(f.peerGroup),
		application.WithLogger(logger),
	)
	return svc, cat, nil
}

// registerServiceFlags adds the shared wiring flags to a command.
func registerServiceFlags(cmd *cobra.Command, f *serviceFlags) {
	cmd.Flags().StringVar(&f.workdir, "path", ".", "Working directory for stored profiles")
	cmd.Flags().StringVar(&f.catalogPath, "catalog", "", "Rubric catalog YAML (defaults to the built-in catalog)")
	cmd.Flags().StringVar(&f.metricsPath, "metrics", "", "Integration metrics YAML")
	cmd.Flags().StringVar(&f.benchPath, "benchmarks", "", "Peer benchmark YAML (defaults to .maturekit/benchmarks.yaml)")
	cmd.Flags().StringVar(&f.peerGroup, "peer-group", "general", "Peer group for percentile benchmarking")
}
