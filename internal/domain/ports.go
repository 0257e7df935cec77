package domain

import "context"

// ProfileStore persists maturity profiles keyed by (userID, companyID).
type ProfileStore interface {
	// Save writes a profile atomically, replacing any previous version.
	Save(profile *MaturityProfile) error
	// Load returns the stored profile, or (nil, nil) if none exists.
	Load(userID, companyID string) (*MaturityProfile, error)
}

// BenchmarkStore supplies peer distributions and per-user score history.
type BenchmarkStore interface {
	// Distribution returns the peer-group score distribution for a domain.
	// An empty slice means no peer data is available.
	Distribution(domainID, peerGroup string) ([]float64, error)
	// History returns past score observations for a domain, oldest first.
	History(domainID, userID, companyID string) ([]ScoreSnapshot, error)
}

// IntegrationMetricProvider fetches live operational metrics for
// integration_check questions. Implementations must tolerate unavailable
// sources by returning an error rather than blocking indefinitely.
type IntegrationMetricProvider interface {
	Fetch(ctx context.Context, source, metric string) (MetricSample, error)
}

// CatalogLoader loads a rubric catalog from configuration.
type CatalogLoader interface {
	// Load reads a catalog from path, falling back to the built-in default
	// when path is empty or missing. The returned catalog is validated.
	Load(path string) (*RubricCatalog, error)
}
