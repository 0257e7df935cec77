package integrations

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maturekit/maturekit/internal/domain"
)

// Registry is an in-memory implementation of
// domain.IntegrationMetricProvider backed by registered metric sources.
// Real connector adapters (CRM, accounting, ...) live outside this
// repository; the registry is the seam they plug into and what local runs
// and tests use.
type Registry struct {
	sources map[string]map[string]domain.MetricSample
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]map[string]domain.MetricSample)}
}

// metricsFile mirrors the metrics YAML layout:
//
//	crm:
//	  stale_deal_percentage: 12.5
type metricsFile map[string]map[string]float64

// FromYAML builds a registry from a metrics file. A missing path yields an
// empty registry so assessments degrade instead of failing.
func FromYAML(path string) (*Registry, error) {
	r := NewRegistry()
	if path == "" {
		return r, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, err
	}

	var f metricsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing metrics file %s: %w", path, err)
	}

	for source, metrics := range f {
		for metric, value := range metrics {
			r.Register(source, metric, domain.MetricSample{Value: value})
		}
	}
	return r, nil
}

// Register adds or replaces a metric reading.
func (r *Registry) Register(source, metric string, sample domain.MetricSample) {
	if r.sources[source] == nil {
		r.sources[source] = make(map[string]domain.MetricSample)
	}
	r.sources[source][metric] = sample
}

// Fetch returns the registered sample for source/metric.
func (r *Registry) Fetch(ctx context.Context, source, metric string) (domain.MetricSample, error) {
	if err := ctx.Err(); err != nil {
		return domain.MetricSample{}, err
	}

	metrics, ok := r.sources[source]
	if !ok {
		return domain.MetricSample{}, fmt.Errorf("metric source %q not connected", source)
	}
	sample, ok := metrics[metric]
	if !ok {
		return domain.MetricSample{}, fmt.Errorf("source %q does not report metric %q", source, metric)
	}
	return sample, nil
}
