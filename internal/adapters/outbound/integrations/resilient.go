package integrations

import (
	"context"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"

	"github.com/maturekit/maturekit/internal/domain"
)

// DefaultFetchTimeout bounds a single metric fetch. A slow source delays one
// question, never the whole assessment.
const DefaultFetchTimeout = 5 * time.Second

// ResilientProvider wraps a metric provider with a per-fetch timeout and
// failure logging. Errors still propagate so the question scorer can degrade
// to score 0 with a diagnostic insight; retries are the inner provider's
// business.
type ResilientProvider struct {
	inner   domain.IntegrationMetricProvider
	timeout time.Duration
	logger  *slog.Logger
}

func NewResilientProvider(inner domain.IntegrationMetricProvider, fetchTimeout time.Duration, logger *slog.Logger) *ResilientProvider {
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ResilientProvider{inner: inner, timeout: fetchTimeout, logger: logger}
}

func (p *ResilientProvider) Fetch(ctx context.Context, source, metric string) (domain.MetricSample, error) {
	t := timeout.New[domain.MetricSample](timeout.Config{
		DefaultTimeout: p.timeout,
	})

	sample, err := t.Execute(ctx, p.timeout, func(ctx context.Context) (domain.MetricSample, error) {
		return p.inner.Fetch(ctx, source, metric)
	})
	if err != nil {
		p.logger.Warn("integration metric fetch failed",
			"source", source, "metric", metric, "error", err)
		return domain.MetricSample{}, err
	}
	return sample, nil
}
