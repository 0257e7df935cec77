package integrations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maturekit/maturekit/internal/adapters/outbound/integrations"
	"github.com/maturekit/maturekit/internal/domain"
)

type funcProvider func(ctx context.Context, source, metric string) (domain.MetricSample, error)

func (f funcProvider) Fetch(ctx context.Context, source, metric string) (domain.MetricSample, error) {
	return f(ctx, source, metric)
}

func TestResilientProvider_PassesThrough(t *testing.T) {
	inner := funcProvider(func(ctx context.Context, source, metric string) (domain.MetricSample, error) {
		return domain.MetricSample{Value: 7}, nil
	})
	p := integrations.NewResilientProvider(inner, time.Second, nil)

	sample, err := p.Fetch(context.Background(), "crm", "win_rate")
	require.NoError(t, err)
	assert.Equal(t, 7.0, sample.Value)
}

func TestResilientProvider_PropagatesInnerError(t *testing.T) {
	innerErr := errors.New("connection refused")
	inner := funcProvider(func(ctx context.Context, source, metric string) (domain.MetricSample, error) {
		return domain.MetricSample{}, innerErr
	})
	p := integrations.NewResilientProvider(inner, time.Second, nil)

	_, err := p.Fetch(context.Background(), "crm", "win_rate")
	assert.ErrorIs(t, err, innerErr)
}

func TestResilientProvider_TimesOutSlowSource(t *testing.T) {
	inner := funcProvider(func(ctx context.Context, source, metric string) (domain.MetricSample, error) {
		select {
		case <-time.After(5 * time.Second):
			return domain.MetricSample{Value: 1}, nil
		case <-ctx.Done():
			return domain.MetricSample{}, ctx.Err()
		}
	})
	p := integrations.NewResilientProvider(inner, 50*time.Millisecond, nil)

	start := time.Now()
	_, err := p.Fetch(context.Background(), "crm", "win_rate")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
