package scoring

import (
	"log/slog"
	"math"
	"sort"
	"time"

	"github.com/maturekit/maturekit/internal/domain"
)

// trendEpsilon is the smallest score delta treated as a real change.
const trendEpsilon = 0.1

// defaultPercentile is reported when no peer data exists for a domain.
const defaultPercentile = 50

// BenchmarkEngine ranks domain scores against peer distributions and derives
// trends from score history. Store failures degrade to neutral results
// (median percentile, stable trend) and are logged, never surfaced.
type BenchmarkEngine struct {
	store  domain.BenchmarkStore
	logger *slog.Logger
}

func NewBenchmarkEngine(store domain.BenchmarkStore, logger *slog.Logger) *BenchmarkEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &BenchmarkEngine{store: store, logger: logger}
}

// Percentile returns the rank of score within the peer-group distribution
// for the domain, as an int in [0,100].
func (e *BenchmarkEngine) Percentile(domainID string, score float64, peerGroup string) int {
	dist, err := e.store.Distribution(domainID, peerGroup)
	if err != nil {
		e.logger.Warn("benchmark distribution unavailable",
			"domain", domainID, "peer_group", peerGroup, "error", err)
		return defaultPercentile
	}
	return PercentileRank(score, dist)
}

// Trend compares the current score for the domain against the most recent
// recorded one. With no prior history the trend is stable by definition.
func (e *BenchmarkEngine) Trend(domainID, userID, companyID string, current float64, at time.Time) domain.Trend {
	history, err := e.store.History(domainID, userID, companyID)
	if err != nil {
		e.logger.Warn("benchmark history unavailable",
			"domain", domainID, "company", companyID, "error", err)
		return domain.TrendStable
	}
	if len(history) == 0 {
		return domain.TrendStable
	}
	history = append(history, domain.ScoreSnapshot{DomainID: domainID, Score: current, Timestamp: at})
	return TrendOf(history)
}

// PercentileRank computes the percentile of score within dist using the
// standard midpoint convention: observations strictly below count fully,
// ties count half. An empty distribution yields the median rank.
func PercentileRank(score float64, dist []float64) int {
	if len(dist) == 0 {
		return defaultPercentile
	}
	var below, equal float64
	for _, v := range dist {
		switch {
		case v < score:
			below++
		case v == score:
			equal++
		}
	}
	p := (below + equal/2) / float64(len(dist)) * 100
	rank := int(math.Round(p))
	if rank < 0 {
		rank = 0
	}
	if rank > 100 {
		rank = 100
	}
	return rank
}

// TrendOf derives the trend from a score history, oldest first. Unordered
// input is sorted by timestamp before comparison.
func TrendOf(history []domain.ScoreSnapshot) domain.Trend {
	if len(history) < 2 {
		return domain.TrendStable
	}

	sorted := make([]domain.ScoreSnapshot, len(history))
	copy(sorted, history)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	latest := sorted[len(sorted)-1].Score
	previous := sorted[len(sorted)-2].Score
	delta := latest - previous

	switch {
	case delta > trendEpsilon:
		return domain.TrendImproving
	case delta < -trendEpsilon:
		return domain.TrendDeclining
	default:
		return domain.TrendStable
	}
}
