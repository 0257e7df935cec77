package scoring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/maturekit/maturekit/internal/domain"
	"github.com/maturekit/maturekit/internal/domain/scoring"
)

type fakeBenchmarkStore struct {
	dist    []float64
	history []domain.ScoreSnapshot
	err     error
}

func (f *fakeBenchmarkStore) Distribution(domainID, peerGroup string) ([]float64, error) {
	return f.dist, f.err
}

func (f *fakeBenchmarkStore) History(domainID, userID, companyID string) ([]domain.ScoreSnapshot, error) {
	return f.history, f.err
}

func TestPercentileRank(t *testing.T) {
	dist := []float64{1, 2, 3, 4}

	assert.Equal(t, 0, scoring.PercentileRank(0.5, dist))
	assert.Equal(t, 100, scoring.PercentileRank(4.5, dist))
	// two below, one tie: (2 + 0.5) / 4 = 62.5 → 63
	assert.Equal(t, 63, scoring.PercentileRank(3, dist))
}

func TestPercentileRank_EmptyDistribution(t *testing.T) {
	assert.Equal(t, 50, scoring.PercentileRank(3, nil))
}

func TestPercentileRank_AllEqual(t *testing.T) {
	dist := []float64{3, 3, 3, 3}
	assert.Equal(t, 50, scoring.PercentileRank(3, dist))
}

func snapshotAt(score float64, daysAgo int) domain.ScoreSnapshot {
	return domain.ScoreSnapshot{
		DomainID:  "sales",
		Score:     score,
		Timestamp: time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour),
	}
}

func TestTrendOf(t *testing.T) {
	improving := []domain.ScoreSnapshot{snapshotAt(2.0, 60), snapshotAt(3.0, 1)}
	assert.Equal(t, domain.TrendImproving, scoring.TrendOf(improving))

	declining := []domain.ScoreSnapshot{snapshotAt(3.0, 60), snapshotAt(2.0, 1)}
	assert.Equal(t, domain.TrendDeclining, scoring.TrendOf(declining))

	// deltas within the epsilon are noise
	stable := []domain.ScoreSnapshot{snapshotAt(3.0, 60), snapshotAt(3.05, 1)}
	assert.Equal(t, domain.TrendStable, scoring.TrendOf(stable))
}

func TestTrendOf_NoHistory(t *testing.T) {
	assert.Equal(t, domain.TrendStable, scoring.TrendOf(nil))
	assert.Equal(t, domain.TrendStable, scoring.TrendOf([]domain.ScoreSnapshot{snapshotAt(3, 1)}))
}

func TestTrendOf_SortsByTimestamp(t *testing.T) {
	// Newest first on input; the comparison must still be latest vs previous.
	history := []domain.ScoreSnapshot{snapshotAt(4.0, 1), snapshotAt(2.0, 60)}
	assert.Equal(t, domain.TrendImproving, scoring.TrendOf(history))
}

func TestBenchmarkEngine_Percentile(t *testing.T) {
	engine := scoring.NewBenchmarkEngine(&fakeBenchmarkStore{dist: []float64{1, 2, 3, 4}}, nil)
	assert.Equal(t, 100, engine.Percentile("sales", 4.5, "general"))
}

func TestBenchmarkEngine_StoreFailureDegrades(t *testing.T) {
	engine := scoring.NewBenchmarkEngine(&fakeBenchmarkStore{err: errors.New("down")}, nil)
	assert.Equal(t, 50, engine.Percentile("sales", 4.5, "general"))
	assert.Equal(t, domain.TrendStable, engine.Trend("sales", "u", "c", 4.5, time.Now()))
}

func TestBenchmarkEngine_TrendAgainstHistory(t *testing.T) {
	store := &fakeBenchmarkStore{history: []domain.ScoreSnapshot{snapshotAt(2.0, 30)}}
	engine := scoring.NewBenchmarkEngine(store, nil)

	assert.Equal(t, domain.TrendImproving, engine.Trend("sales", "u", "c", 3.0, time.Now()))
	assert.Equal(t, domain.TrendDeclining, engine.Trend("sales", "u", "c", 1.0, time.Now()))
	assert.Equal(t, domain.TrendStable, engine.Trend("sales", "u", "c", 2.05, time.Now()))
}

func TestBenchmarkEngine_TrendFirstAssessmentStable(t *testing.T) {
	engine := scoring.NewBenchmarkEngine(&fakeBenchmarkStore{}, nil)
	assert.Equal(t, domain.TrendStable, engine.Trend("sales", "u", "c", 3.0, time.Now()))
}
