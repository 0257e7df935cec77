package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maturekit/maturekit/internal/application"
	"github.com/maturekit/maturekit/internal/domain"
)

type memProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*domain.MaturityProfile
	saveErr  error
	saves    int
}

func newMemProfileStore() *memProfileStore {
	return &memProfileStore{profiles: make(map[string]*domain.MaturityProfile)}
}

func (m *memProfileStore) Save(p *domain.MaturityProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.profiles[p.CompanyID+"/"+p.UserID] = p
	return nil
}

func (m *memProfileStore) Load(userID, companyID string) (*domain.MaturityProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profiles[companyID+"/"+userID], nil
}

type memBenchmarkStore struct {
	dist     map[string][]float64
	profiles *memProfileStore
}

func (m *memBenchmarkStore) Distribution(domainID, peerGroup string) ([]float64, error) {
	return m.dist[domainID], nil
}

func (m *memBenchmarkStore) History(domainID, userID, companyID string) ([]domain.ScoreSnapshot, error) {
	p, _ := m.profiles.Load(userID, companyID)
	if p == nil {
		return nil, nil
	}
	var history []domain.ScoreSnapshot
	for _, ev := range p.ImprovementHistory {
		if ev.DomainID == domainID {
			history = append(history, domain.ScoreSnapshot{DomainID: domainID, Score: ev.NewScore, Timestamp: ev.Timestamp})
		}
	}
	return history, nil
}

type countingProvider struct {
	mu    sync.Mutex
	calls int
	value float64
}

func (c *countingProvider) Fetch(_ context.Context, source, metric string) (domain.MetricSample, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return domain.MetricSample{Value: c.value}, nil
}

func (c *countingProvider) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// twoSubDimCatalog models a single domain with sub-dimension weights 0.3 and
// 0.4 (0.3 of the weight space unused), one boolean question each.
func twoSubDimCatalog() *domain.RubricCatalog {
	return &domain.RubricCatalog{
		Levels: domain.DefaultLevels(),
		Domains: []domain.MaturityDomain{
			{
				ID: "sales", Name: "Sales", Weight: 1,
				SubDimensions: []domain.MaturitySubDimension{
					{ID: "pipeline", Name: "Pipeline", Weight: 0.3,
						Questions: []domain.MaturityQuestion{{ID: "q1", Text: "?", Type: domain.QuestionBoolean, Weight: 1}}},
					{ID: "forecast", Name: "Forecast", Weight: 0.4,
						Questions: []domain.MaturityQuestion{{ID: "q2", Text: "?", Type: domain.QuestionBoolean, Weight: 1}}},
				},
			},
		},
	}
}

func newService(cat *domain.RubricCatalog, store *memProfileStore, provider domain.IntegrationMetricProvider) *application.AssessmentService {
	return application.NewAssessmentService(
		cat,
		store,
		&memBenchmarkStore{profiles: store},
		provider,
	)
}

func TestConductInitialAssessment_WeightedBooleans(t *testing.T) {
	store := newMemProfileStore()
	svc := newService(twoSubDimCatalog(), store, nil)

	profile, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1",
		domain.SurveyResponses{"q1": true, "q2": true})
	require.NoError(t, err)

	require.Len(t, profile.DomainScores, 1)
	ds := profile.DomainScores[0]

	// booleans answered true score exactly 3.0, and the weighted mean of two
	// 3.0 sub-dimensions is 3.0 regardless of the unused weight share
	require.Len(t, ds.SubDimensions, 2)
	assert.InDelta(t, 3.0, ds.SubDimensions[0].Score, 1e-9)
	assert.InDelta(t, 3.0, ds.SubDimensions[1].Score, 1e-9)
	assert.InDelta(t, 3.0, ds.Score, 1e-9)
	assert.Equal(t, 3, ds.Level)

	// level 3 means functional: no recommendations for this domain
	assert.Empty(t, ds.Recommendations)
	assert.Empty(t, profile.Recommendations)

	assert.InDelta(t, 3.0, profile.OverallScore, 1e-9)
	assert.Equal(t, 3, profile.OverallLevel)
}

func TestConductInitialAssessment_AllZero(t *testing.T) {
	store := newMemProfileStore()
	cat := domain.DefaultCatalog()
	svc := newService(cat, store, nil)

	// no responses at all: every question scores 0
	profile, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1", domain.SurveyResponses{})
	require.NoError(t, err)

	assert.Equal(t, 0.0, profile.OverallScore)
	assert.Equal(t, 0, profile.OverallLevel)

	recDomains := map[string]bool{}
	for _, r := range profile.Recommendations {
		recDomains[r.Domain] = true
	}
	for _, d := range cat.Domains {
		assert.True(t, recDomains[d.ID], "domain %s should have a recommendation", d.ID)
	}

	// high priority entries lead the list
	require.NotEmpty(t, profile.Recommendations)
	assert.Equal(t, domain.PriorityHigh, profile.Recommendations[0].Priority)
	lastRank := 0
	for _, r := range profile.Recommendations {
		rank := domain.PriorityRank(r.Priority)
		assert.GreaterOrEqual(t, rank, lastRank)
		lastRank = rank
	}
}

func TestConductInitialAssessment_Deterministic(t *testing.T) {
	responses := domain.SurveyResponses{
		"sales_crm_in_use":        true,
		"sales_pipeline_review":   "monthly",
		"sales_forecast_exists":   true,
		"sales_forecast_accuracy": 7,
		"mkt_lead_tracking":       true,
		"fin_cashflow_forecast":   false,
		"ops_sops_exist":          true,
		"ops_sop_coverage":        6,
		"ops_automation_level":    "about half",
	}

	run := func() *domain.MaturityProfile {
		store := newMemProfileStore()
		svc := newService(domain.DefaultCatalog(), store, &countingProvider{value: 12})
		p, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1", responses)
		require.NoError(t, err)
		return p
	}

	p1, p2 := run(), run()
	assert.Equal(t, p1.OverallScore, p2.OverallScore)
	assert.Equal(t, p1.OverallLevel, p2.OverallLevel)
	for i := range p1.DomainScores {
		assert.Equal(t, p1.DomainScores[i].Score, p2.DomainScores[i].Score)
		assert.Equal(t, p1.DomainScores[i].Level, p2.DomainScores[i].Level)
	}
}

func TestConductInitialAssessment_Persists(t *testing.T) {
	store := newMemProfileStore()
	svc := newService(twoSubDimCatalog(), store, nil)

	_, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1",
		domain.SurveyResponses{"q1": true, "q2": false})
	require.NoError(t, err)

	stored, err := store.Load("u1", "c1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "c1", stored.CompanyID)
	assert.NotEmpty(t, stored.ImprovementHistory)
	assert.Equal(t, domain.TriggerInitialAssessment, stored.ImprovementHistory[0].Trigger)

	// re-assessment due in 30 days
	assert.InDelta(t, 30*24*time.Hour, stored.NextAssessment.Sub(stored.LastAssessment), float64(time.Second))
}

func TestConductInitialAssessment_SaveFailureReturnsProfile(t *testing.T) {
	store := newMemProfileStore()
	store.saveErr = errors.New("disk full")
	svc := newService(twoSubDimCatalog(), store, nil)

	profile, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1",
		domain.SurveyResponses{"q1": true, "q2": true})

	// the computed profile survives a failed save so the caller can retry
	require.Error(t, err)
	require.NotNil(t, profile)
	assert.InDelta(t, 3.0, profile.OverallScore, 1e-9)
}

func TestConductInitialAssessment_Reassessment(t *testing.T) {
	store := newMemProfileStore()
	svc := newService(twoSubDimCatalog(), store, nil)

	_, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1",
		domain.SurveyResponses{"q1": false, "q2": false})
	require.NoError(t, err)

	second, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1",
		domain.SurveyResponses{"q1": true, "q2": true})
	require.NoError(t, err)

	// history carries over and the new events are tagged as reassessment
	require.Len(t, second.ImprovementHistory, 2)
	assert.Equal(t, domain.TriggerInitialAssessment, second.ImprovementHistory[0].Trigger)
	assert.Equal(t, domain.TriggerReassessment, second.ImprovementHistory[1].Trigger)
	assert.Equal(t, 0.0, second.ImprovementHistory[1].OldScore)
	assert.InDelta(t, 3.0, second.ImprovementHistory[1].NewScore, 1e-9)

	// score went from 0 to 3: trend improves
	assert.Equal(t, domain.TrendImproving, second.DomainScores[0].Trend)
}

func TestUpdateMaturityScore(t *testing.T) {
	store := newMemProfileStore()
	provider := &countingProvider{value: 12}

	cat := &domain.RubricCatalog{
		Levels: domain.DefaultLevels(),
		Domains: []domain.MaturityDomain{
			{ID: "sales", Name: "Sales", Weight: 0.5,
				SubDimensions: []domain.MaturitySubDimension{
					{ID: "pipeline", Name: "Pipeline", Weight: 1,
						Questions: []domain.MaturityQuestion{{
							ID: "q1", Type: domain.QuestionIntegrationCheck, Weight: 1,
							Integration: &domain.IntegrationCheck{Source: "crm", Metric: "stale", Threshold: 20, Operator: domain.OpLessThan},
						}}},
				}},
			{ID: "finance", Name: "Finance", Weight: 0.5,
				SubDimensions: []domain.MaturitySubDimension{
					{ID: "cash", Name: "Cash", Weight: 1,
						Questions: []domain.MaturityQuestion{{ID: "q2", Type: domain.QuestionBoolean, Weight: 1}}},
				}},
		},
	}
	svc := newService(cat, store, provider)

	_, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1", domain.SurveyResponses{"q2": true})
	require.NoError(t, err)
	fetchesAfterAssess := provider.count()
	assert.Equal(t, 1, fetchesAfterAssess)

	require.NoError(t, svc.UpdateMaturityScore(context.Background(), "finance", 4.6, "u1", "c1"))

	// the question scorer must not re-run on update
	assert.Equal(t, fetchesAfterAssess, provider.count())

	updated, err := store.Load("u1", "c1")
	require.NoError(t, err)
	ds, ok := updated.DomainScore("finance")
	require.True(t, ok)
	assert.InDelta(t, 4.6, ds.Score, 1e-9)
	assert.Equal(t, 5, ds.Level)

	// overall recomputed over the full domain set: (5.0*0.5 + 4.6*0.5) / 1
	sales, _ := updated.DomainScore("sales")
	wantOverall := (sales.Score*0.5 + 4.6*0.5) / 1.0
	assert.InDelta(t, wantOverall, updated.OverallScore, 1e-9)

	last := updated.ImprovementHistory[len(updated.ImprovementHistory)-1]
	assert.Equal(t, domain.TriggerManualUpdate, last.Trigger)
	assert.Equal(t, "finance", last.DomainID)
}

func TestUpdateMaturityScore_ClampsInput(t *testing.T) {
	store := newMemProfileStore()
	svc := newService(twoSubDimCatalog(), store, nil)

	_, err := svc.ConductInitialAssessment(context.Background(), "u1", "c1", domain.SurveyResponses{"q1": true, "q2": true})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateMaturityScore(context.Background(), "sales", 42, "u1", "c1"))

	updated, _ := store.Load("u1", "c1")
	ds, _ := updated.DomainScore("sales")
	assert.Equal(t, 5.0, ds.Score)
}

func TestUpdateMaturityScore_Errors(t *testing.T) {
	store := newMemProfileStore()
	svc := newService(twoSubDimCatalog(), store, nil)

	err := svc.UpdateMaturityScore(context.Background(), "bogus", 3, "u1", "c1")
	assert.ErrorIs(t, err, domain.ErrUnknownDomain)

	err = svc.UpdateMaturityScore(context.Background(), "sales", 3, "u1", "c1")
	assert.ErrorIs(t, err, domain.ErrProfileNotFound)
}

func TestAssessmentsRunConcurrently(t *testing.T) {
	store := newMemProfileStore()
	svc := newService(domain.DefaultCatalog(), store, &countingProvider{value: 5})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			user := string(rune('a' + n))
			_, err := svc.ConductInitialAssessment(context.Background(), user, "c1",
				domain.SurveyResponses{"sales_crm_in_use": true})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 8, store.saves)
}

func TestCatalogAccessors(t *testing.T) {
	cat := domain.DefaultCatalog()
	svc := newService(cat, newMemProfileStore(), nil)

	assert.Equal(t, cat.Domains, svc.MaturityDomains())
	assert.Equal(t, cat.Levels, svc.MaturityLevels())
}
