package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/maturekit/maturekit/internal/domain"
	"github.com/maturekit/maturekit/internal/domain/scoring"
)

// reassessmentInterval is how long an assessment stays fresh.
const reassessmentInterval = 30 * 24 * time.Hour

// AssessmentService orchestrates the scoring pipeline:
// score questions → aggregate bottom-up → classify → benchmark → recommend →
// assemble and persist the profile.
type AssessmentService struct {
	catalog    *domain.RubricCatalog
	profiles   domain.ProfileStore
	benchmarks *scoring.BenchmarkEngine
	metrics    domain.IntegrationMetricProvider
	logger     *slog.Logger
	peerGroup  string
	locks      *keyedMutex
	now        func() time.Time
}

// Option configures an AssessmentService.
type Option func(*AssessmentService)

// WithPeerGroup sets the peer-group key used for percentile benchmarking.
func WithPeerGroup(key string) Option {
	return func(s *AssessmentService) { s.peerGroup = key }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *AssessmentService) { s.now = now }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *AssessmentService) { s.logger = logger }
}

func NewAssessmentService(
	catalog *domain.RubricCatalog,
	profiles domain.ProfileStore,
	benchmarks domain.BenchmarkStore,
	metrics domain.IntegrationMetricProvider,
	opts ...Option,
) *AssessmentService {
	s := &AssessmentService{
		catalog:   catalog,
		profiles:  profiles,
		metrics:   metrics,
		logger:    slog.Default(),
		peerGroup: "general",
		locks:     newKeyedMutex(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.benchmarks = scoring.NewBenchmarkEngine(benchmarks, s.logger)
	return s
}

// ConductInitialAssessment runs the full pipeline over the survey responses
// and persists the resulting profile. The assessment always completes: data
// and integration problems degrade to zero scores with insights. Only a save
// failure is returned as an error, and the computed profile is returned
// alongside it so the caller can retry.
func (s *AssessmentService) ConductInitialAssessment(ctx context.Context, userID, companyID string, responses domain.SurveyResponses) (*domain.MaturityProfile, error) {
	unlock := s.locks.Lock(profileKey(userID, companyID))
	defer unlock()

	now := s.now()

	previous, err := s.profiles.Load(userID, companyID)
	if err != nil {
		s.logger.Warn("could not load previous profile, starting fresh",
			"user", userID, "company", companyID, "error", err)
		previous = nil
	}

	// Domain branches are independent: fan out, fan in at the overall mean.
	domainScores := make([]domain.MaturityScore, len(s.catalog.Domains))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range s.catalog.Domains {
		g.Go(func() error {
			domainScores[i] = s.scoreDomain(gctx, d, responses, userID, companyID, now)
			return nil
		})
	}
	_ = g.Wait() // branches never fail, they degrade

	recommendations := scoring.Recommend(s.catalog, domainScores)
	attachDomainRecommendations(domainScores, recommendations)

	overall := scoring.OverallMean(s.catalog, domainScores)

	profile := &domain.MaturityProfile{
		UserID:          userID,
		CompanyID:       companyID,
		OverallScore:    overall,
		OverallLevel:    scoring.Classify(overall),
		DomainScores:    domainScores,
		Recommendations: recommendations,
		LastAssessment:  now,
		NextAssessment:  now.Add(reassessmentInterval),
		Benchmark:       s.benchmarkSnapshot(domainScores, now),
	}

	trigger := domain.TriggerInitialAssessment
	if previous != nil {
		trigger = domain.TriggerReassessment
		profile.ImprovementHistory = previous.ImprovementHistory
	}
	for _, ds := range domainScores {
		var old float64
		if previous != nil {
			if prev, ok := previous.DomainScore(ds.DomainID); ok {
				old = prev.Score
			}
		}
		profile.ImprovementHistory = append(profile.ImprovementHistory, domain.ImprovementEvent{
			ID:        uuid.NewString(),
			Timestamp: now,
			DomainID:  ds.DomainID,
			OldScore:  old,
			NewScore:  ds.Score,
			Trigger:   trigger,
		})
	}

	if err := s.profiles.Save(profile); err != nil {
		return profile, fmt.Errorf("saving maturity profile: %w", err)
	}
	return profile, nil
}

// scoreDomain scores every leaf question of a domain, then aggregates
// bottom-up and attaches percentile and trend.
func (s *AssessmentService) scoreDomain(ctx context.Context, d domain.MaturityDomain, responses domain.SurveyResponses, userID, companyID string, now time.Time) domain.MaturityScore {
	subScores := make([]domain.SubDimensionScore, 0, len(d.SubDimensions))
	for _, sd := range d.SubDimensions {
		questionScores := make([]domain.QuestionScore, 0, len(sd.Questions))
		var insights []string
		for _, q := range sd.Questions {
			qs := scoring.ScoreQuestion(ctx, q, responses[q.ID], s.metrics)
			if qs.Insight != "" {
				insights = append(insights, qs.Insight)
			}
			questionScores = append(questionScores, qs)
		}
		subScores = append(subScores, domain.SubDimensionScore{
			SubDimensionID: sd.ID,
			Score:          scoring.SubDimensionMean(sd, questionScores),
			Questions:      questionScores,
			Insights:       insights,
		})
	}

	score := scoring.DomainMean(d, subScores)
	return domain.MaturityScore{
		DomainID:      d.ID,
		Score:         score,
		Level:         scoring.Classify(score),
		Percentile:    s.benchmarks.Percentile(d.ID, score, s.peerGroup),
		Trend:         s.benchmarks.Trend(d.ID, userID, companyID, score, now),
		SubDimensions: subScores,
		LastUpdated:   now,
	}
}

// UpdateMaturityScore overrides a single domain score, re-derives its level,
// recomputes the overall score across the full domain set and persists the
// profile. The question scorer is never re-run.
func (s *AssessmentService) UpdateMaturityScore(ctx context.Context, domainID string, newScore float64, userID, companyID string) error {
	if _, ok := s.catalog.Domain(domainID); !ok {
		return fmt.Errorf("%w: %s", domain.ErrUnknownDomain, domainID)
	}

	unlock := s.locks.Lock(profileKey(userID, companyID))
	defer unlock()

	profile, err := s.profiles.Load(userID, companyID)
	if err != nil {
		return fmt.Errorf("loading maturity profile: %w", err)
	}
	if profile == nil {
		return fmt.Errorf("%w: user %s company %s", domain.ErrProfileNotFound, userID, companyID)
	}

	ds, ok := profile.DomainScore(domainID)
	if !ok {
		return fmt.Errorf("%w: %s not in profile", domain.ErrUnknownDomain, domainID)
	}

	now := s.now()
	old := ds.Score
	ds.Score = domain.ClampScore(newScore)
	ds.Level = scoring.Classify(ds.Score)
	ds.Percentile = s.benchmarks.Percentile(domainID, ds.Score, s.peerGroup)
	ds.Trend = s.benchmarks.Trend(domainID, userID, companyID, ds.Score, now)
	ds.LastUpdated = now

	profile.Recommendations = scoring.Recommend(s.catalog, profile.DomainScores)
	attachDomainRecommendations(profile.DomainScores, profile.Recommendations)

	profile.OverallScore = scoring.OverallMean(s.catalog, profile.DomainScores)
	profile.OverallLevel = scoring.Classify(profile.OverallScore)
	profile.ImprovementHistory = append(profile.ImprovementHistory, domain.ImprovementEvent{
		ID:        uuid.NewString(),
		Timestamp: now,
		DomainID:  domainID,
		OldScore:  old,
		NewScore:  ds.Score,
		Trigger:   domain.TriggerManualUpdate,
	})

	if err := s.profiles.Save(profile); err != nil {
		return fmt.Errorf("saving maturity profile: %w", err)
	}
	return nil
}

// Profile returns the stored profile, or nil if none exists.
func (s *AssessmentService) Profile(userID, companyID string) (*domain.MaturityProfile, error) {
	return s.profiles.Load(userID, companyID)
}

// MaturityDomains returns the catalog's domain definitions.
func (s *AssessmentService) MaturityDomains() []domain.MaturityDomain {
	return s.catalog.Domains
}

// MaturityLevels returns the catalog's level definitions.
func (s *AssessmentService) MaturityLevels() []domain.MaturityLevelDefinition {
	return s.catalog.Levels
}

func (s *AssessmentService) benchmarkSnapshot(scores []domain.MaturityScore, now time.Time) *domain.BenchmarkSnapshot {
	percentiles := make(map[string]int, len(scores))
	for _, ds := range scores {
		percentiles[ds.DomainID] = ds.Percentile
	}
	return &domain.BenchmarkSnapshot{
		PeerGroup:   s.peerGroup,
		CapturedAt:  now,
		Percentiles: percentiles,
	}
}

// attachDomainRecommendations copies each recommendation onto its domain's
// score entry.
func attachDomainRecommendations(scores []domain.MaturityScore, recs []domain.MaturityRecommendation) {
	byDomain := make(map[string][]domain.MaturityRecommendation)
	for _, r := range recs {
		byDomain[r.Domain] = append(byDomain[r.Domain], r)
	}
	for i := range scores {
		scores[i].Recommendations = byDomain[scores[i].DomainID]
	}
}

func profileKey(userID, companyID string) string {
	return companyID + "/" + userID
}
