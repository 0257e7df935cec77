package domain

import (
	"math"
	"time"
)

// Priority ranks a recommendation's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// PriorityRank returns a sortable rank for a priority (lower sorts first).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	default:
		return 2
	}
}

// Trend describes the direction of a domain score relative to its history.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// Effort estimates the implementation cost of a recommendation.
type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

// MaturityProfile is the complete assessment result for one user/company pair.
type MaturityProfile struct {
	UserID             string                   `json:"user_id"`
	CompanyID          string                   `json:"company_id"`
	OverallScore       float64                  `json:"overall_score"`
	OverallLevel       int                      `json:"overall_level"`
	DomainScores       []MaturityScore          `json:"domain_scores"`
	Recommendations    []MaturityRecommendation `json:"recommendations,omitempty"`
	LastAssessment     time.Time                `json:"last_assessment"`
	NextAssessment     time.Time                `json:"next_assessment"`
	ImprovementHistory []ImprovementEvent       `json:"improvement_history,omitempty"`
	Benchmark          *BenchmarkSnapshot       `json:"benchmark,omitempty"`
}

// DomainScore returns the score entry for the given domain id.
func (p *MaturityProfile) DomainScore(domainID string) (*MaturityScore, bool) {
	for i := range p.DomainScores {
		if p.DomainScores[i].DomainID == domainID {
			return &p.DomainScores[i], true
		}
	}
	return nil, false
}

// MaturityScore is the scored result for a single domain.
type MaturityScore struct {
	DomainID        string                   `json:"domain_id"`
	Score           float64                  `json:"score"`
	Level           int                      `json:"level"`
	Percentile      int                      `json:"percentile"`
	Trend           Trend                    `json:"trend"`
	SubDimensions   []SubDimensionScore      `json:"sub_dimensions,omitempty"`
	Recommendations []MaturityRecommendation `json:"recommendations,omitempty"`
	LastUpdated     time.Time                `json:"last_updated"`
}

// SubDimensionScore is the aggregated result for one sub-dimension.
type SubDimensionScore struct {
	SubDimensionID string          `json:"sub_dimension_id"`
	Score          float64         `json:"score"`
	Questions      []QuestionScore `json:"questions,omitempty"`
	Insights       []string        `json:"insights,omitempty"`
}

// QuestionScore is the normalized result for a single answered question.
type QuestionScore struct {
	QuestionID string  `json:"question_id"`
	Score      float64 `json:"score"`
	Insight    string  `json:"insight,omitempty"`
}

// MaturityRecommendation is a prioritized improvement action for a domain.
type MaturityRecommendation struct {
	ID             string   `json:"id"`
	Priority       Priority `json:"priority"`
	Domain         string   `json:"domain"`
	Title          string   `json:"title"`
	Context        string   `json:"context,omitempty"`
	Action         string   `json:"action"`
	Impact         string   `json:"impact,omitempty"`
	Effort         Effort   `json:"effort"`
	EstimatedTime  string   `json:"estimated_time,omitempty"`
	SuccessMetrics []string `json:"success_metrics,omitempty"`
}

// ImprovementEvent records one score-changing mutation of a profile.
type ImprovementEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	DomainID  string    `json:"domain_id"`
	OldScore  float64   `json:"old_score"`
	NewScore  float64   `json:"new_score"`
	Trigger   string    `json:"trigger"`
}

// Improvement event triggers.
const (
	TriggerInitialAssessment = "initial_assessment"
	TriggerReassessment      = "reassessment"
	TriggerManualUpdate      = "manual_update"
)

// BenchmarkSnapshot captures the peer comparison at assessment time.
type BenchmarkSnapshot struct {
	PeerGroup   string         `json:"peer_group"`
	CapturedAt  time.Time      `json:"captured_at"`
	Percentiles map[string]int `json:"percentiles,omitempty"`
}

// ScoreSnapshot is one historical score observation for a domain.
type ScoreSnapshot struct {
	DomainID  string    `json:"domain_id"`
	Score     float64   `json:"score"`
	Timestamp time.Time `json:"timestamp"`
}

// MetricSample is a single operational metric reading from an integration.
type MetricSample struct {
	Value   float64 `json:"value"`
	Insight string  `json:"insight,omitempty"`
}

// SurveyResponses maps question ids to raw answer values
// (bool, string, number, or a slice of those).
type SurveyResponses map[string]any

// MinScore and MaxScore bound every normalized score.
const (
	MinScore = 0.0
	MaxScore = 5.0
)

// ClampScore forces a score into [0,5]. NaN collapses to 0.
func ClampScore(s float64) float64 {
	if math.IsNaN(s) {
		return MinScore
	}
	if s < MinScore {
		return MinScore
	}
	if s > MaxScore {
		return MaxScore
	}
	return s
}
