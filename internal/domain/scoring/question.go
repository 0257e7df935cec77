package scoring

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/maturekit/maturekit/internal/domain"
)

// ScoreQuestion maps one question and its raw answer to a normalized score in
// [0,5] plus an optional insight. It never fails: a missing or unparseable
// answer scores 0, and an unreachable metric source scores 0 with a
// diagnostic insight. The provider is only consulted for integration_check
// questions and may be nil otherwise.
func ScoreQuestion(ctx context.Context, q domain.MaturityQuestion, raw any, provider domain.IntegrationMetricProvider) domain.QuestionScore {
	result := domain.QuestionScore{QuestionID: q.ID}

	switch q.Type {
	case domain.QuestionBoolean:
		result.Score, result.Insight = scoreBoolean(raw)
	case domain.QuestionMultipleChoice:
		result.Score, result.Insight = scoreMultipleChoice(q.Options, raw)
	case domain.QuestionScale:
		result.Score, result.Insight = scoreScale(q.Scale, raw)
	case domain.QuestionIntegrationCheck:
		result.Score, result.Insight = scoreIntegrationCheck(ctx, q, provider)
	}

	result.Score = domain.ClampScore(result.Score)
	return result
}

// scoreBoolean awards the functional baseline (3.0) for true, 0 for false.
// There are no intermediate values.
func scoreBoolean(raw any) (float64, string) {
	b, ok := asBool(raw)
	if !ok {
		return 0, "no answer recorded"
	}
	if b {
		return 3.0, ""
	}
	return 0, ""
}

// scoreMultipleChoice maps the selected option's position onto [0,5].
// An unknown or missing option scores 0.
func scoreMultipleChoice(options []string, raw any) (float64, string) {
	s, ok := asString(raw)
	if !ok || len(options) < 2 {
		return 0, "no answer recorded"
	}
	for i, opt := range options {
		if strings.EqualFold(opt, s) {
			return float64(i) / float64(len(options)-1) * domain.MaxScore, ""
		}
	}
	return 0, fmt.Sprintf("answer %q is not one of the offered options", s)
}

// scoreScale maps a value linearly from [min,max] onto [0,5], clamping
// out-of-range values to the nearest bound first.
func scoreScale(scale *domain.ScaleRange, raw any) (float64, string) {
	v, ok := asFloat(raw)
	if !ok || scale == nil {
		return 0, "no answer recorded"
	}
	if v < scale.Min {
		v = scale.Min
	}
	if v > scale.Max {
		v = scale.Max
	}
	return (v - scale.Min) / (scale.Max - scale.Min) * domain.MaxScore, ""
}

// scoreIntegrationCheck scores a question from a live metric. A satisfied
// threshold earns the full 5.0; a missed threshold earns partial credit
// proportional to how close the metric is to the target. Provider failures
// degrade to 0 with an explanatory insight.
func scoreIntegrationCheck(ctx context.Context, q domain.MaturityQuestion, provider domain.IntegrationMetricProvider) (float64, string) {
	ic := q.Integration
	if ic == nil {
		return 0, "integration check has no metric configured"
	}
	if provider == nil {
		return 0, fmt.Sprintf("metric source %s is not connected", ic.Source)
	}

	sample, err := provider.Fetch(ctx, ic.Source, ic.Metric)
	if err != nil {
		return 0, fmt.Sprintf("metric %s/%s unavailable: %v", ic.Source, ic.Metric, err)
	}

	insight := sample.Insight
	if insight == "" {
		insight = fmt.Sprintf("%s/%s is %.1f (target %s %.1f)", ic.Source, ic.Metric, sample.Value, ic.Operator, ic.Threshold)
	}

	if thresholdMet(sample.Value, ic.Threshold, ic.Operator) {
		return domain.MaxScore, insight
	}
	return proximityScore(sample.Value, ic.Threshold, ic.Operator), insight
}

func thresholdMet(value, threshold float64, op domain.CompareOp) bool {
	switch op {
	case domain.OpGreaterThan:
		return value > threshold
	case domain.OpLessThan:
		return value < threshold
	case domain.OpGreaterEqual:
		return value >= threshold
	case domain.OpLessEqual:
		return value <= threshold
	case domain.OpEqual:
		return value == threshold
	}
	return false
}

// maxProximityScore caps partial credit for a missed threshold. Full marks
// are reserved for a met threshold, so a strict miss landing exactly on the
// target (value == threshold under gt/lt) still scores below 5.
const maxProximityScore = 4.5

// proximityScore grants partial credit for a missed threshold based on the
// ratio between the value and the target. Equality checks are all-or-nothing.
func proximityScore(value, threshold float64, op domain.CompareOp) float64 {
	var ratio float64
	switch op {
	case domain.OpGreaterThan, domain.OpGreaterEqual:
		if threshold <= 0 {
			return 0
		}
		ratio = value / threshold
	case domain.OpLessThan, domain.OpLessEqual:
		if value <= 0 {
			return 0
		}
		ratio = threshold / value
	default:
		return 0
	}

	score := domain.ClampScore(ratio * domain.MaxScore)
	if score > maxProximityScore {
		score = maxProximityScore
	}
	return score
}

// asBool coerces a raw survey answer to a bool. Accepts native bools and the
// usual string spellings.
func asBool(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

func asString(raw any) (string, bool) {
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// asFloat coerces numeric answers, covering the types JSON and YAML decoders
// produce.
func asFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, !math.IsNaN(v)
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
