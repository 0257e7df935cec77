package scoring

import "github.com/maturekit/maturekit/internal/domain"

// Weighted pairs a score with its relative weight inside a group.
type Weighted struct {
	Score  float64
	Weight float64
}

// WeightedMean reduces a group of weighted scores to a single score,
// normalizing by the sum of the weights actually present. Weights therefore
// need not sum to 1. A group with zero total weight scores 0 rather than
// dividing by zero. The result is order-invariant and clamped to [0,5].
func WeightedMean(items []Weighted) float64 {
	var totalWeighted, totalWeight float64
	for _, it := range items {
		totalWeighted += it.Score * it.Weight
		totalWeight += it.Weight
	}
	if totalWeight <= 0 {
		return 0
	}
	return domain.ClampScore(totalWeighted / totalWeight)
}

// SubDimensionMean aggregates question scores using catalog weights.
func SubDimensionMean(sd domain.MaturitySubDimension, scores []domain.QuestionScore) float64 {
	byID := make(map[string]float64, len(scores))
	for _, qs := range scores {
		byID[qs.QuestionID] = qs.Score
	}
	items := make([]Weighted, 0, len(sd.Questions))
	for _, q := range sd.Questions {
		items = append(items, Weighted{Score: byID[q.ID], Weight: q.Weight})
	}
	return WeightedMean(items)
}

// DomainMean aggregates sub-dimension scores using catalog weights.
func DomainMean(d domain.MaturityDomain, subs []domain.SubDimensionScore) float64 {
	byID := make(map[string]float64, len(subs))
	for _, s := range subs {
		byID[s.SubDimensionID] = s.Score
	}
	items := make([]Weighted, 0, len(d.SubDimensions))
	for _, sd := range d.SubDimensions {
		items = append(items, Weighted{Score: byID[sd.ID], Weight: sd.Weight})
	}
	return WeightedMean(items)
}

// OverallMean aggregates domain scores using catalog domain weights.
func OverallMean(catalog *domain.RubricCatalog, scores []domain.MaturityScore) float64 {
	byID := make(map[string]float64, len(scores))
	for _, s := range scores {
		byID[s.DomainID] = s.Score
	}
	items := make([]Weighted, 0, len(catalog.Domains))
	for _, d := range catalog.Domains {
		items = append(items, Weighted{Score: byID[d.ID], Weight: d.Weight})
	}
	return WeightedMean(items)
}
