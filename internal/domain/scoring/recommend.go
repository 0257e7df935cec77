package scoring

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/maturekit/maturekit/internal/domain"
)

// recommendationThreshold is the score below which a domain needs attention.
// Domains at or above it (level 3, "Functional") contribute no recommendations.
const recommendationThreshold = 3.0

// severity buckets a lagging domain score for rule lookup.
type severity string

const (
	sevCritical severity = "critical" // score < 1
	sevHigh     severity = "high"     // score < 2
	sevModerate severity = "moderate" // score < 3
)

func severityFor(score float64) severity {
	switch {
	case score < 1:
		return sevCritical
	case score < 2:
		return sevHigh
	default:
		return sevModerate
	}
}

func priorityFor(sev severity) domain.Priority {
	switch sev {
	case sevCritical:
		return domain.PriorityHigh
	case sevHigh:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// recommendationRule is one entry in the domain×severity rule table.
type recommendationRule struct {
	Title          string
	Action         string
	Impact         string
	Effort         domain.Effort
	EstimatedTime  string
	SuccessMetrics []string
}

// ruleTable drives recommendation synthesis. Adding a domain or severity row
// extends the engine without touching aggregation or classification.
var ruleTable = map[string]map[severity]recommendationRule{
	"sales": {
		sevCritical: {
			Title:          "Stand up a basic sales pipeline",
			Action:         "Pick a CRM, load every open opportunity, and define 4-6 pipeline stages",
			Impact:         "$15k/quarter",
			Effort:         domain.EffortMedium,
			EstimatedTime:  "2-4 weeks",
			SuccessMetrics: []string{"every open deal tracked in the CRM", "pipeline reviewed weekly"},
		},
		sevHigh: {
			Title:          "Make pipeline reviews routine",
			Action:         "Schedule a weekly pipeline review and close or revive deals idle for 30+ days",
			Impact:         "$8k/quarter",
			Effort:         domain.EffortLow,
			EstimatedTime:  "1-2 weeks",
			SuccessMetrics: []string{"stale deal share under 20%"},
		},
		sevModerate: {
			Title:          "Tighten forecast discipline",
			Action:         "Compare forecast to actuals each month and adjust stage probabilities",
			Impact:         "$4k/quarter",
			Effort:         domain.EffortLow,
			EstimatedTime:  "ongoing",
			SuccessMetrics: []string{"forecast within 15% of actuals"},
		},
	},
	"marketing": {
		sevCritical: {
			Title:          "Capture every inbound lead",
			Action:         "Route all website and referral leads into one tracked inbox or CRM list",
			Impact:         "$6k/quarter",
			Effort:         domain.EffortLow,
			EstimatedTime:  "1 week",
			SuccessMetrics: []string{"zero leads handled outside the tracked funnel"},
		},
		sevHigh: {
			Title:          "Commit to two acquisition channels",
			Action:         "Pick the two best-performing channels and run them on a fixed cadence for a quarter",
			Impact:         "$5k/quarter",
			Effort:         domain.EffortMedium,
			EstimatedTime:  "1 quarter",
			SuccessMetrics: []string{"cost per lead measured per channel"},
		},
		sevModerate: {
			Title:          "Stabilize the content cadence",
			Action:         "Publish on a fixed weekly schedule and review engagement monthly",
			Impact:         "$2k/quarter",
			Effort:         domain.EffortLow,
			EstimatedTime:  "ongoing",
			SuccessMetrics: []string{"four consecutive weeks on schedule"},
		},
	},
	"finance": {
		sevCritical: {
			Title:          "Build a cash flow forecast",
			Action:         "Start a 13-week rolling cash forecast and review it every Monday",
			Impact:         "$20k/quarter",
			Effort:         domain.EffortMedium,
			EstimatedTime:  "2 weeks",
			SuccessMetrics: []string{"13 weeks of projected cash visible at all times"},
		},
		sevHigh: {
			Title:          "Chase overdue invoices weekly",
			Action:         "Add a weekly collections pass with escalating reminders at 15 and 30 days",
			Impact:         "$10k/quarter",
			Effort:         domain.EffortLow,
			EstimatedTime:  "1 week",
			SuccessMetrics: []string{"overdue invoice share at or below 10%"},
		},
		sevModerate: {
			Title:          "Shorten the monthly close",
			Action:         "Document the close checklist and move recurring entries to templates",
			Impact:         "$3k/quarter",
			Effort:         domain.EffortMedium,
			EstimatedTime:  "1 month",
			SuccessMetrics: []string{"books closed within one week of month end"},
		},
	},
	"operations": {
		sevCritical: {
			Title:          "Write down the core processes",
			Action:         "Document the five most frequent workflows as step-by-step SOPs",
			Impact:         "$8k/quarter",
			Effort:         domain.EffortMedium,
			EstimatedTime:  "3-4 weeks",
			SuccessMetrics: []string{"five SOPs published and in use"},
		},
		sevHigh: {
			Title:          "Close the SOP coverage gaps",
			Action:         "List undocumented recurring tasks and document one per week",
			Impact:         "$5k/quarter",
			Effort:         domain.EffortLow,
			EstimatedTime:  "ongoing",
			SuccessMetrics: []string{"SOP coverage self-rating of 7+"},
		},
		sevModerate: {
			Title:          "Automate the repetitive half",
			Action:         "Identify the three most repetitive tasks and automate them with off-the-shelf tooling",
			Impact:         "$4k/quarter",
			Effort:         domain.EffortMedium,
			EstimatedTime:  "1-2 months",
			SuccessMetrics: []string{"at least half of repetitive work automated"},
		},
	},
}

// genericRules covers domains without a dedicated table row.
var genericRules = map[severity]recommendationRule{
	sevCritical: {
		Title:         "Establish a baseline process",
		Action:        "Define and document the core workflow for this area, then assign an owner",
		Impact:        "$5k/quarter",
		Effort:        domain.EffortMedium,
		EstimatedTime: "2-4 weeks",
	},
	sevHigh: {
		Title:         "Close the biggest process gaps",
		Action:        "Review the lowest-scoring practices in this area and fix the top two",
		Impact:        "$3k/quarter",
		Effort:        domain.EffortMedium,
		EstimatedTime: "1 month",
	},
	sevModerate: {
		Title:         "Raise this area to a functional level",
		Action:        "Set a measurable improvement target for the weakest practice and track it monthly",
		Impact:        "$1k/quarter",
		Effort:        domain.EffortLow,
		EstimatedTime: "ongoing",
	},
}

// Recommend generates prioritized improvement actions for every domain
// scoring below the functional threshold. Context text comes from the
// sub-dimension insights collected during scoring. The returned list is
// sorted by priority, then by parsed dollar impact descending.
func Recommend(catalog *domain.RubricCatalog, scores []domain.MaturityScore) []domain.MaturityRecommendation {
	var recs []domain.MaturityRecommendation

	for _, ds := range scores {
		if ds.Score >= recommendationThreshold {
			continue
		}
		recs = append(recs, recommendForDomain(catalog, ds)...)
	}

	SortRecommendations(recs)
	return recs
}

func recommendForDomain(catalog *domain.RubricCatalog, ds domain.MaturityScore) []domain.MaturityRecommendation {
	sev := severityFor(ds.Score)
	rule, ok := ruleTable[ds.DomainID][sev]
	if !ok {
		rule = genericRules[sev]
	}

	rec := domain.MaturityRecommendation{
		ID:             uuid.NewString(),
		Priority:       priorityFor(sev),
		Domain:         ds.DomainID,
		Title:          rule.Title,
		Context:        contextFrom(ds),
		Action:         rule.Action,
		Impact:         rule.Impact,
		Effort:         rule.Effort,
		EstimatedTime:  rule.EstimatedTime,
		SuccessMetrics: rule.SuccessMetrics,
	}
	if len(rec.SuccessMetrics) == 0 {
		rec.SuccessMetrics = bestPracticeMetrics(catalog, ds.DomainID)
	}
	recs := []domain.MaturityRecommendation{rec}

	// One follow-up per badly lagging sub-dimension, a notch lower in
	// priority than the domain-level action.
	for _, sd := range ds.SubDimensions {
		if sd.Score >= 2.0 {
			continue
		}
		recs = append(recs, domain.MaturityRecommendation{
			ID:       uuid.NewString(),
			Priority: lowerPriority(priorityFor(sev)),
			Domain:   ds.DomainID,
			Title:    fmt.Sprintf("Strengthen %s", subDimensionName(catalog, ds.DomainID, sd.SubDimensionID)),
			Context:  strings.Join(sd.Insights, "; "),
			Action:   fmt.Sprintf("Focus the next improvement cycle on %s, currently scoring %.1f of 5", subDimensionName(catalog, ds.DomainID, sd.SubDimensionID), sd.Score),
			Effort:   domain.EffortLow,
		})
	}

	return recs
}

func contextFrom(ds domain.MaturityScore) string {
	var insights []string
	for _, sd := range ds.SubDimensions {
		insights = append(insights, sd.Insights...)
	}
	if len(insights) == 0 {
		return fmt.Sprintf("domain scored %.1f of 5", ds.Score)
	}
	return strings.Join(insights, "; ")
}

func bestPracticeMetrics(catalog *domain.RubricCatalog, domainID string) []string {
	d, ok := catalog.Domain(domainID)
	if !ok {
		return nil
	}
	var metrics []string
	for _, bp := range d.BestPractices {
		metrics = append(metrics, fmt.Sprintf("%s %s", bp.Name, bp.Target))
	}
	return metrics
}

func subDimensionName(catalog *domain.RubricCatalog, domainID, subID string) string {
	if d, ok := catalog.Domain(domainID); ok {
		for _, sd := range d.SubDimensions {
			if sd.ID == subID {
				return sd.Name
			}
		}
	}
	return subID
}

func lowerPriority(p domain.Priority) domain.Priority {
	switch p {
	case domain.PriorityHigh:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

// SortRecommendations orders by priority (high first), then parsed dollar
// impact descending, then title for a stable order.
func SortRecommendations(recs []domain.MaturityRecommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := domain.PriorityRank(recs[i].Priority), domain.PriorityRank(recs[j].Priority)
		if ri != rj {
			return ri < rj
		}
		ii, ij := parseImpact(recs[i].Impact), parseImpact(recs[j].Impact)
		if ii != ij {
			return ii > ij
		}
		return recs[i].Title < recs[j].Title
	})
}

var impactPattern = regexp.MustCompile(`\$\s*([0-9]+(?:\.[0-9]+)?)\s*([kKmM]?)`)

// parseImpact extracts a comparable dollar figure from an impact estimate
// like "$8k/quarter". Unparseable estimates rank last.
func parseImpact(impact string) float64 {
	m := impactPattern.FindStringSubmatch(impact)
	if m == nil {
		return -1
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return -1
	}
	switch strings.ToLower(m[2]) {
	case "k":
		v *= 1_000
	case "m":
		v *= 1_000_000
	}
	return v
}
