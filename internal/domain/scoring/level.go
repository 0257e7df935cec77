package scoring

import "github.com/maturekit/maturekit/internal/domain"

// Classify maps a continuous score in [0,5] to a discrete maturity level.
// The thresholds are fixed and non-linear: the top band starts at 4.5 so only
// near-perfect scores reach level 5.
func Classify(score float64) int {
	score = domain.ClampScore(score)
	switch {
	case score < 1:
		return 0
	case score < 2:
		return 1
	case score < 3:
		return 2
	case score < 4:
		return 3
	case score < 4.5:
		return 4
	default:
		return 5
	}
}
