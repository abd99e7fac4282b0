package domain

// MaturityLevel is the qualitative band a numeric score falls into.
// The band names follow the capability-maturity ladder used across
// every dashboard, report, and sector comparison in the system.
type MaturityLevel string

// Maturity bands, in ascending order of capability.
const (
	// MaturityNotEvaluated is a sentinel for domains that own zero
	// questions. It is not a valid band for any score in [0,5].
	MaturityNotEvaluated MaturityLevel = "Not evaluated"

	// MaturityInitial covers scores below 1.5.
	MaturityInitial MaturityLevel = "Initial"

	// MaturityManaged covers scores in [1.5, 2.5).
	MaturityManaged MaturityLevel = "Managed"

	// MaturityDefined covers scores in [2.5, 3.5).
	MaturityDefined MaturityLevel = "Defined"

	// MaturityQuantified covers scores in [3.5, 4.5).
	MaturityQuantified MaturityLevel = "Quantified"

	// MaturityOptimized covers scores of 4.5 and above.
	MaturityOptimized MaturityLevel = "Optimized"
)

// MaturityLevelForScore maps a score to its maturity band using the
// fixed thresholds 1.5, 2.5, 3.5, and 4.5 (lower bound inclusive,
// upper bound exclusive). The mapping is applied uniformly: a score of
// 0 always maps to Initial, whether it came from all-low answers or
// from a domain with no answers at all.
func MaturityLevelForScore(score float64) MaturityLevel {
	switch {
	case score < 1.5:
		return MaturityInitial
	case score < 2.5:
		return MaturityManaged
	case score < 3.5:
		return MaturityDefined
	case score < 4.5:
		return MaturityQuantified
	default:
		return MaturityOptimized
	}
}
