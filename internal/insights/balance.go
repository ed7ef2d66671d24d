package insights

import (
	"math"

	"github.com/tetherhq/tether/internal/journal"
)

var effortFallback = EffortBalance{
	Insight: "Not enough check-ins yet to read the effort balance.",
}

// computeEffortBalance splits logged effort by who carried it. Initiation
// percentages split the balanced bucket 50/50 between the two parties, which
// keeps the pair summing to 100.
func computeEffortBalance(ds *Dataset) EffortBalance {
	total := len(ds.DailyLogs)
	if total == 0 {
		return effortFallback
	}

	you := ds.countEnergy(journal.EnergyICarried)
	they := ds.countEnergy(journal.EnergyTheyCarried)
	balanced := ds.countEnergy(journal.EnergyBalanced)

	youInitiate := pctRound(float64(you)+float64(balanced)/2, total)
	pctCloser := pctRound(float64(ds.countDirection(journal.DirectionCloser)), total)
	pctFurther := pctRound(float64(ds.countDirection(journal.DirectionFurther)), total)

	b := EffortBalance{
		YouCarriedPct:        pctRound(float64(you), total),
		TheyCarriedPct:       pctRound(float64(they), total),
		BalancedPct:          pctRound(float64(balanced), total),
		YouInitiatePct:       youInitiate,
		TheyInitiatePct:      100 - youInitiate,
		YouFollowThroughPct:  pctCloser,
		TheyFollowThroughPct: theyFollowThroughEstimate(pctFurther),
	}

	switch {
	case you > they && you > balanced:
		b.Insight = "You have been carrying most of the effort lately."
	case they > you && they > balanced:
		b.Insight = "They have been carrying most of the effort lately."
	default:
		b.Insight = "Effort has been roughly balanced between you."
	}
	return b
}

// theyFollowThroughEstimate approximates the other party's follow-through
// from the drift trend. The flat deduction is an acknowledged placeholder
// heuristic, not a measured quantity; revisit the formula here if product
// guidance changes.
func theyFollowThroughEstimate(pctFurther int) int {
	est := 100 - pctFurther - followThroughFudge
	if est < 0 {
		return 0
	}
	return est
}

func pctRound(part float64, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * part / float64(total)))
}
