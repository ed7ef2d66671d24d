package insights

import "github.com/tetherhq/tether/internal/journal"

var boundaryFallback = BoundaryAlignment{
	Note: "No boundary encounters logged yet.",
}

// computeBoundaryAlignment measures how often logged encounters stayed
// consistent with the user's stated boundaries. An encounter is any check-in
// that carries effort-signal tags or free-text notes; it counts as upheld
// when the user came out grounded or warm with reasonable clarity.
func computeBoundaryAlignment(ds *Dataset, boundaries []string) BoundaryAlignment {
	if len(boundaries) == 0 || len(ds.DailyLogs) == 0 {
		return boundaryFallback
	}

	encounters := 0
	upheld := 0
	for _, d := range ds.DailyLogs {
		if len(d.EffortSignals) == 0 && d.Notes == "" {
			continue
		}
		encounters++
		steady := d.EmotionState == journal.EmotionGrounded || d.EmotionState == journal.EmotionWarm
		if steady && d.Clarity >= boundaryClarityMin {
			upheld++
		}
	}
	if encounters < 1 {
		encounters = 1
	}

	pct := pctRound(float64(upheld), encounters)
	note := "Your encounters have mostly stayed aligned with your boundaries."
	if pct < 50 {
		note = "More than half of your encounters pulled away from your stated boundaries."
	}

	return BoundaryAlignment{
		Encounters: encounters,
		Upheld:     upheld,
		Pct:        pct,
		Note:       note,
	}
}
