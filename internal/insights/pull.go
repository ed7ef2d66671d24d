package insights

import (
	"fmt"

	"github.com/tetherhq/tether/internal/journal"
)

type pullTemplate struct {
	match   func(ds *Dataset) bool
	explain func(ds *Dataset) CurrentPull
}

// Evaluated top-down; the first matching condition supplies the headline.
// Order is deliberate: acute interpretation spikes outrank slower drifts.
var pullTemplates = []pullTemplate{
	{
		match: func(ds *Dataset) bool { return ds.recentDecoderUses() >= 3 },
		explain: func(ds *Dataset) CurrentPull {
			return CurrentPull{
				Headline:    "You're reading between their lines a lot right now",
				Explanation: fmt.Sprintf("%d decoder sessions in the last week is a spike worth noticing.", ds.recentDecoderUses()),
			}
		},
	},
	{
		match: func(ds *Dataset) bool {
			return ds.countEnergy(journal.EnergyICarried) >= 5 && ds.countDirection(journal.DirectionFurther) >= 3
		},
		explain: func(ds *Dataset) CurrentPull {
			return CurrentPull{
				Headline: "You keep carrying what isn't moving closer",
				Explanation: fmt.Sprintf("You carried the effort %d times while logging %d drifts further away.",
					ds.countEnergy(journal.EnergyICarried), ds.countDirection(journal.DirectionFurther)),
			}
		},
	},
	{
		match: func(ds *Dataset) bool {
			return len(ds.ClarityLogs) >= 2 && len(ds.DailyLogs) == 0
		},
		explain: func(ds *Dataset) CurrentPull {
			return CurrentPull{
				Headline:    "You're asking for clarity without logging what you see",
				Explanation: fmt.Sprintf("%d clarity sessions but no check-ins to ground them in.", len(ds.ClarityLogs)),
			}
		},
	},
	{
		match: func(ds *Dataset) bool {
			steady := 0
			for _, d := range ds.DailyLogs30 {
				if d.EmotionState == journal.EmotionGrounded || d.EmotionState == journal.EmotionWarm {
					steady++
				}
			}
			return len(ds.DailyLogs30) >= 3 && steady*10 >= len(ds.DailyLogs30)*6 &&
				ds.countDirection(journal.DirectionCloser) >= 2
		},
		explain: func(ds *Dataset) CurrentPull {
			return CurrentPull{
				Headline: "Something here is settling",
				Explanation: fmt.Sprintf("Most of your last %d check-ins ended grounded, with %d logged moves closer.",
					len(ds.DailyLogs30), ds.countDirection(journal.DirectionCloser)),
			}
		},
	},
	{
		match: func(ds *Dataset) bool {
			return len(ds.DailyLogs) > 0 && len(ds.DailyLogs30) == 0
		},
		explain: func(ds *Dataset) CurrentPull {
			return CurrentPull{
				Headline:    "The journal has gone quiet lately",
				Explanation: fmt.Sprintf("%d check-ins in the window, none in the last month.", len(ds.DailyLogs)),
			}
		},
	},
}

// Rotating fallbacks for days when no template condition holds. Selection is
// seeded by the calendar date so the headline is stable for a whole day and
// rotates the next, without persisting any state.
var pullFallbacks = []CurrentPull{
	{
		Headline:    "Noticing is the work",
		Explanation: "Nothing is spiking right now; keep logging what you see.",
	},
	{
		Headline:    "Small patterns become big ones",
		Explanation: "Quiet stretches are where tendencies form; the record you keep now explains later.",
	},
	{
		Headline:    "Your attention is data",
		Explanation: "What you choose to log is itself a signal worth watching.",
	},
}

func computeCurrentPull(ds *Dataset) CurrentPull {
	for _, t := range pullTemplates {
		if t.match(ds) {
			return t.explain(ds)
		}
	}
	return pullFallbacks[dateSeed(ds)%len(pullFallbacks)]
}

// dateSeed is a pure function of the calendar date of the run.
func dateSeed(ds *Dataset) int {
	y, m, d := ds.Now.Date()
	return y*10000 + int(m)*100 + d
}
