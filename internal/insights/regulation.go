package insights

import (
	"math"

	"github.com/tetherhq/tether/internal/journal"
)

type regulationCandidate struct {
	style       string
	description string
	score       func(ds *Dataset) float64
}

// Six weighted candidates; the winner is whichever accumulates the highest
// score, and confidence is the winner's share of the total — relative
// dominance, not absolute magnitude.
var regulationCandidates = []regulationCandidate{
	{
		style:       "clarifying",
		description: "You settle yourself by asking pointed questions and getting situations spelled out.",
		score: func(ds *Dataset) float64 {
			return float64(len(ds.ClarityLogs))*regClarityWeight + float64(len(ds.DecoderLogs))*regDecoderWeight
		},
	},
	{
		style:       "journaling",
		description: "You settle yourself by writing it down; the daily check-in is your anchor.",
		score: func(ds *Dataset) float64 {
			return float64(len(ds.DailyLogs)) * regJournalWeight
		},
	},
	{
		style:       "cosmic checking",
		description: "You reach for the bigger picture first and let the stars frame what happened.",
		score: func(ds *Dataset) float64 {
			return float64(len(ds.StarsLogs)) * regCosmicWeight
		},
	},
	{
		style:       "grounding",
		description: "You return to steady footing on your own; calm entries outnumber the rest.",
		score: func(ds *Dataset) float64 {
			return float64(ds.countEmotion(journal.EmotionGrounded, journal.EmotionWarm)) * regGroundedWeight
		},
	},
	{
		style:       "processing out loud",
		description: "You work through things in long-form notes before they make sense.",
		score: func(ds *Dataset) float64 {
			n := 0
			for _, d := range ds.DailyLogs {
				if d.Notes != "" {
					n++
				}
			}
			return float64(n) * regNotesWeight
		},
	},
	{
		style:       "signal tracking",
		description: "You regulate by watching concrete behavior: tags and signals over feelings.",
		score: func(ds *Dataset) float64 {
			n := 0
			for _, d := range ds.DailyLogs {
				n += len(d.EffortSignals)
			}
			return float64(n) * regSignalsWeight
		},
	},
}

var regulationFallback = RegulationStyle{
	Style:       "uncharted",
	Confidence:  0,
	Description: "Not enough activity yet to read how you regulate.",
}

func computeRegulation(ds *Dataset) RegulationStyle {
	var winner regulationCandidate
	var best, total float64
	for _, c := range regulationCandidates {
		s := c.score(ds)
		total += s
		if s > best {
			best = s
			winner = c
		}
	}
	if total == 0 {
		return regulationFallback
	}

	confidence := int(math.Round(100 * best / total))
	if confidence > 100 {
		confidence = 100
	}
	return RegulationStyle{
		Style:       winner.style,
		Confidence:  confidence,
		Description: winner.description,
	}
}
