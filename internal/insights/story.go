package insights

import "math"

const (
	storyInterpretationHeavy = "interpretation-heavy"
	storyBalanced            = "balanced"
	storyObservationFirst    = "observation-first"
)

var storyDescriptions = map[string]string{
	storyInterpretationHeavy: "You are generating more story than signal: AI sessions outnumber your own observations.",
	storyBalanced:            "You are checking interpretations against a similar amount of direct observation.",
	storyObservationFirst:    "You are leading with your own observations and using interpretation sparingly.",
}

// computeSignalStory compares interpretation events (decoder and clarity
// sessions) against observation events (daily check-ins). The observation
// floor of 1 avoids a divide-by-zero, and also means a user with only saved
// sessions reads as interpretation-heavy, which is the intended signal.
func computeSignalStory(ds *Dataset) SignalStory {
	interpretations := len(ds.DecoderLogs) + len(ds.ClarityLogs)
	observations := len(ds.DailyLogs)
	if observations < 1 {
		observations = 1
	}

	ratio := float64(interpretations) / float64(observations)
	ratio = math.Round(ratio*100) / 100

	var class string
	switch {
	case ratio > storyHeavyRatio:
		class = storyInterpretationHeavy
	case ratio >= storyMixedRatio:
		class = storyBalanced
	default:
		class = storyObservationFirst
	}

	return SignalStory{
		Ratio:          ratio,
		Classification: class,
		Description:    storyDescriptions[class],
	}
}
