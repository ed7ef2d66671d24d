package insights

import (
	"time"

	"github.com/tetherhq/tether/internal/journal"
)

// Compile runs one extraction and every facet against it, assembling the
// immutable summary. Pure and synchronous: identical inputs with an
// identical now reproduce the same output, except the fallback headline,
// which depends only on the calendar date.
func Compile(conns []journal.Connection, input ProfileInput, windowDays int, now time.Time) ProfileSummary {
	return compileDataset(Extract(conns, now, windowDays), input)
}

// compileDataset assembles the summary from an already-extracted dataset so
// callers that also need the dataset (for the timeline) extract only once.
func compileDataset(ds *Dataset, input ProfileInput) ProfileSummary {
	return ProfileSummary{
		Identity:          input.Identity,
		CurrentPull:       computeCurrentPull(ds),
		Tendencies:        computeTendencies(ds),
		Regulation:        computeRegulation(ds),
		EffortBalance:     computeEffortBalance(ds),
		EmotionalOutcome:  computeEmotionalOutcome(ds),
		SignalStory:       computeSignalStory(ds),
		RepeatingDynamics: computeRepeatingDynamics(ds),
		SelfTrust:         computeSelfTrust(ds),
		BoundaryAlignment: computeBoundaryAlignment(ds, input.Boundaries),
		Trajectory:        computeTrajectory(ds),
		EvidenceSplit:     computeEvidenceSplit(ds),
		Evidence:          ds.Counts(),
		ComputedAt:        ds.Now,
	}
}
