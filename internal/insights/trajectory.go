package insights

import (
	"math"

	"github.com/tetherhq/tether/internal/journal"
)

const (
	trajectoryStabilizing = "stabilizing"
	trajectoryPlateauing  = "plateauing"
	trajectoryFading      = "fading"

	confidenceHigh     = "high"
	confidenceModerate = "moderate"
	confidenceLow      = "low"
)

var trajectoryFallback = Trajectory{
	Direction:  trajectoryPlateauing,
	Confidence: confidenceLow,
	Note:       "Not enough recent check-ins to read a trajectory.",
}

// computeTrajectory splits the 30-day window chronologically in half and
// compares average clarity plus grounded ratio between the halves.
func computeTrajectory(ds *Dataset) Trajectory {
	logs := ds.DailyLogs30
	if len(logs) < trajectoryMinLogs {
		return trajectoryFallback
	}

	mid := len(logs) / 2
	earlyClarity, earlyGrounded := halfStats(logs[:mid])
	lateClarity, lateGrounded := halfStats(logs[mid:])

	shift := (lateClarity - earlyClarity) + trajectoryGroundedGain*(lateGrounded-earlyGrounded)
	shift = math.Round(shift*100) / 100

	var direction, note string
	switch {
	case shift > trajectoryShiftMin:
		direction = trajectoryStabilizing
		note = "Your recent check-ins are clearer and steadier than the ones before them."
	case shift < -trajectoryShiftMin:
		direction = trajectoryFading
		note = "Your recent check-ins are foggier and less steady than the ones before them."
	default:
		direction = trajectoryPlateauing
		note = "Your check-ins look about the same as they did earlier in the month."
	}

	confidence := confidenceLow
	if direction != trajectoryPlateauing {
		confidence = confidenceModerate
	}
	if math.Abs(shift) > trajectoryHighShift {
		confidence = confidenceHigh
	}

	return Trajectory{
		Direction:  direction,
		Shift:      shift,
		Confidence: confidence,
		Note:       note,
	}
}

func halfStats(logs []journal.DailyLog) (avgClarity, groundedRatio float64) {
	if len(logs) == 0 {
		return 0, 0
	}
	claritySum := 0
	grounded := 0
	for _, d := range logs {
		claritySum += d.Clarity
		if d.EmotionState == journal.EmotionGrounded || d.EmotionState == journal.EmotionWarm {
			grounded++
		}
	}
	n := float64(len(logs))
	return float64(claritySum) / n, float64(grounded) / n
}
