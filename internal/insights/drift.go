package insights

import "math"

const (
	selfTrustStrong   = "Strong"
	selfTrustBuilding = "Building"
	selfTrustUnstable = "Unstable"
)

var selfTrustDescriptions = map[string]string{
	selfTrustStrong:   "You mostly trust your own read on things and reach for interpretation as a supplement.",
	selfTrustBuilding: "You are balancing your own read with outside interpretation; the lean is still noticeable.",
	selfTrustUnstable: "You are outsourcing most of your read to interpretation tools right now.",
}

// computeSelfTrust scores perception drift: how much of the user's activity
// is interpretation rather than their own observation. A burst of decoder
// use in the last seven days penalizes the score further.
func computeSelfTrust(ds *Dataset) SelfTrust {
	drift := int(math.Round(float64(len(ds.DecoderLogs)) + driftClarityWeight*float64(len(ds.ClarityLogs))))

	activity := len(ds.DailyLogs) + len(ds.SavedLogs)
	if activity < 1 {
		activity = 1
	}

	ratio := float64(drift) / float64(activity)
	score := int(math.Round(100*(1-ratio))) - driftRecentPenalty*ds.recentDecoderUses()
	if score < 0 {
		score = 0
	}

	var level string
	switch {
	case score >= selfTrustStrongMin:
		level = selfTrustStrong
	case score >= selfTrustBuildingMin:
		level = selfTrustBuilding
	default:
		level = selfTrustUnstable
	}

	return SelfTrust{
		Score:       score,
		Level:       level,
		Description: selfTrustDescriptions[level],
	}
}
