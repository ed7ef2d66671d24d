package insights

// Tuned presentation heuristics. These are hand-tuned product constants, not
// measured quantities; keep them here rather than inline so they can be
// adjusted without touching rule control flow.
const (
	defaultWindowDays = 90
	recentWindowDays  = 30
	pulseWindowDays   = 7

	// Tendency scoring.
	tendencyMax             = 4
	tendencyStrongMin       = 60
	tendencyModerateMin     = 30
	tendencyEvidenceDivisor = 15.0

	weightEscalationCarried = 8
	weightEscalationFurther = 4
	weightOverFunctioning   = 90 // applied to the carried ratio
	weightClaritySeeking    = 12
	weightDecodingLoop      = 10
	weightDecodingRecent    = 5
	weightAnxiousMonitoring = 9
	weightPullingBack       = 10
	weightPullingBackDrift  = 3
	weightFogTolerance      = 8
	weightCosmic            = 8
	weightPushPull          = 7
	weightSteadyTending     = 6

	lowClarityThreshold = 40

	// Regulation style weights.
	regClarityWeight  = 1.5
	regDecoderWeight  = 2.0
	regJournalWeight  = 1.2
	regCosmicWeight   = 2.5
	regGroundedWeight = 1.5
	regNotesWeight    = 1.3
	regSignalsWeight  = 1.4

	// Effort balance. The follow-through fudge is an acknowledged
	// approximation carried over from product; see theyFollowThroughEstimate.
	followThroughFudge = 10

	// Signal-vs-story thresholds.
	storyHeavyRatio = 1.0
	storyMixedRatio = 0.5

	// Self-trust drift.
	driftClarityWeight   = 0.5
	driftRecentPenalty   = 5
	selfTrustStrongMin   = 65
	selfTrustBuildingMin = 35

	// Boundary alignment.
	boundaryClarityMin = 50

	// Trajectory.
	trajectoryMinLogs      = 3
	trajectoryGroundedGain = 50.0
	trajectoryShiftMin     = 5.0
	trajectoryHighShift    = 15.0

	// Repeating dynamics.
	dynamicsRecentStates = 5
)
