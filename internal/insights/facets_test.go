package insights

import (
	"testing"

	"github.com/tetherhq/tether/internal/journal"
)

func TestRegulationFallbackOnEmptyData(t *testing.T) {
	got := computeRegulation(extractFor(t))
	if got.Style != regulationFallback.Style {
		t.Fatalf("style = %q, want %q", got.Style, regulationFallback.Style)
	}
	if got.Confidence != 0 {
		t.Fatalf("confidence = %d, want 0", got.Confidence)
	}
	if got.Description == "" {
		t.Fatal("fallback description must not be empty")
	}
}

func TestRegulationRelativeDominance(t *testing.T) {
	conn := activeConn("sam")
	conn.SavedLogs = []journal.SavedLog{
		saved(conn.ID, 5, journal.SourceClarity, "Clarity: a"),
		saved(conn.ID, 6, journal.SourceClarity, "Clarity: b"),
		saved(conn.ID, 7, journal.SourceDecoder, "Decoded: c"),
		saved(conn.ID, 8, journal.SourceDecoder, "Decoded: d"),
	}
	for i := 0; i < 4; i++ {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, i+1, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionUncertain))
	}

	got := computeRegulation(extractFor(t, conn))

	// clarifying = 2*1.5 + 2*2 = 7 out of a total of 11.8.
	if got.Style != "clarifying" {
		t.Fatalf("style = %q, want clarifying", got.Style)
	}
	if got.Confidence != 59 {
		t.Fatalf("confidence = %d, want 59", got.Confidence)
	}
}

func TestEffortBalanceFallbackOnEmptyData(t *testing.T) {
	got := computeEffortBalance(extractFor(t))
	if got.Insight != effortFallback.Insight {
		t.Fatalf("insight = %q, want fallback", got.Insight)
	}
	if got.YouInitiatePct != 0 || got.TheyInitiatePct != 0 {
		t.Fatal("fallback percentages should all be zero")
	}
}

func TestEffortBalanceInitiationSumsToHundred(t *testing.T) {
	conn := activeConn("sam")
	conn.DailyLogs = []journal.DailyLog{
		daily(conn.ID, 1, journal.EnergyICarried, journal.DirectionCloser, 50, journal.EmotionGrounded),
		daily(conn.ID, 2, journal.EnergyICarried, journal.DirectionCloser, 50, journal.EmotionGrounded),
		daily(conn.ID, 3, journal.EnergyTheyCarried, journal.DirectionFurther, 50, journal.EmotionGrounded),
		daily(conn.ID, 4, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded),
	}

	got := computeEffortBalance(extractFor(t, conn))

	if got.YouInitiatePct+got.TheyInitiatePct != 100 {
		t.Fatalf("initiation percentages sum to %d, want 100",
			got.YouInitiatePct+got.TheyInitiatePct)
	}
	if got.YouCarriedPct != 50 || got.TheyCarriedPct != 25 || got.BalancedPct != 25 {
		t.Fatalf("carried split = %d/%d/%d, want 50/25/25",
			got.YouCarriedPct, got.TheyCarriedPct, got.BalancedPct)
	}
	if got.YouFollowThroughPct != 50 {
		t.Fatalf("youFollowThrough = %d, want 50", got.YouFollowThroughPct)
	}
	// %further is 25, so the estimate is 100 - 25 - 10.
	if got.TheyFollowThroughPct != 65 {
		t.Fatalf("theyFollowThrough = %d, want 65", got.TheyFollowThroughPct)
	}
}

func TestTheyFollowThroughEstimateFloorsAtZero(t *testing.T) {
	if got := theyFollowThroughEstimate(95); got != 0 {
		t.Fatalf("estimate = %d, want 0", got)
	}
	if got := theyFollowThroughEstimate(0); got != 90 {
		t.Fatalf("estimate = %d, want 90", got)
	}
}

func TestEmotionalOutcomeFallbackOnEmptyData(t *testing.T) {
	got := computeEmotionalOutcome(extractFor(t))
	if len(got.Distribution) != len(emotionBuckets) {
		t.Fatalf("distribution has %d buckets, want %d", len(got.Distribution), len(emotionBuckets))
	}
	for b, pct := range got.Distribution {
		if pct != 0 {
			t.Fatalf("bucket %q = %d, want 0", b, pct)
		}
	}
	if got.Dominant != "" {
		t.Fatalf("dominant = %q, want empty on no data", got.Dominant)
	}
}

func TestEmotionalOutcomePercentagesSumToHundred(t *testing.T) {
	conn := activeConn("sam")
	conn.DailyLogs = []journal.DailyLog{
		daily(conn.ID, 1, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded),
		daily(conn.ID, 2, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionUncertain),
		daily(conn.ID, 3, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionDraining),
	}

	got := computeEmotionalOutcome(extractFor(t, conn))

	sum := 0
	for _, pct := range got.Distribution {
		sum += pct
	}
	if sum != 100 {
		t.Fatalf("distribution sums to %d, want 100", sum)
	}
}

func TestEmotionalOutcomeLossyAnxiousMapping(t *testing.T) {
	conn := activeConn("sam")
	conn.DailyLogs = []journal.DailyLog{
		daily(conn.ID, 1, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionPreoccupied),
		daily(conn.ID, 2, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionDraining),
		daily(conn.ID, 3, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded),
	}

	got := computeEmotionalOutcome(extractFor(t, conn))

	if got.Dominant != bucketAnxious {
		t.Fatalf("dominant = %q, want anxious", got.Dominant)
	}
	if got.Interpretation != outcomeInterpretations[bucketAnxious] {
		t.Fatalf("interpretation = %q, want anxious sentence", got.Interpretation)
	}
}

func TestSignalStoryClassification(t *testing.T) {
	cases := []struct {
		name    string
		daily   int
		decoder int
		clarity int
		want    string
	}{
		{"interpretation heavy", 3, 3, 2, storyInterpretationHeavy},
		{"balanced", 6, 2, 2, storyBalanced},
		{"observation first", 5, 1, 0, storyObservationFirst},
		{"no logs at all", 0, 0, 0, storyObservationFirst},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			conn := activeConn("sam")
			for i := 0; i < tc.daily; i++ {
				conn.DailyLogs = append(conn.DailyLogs,
					daily(conn.ID, i+1, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded))
			}
			for i := 0; i < tc.decoder; i++ {
				conn.SavedLogs = append(conn.SavedLogs, saved(conn.ID, i+1, journal.SourceDecoder, "Decoded: x"))
			}
			for i := 0; i < tc.clarity; i++ {
				conn.SavedLogs = append(conn.SavedLogs, saved(conn.ID, i+1, journal.SourceClarity, "Clarity: y"))
			}

			got := computeSignalStory(extractFor(t, conn))
			if got.Classification != tc.want {
				t.Fatalf("classification = %q (ratio %v), want %q", got.Classification, got.Ratio, tc.want)
			}
		})
	}
}

func TestSelfTrustLevels(t *testing.T) {
	// Six check-ins and four older saved sessions: drift 3 over activity 10.
	conn := activeConn("sam")
	for i := 0; i < 6; i++ {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, i+10, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded))
	}
	conn.SavedLogs = []journal.SavedLog{
		saved(conn.ID, 20, journal.SourceDecoder, "Decoded: a"),
		saved(conn.ID, 21, journal.SourceDecoder, "Decoded: b"),
		saved(conn.ID, 22, journal.SourceClarity, "Clarity: c"),
		saved(conn.ID, 23, journal.SourceClarity, "Clarity: d"),
	}

	got := computeSelfTrust(extractFor(t, conn))
	if got.Score != 70 {
		t.Fatalf("score = %d, want 70", got.Score)
	}
	if got.Level != selfTrustStrong {
		t.Fatalf("level = %q, want %q", got.Level, selfTrustStrong)
	}
}

func TestSelfTrustRecentDecoderPenalty(t *testing.T) {
	conn := activeConn("sam")
	for i := 0; i < 4; i++ {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, i+10, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded))
	}
	conn.SavedLogs = []journal.SavedLog{
		saved(conn.ID, 2, journal.SourceDecoder, "Decoded: a"),
		saved(conn.ID, 3, journal.SourceDecoder, "Decoded: b"),
	}

	// drift 2 over activity 6 gives 67, minus 5 per recent decoder use.
	got := computeSelfTrust(extractFor(t, conn))
	if got.Score != 57 {
		t.Fatalf("score = %d, want 57", got.Score)
	}
	if got.Level != selfTrustBuilding {
		t.Fatalf("level = %q, want %q", got.Level, selfTrustBuilding)
	}
}

func TestSelfTrustFloorsAtZero(t *testing.T) {
	conn := activeConn("sam")
	for i := 0; i < 5; i++ {
		conn.SavedLogs = append(conn.SavedLogs, saved(conn.ID, 1, journal.SourceDecoder, "Decoded: x"))
	}

	got := computeSelfTrust(extractFor(t, conn))
	if got.Score != 0 {
		t.Fatalf("score = %d, want 0", got.Score)
	}
	if got.Level != selfTrustUnstable {
		t.Fatalf("level = %q, want %q", got.Level, selfTrustUnstable)
	}
}

func TestBoundaryAlignmentFallback(t *testing.T) {
	conn := activeConn("sam")
	conn.DailyLogs = []journal.DailyLog{
		daily(conn.ID, 1, journal.EnergyBalanced, journal.DirectionSame, 80, journal.EmotionGrounded),
	}

	// No boundaries defined.
	got := computeBoundaryAlignment(extractFor(t, conn), nil)
	if got.Note != boundaryFallback.Note {
		t.Fatalf("note = %q, want fallback", got.Note)
	}

	// Boundaries but no logs.
	got = computeBoundaryAlignment(extractFor(t), []string{"no late replies"})
	if got.Note != boundaryFallback.Note {
		t.Fatalf("note = %q, want fallback", got.Note)
	}
}

func TestBoundaryAlignmentCountsEncounters(t *testing.T) {
	conn := activeConn("sam")
	withSignals := daily(conn.ID, 1, journal.EnergyBalanced, journal.DirectionSame, 80, journal.EmotionGrounded)
	withSignals.EffortSignals = []string{"planned ahead"}
	withNotes := daily(conn.ID, 2, journal.EnergyBalanced, journal.DirectionSame, 60, journal.EmotionWarm)
	withNotes.Notes = "good talk"
	broken := daily(conn.ID, 3, journal.EnergyBalanced, journal.DirectionSame, 80, journal.EmotionUncertain)
	broken.EffortSignals = []string{"cancelled plans"}
	plain := daily(conn.ID, 4, journal.EnergyBalanced, journal.DirectionSame, 90, journal.EmotionGrounded)
	conn.DailyLogs = []journal.DailyLog{withSignals, withNotes, broken, plain}

	got := computeBoundaryAlignment(extractFor(t, conn), []string{"no cancelling last minute"})

	if got.Encounters != 3 {
		t.Fatalf("encounters = %d, want 3", got.Encounters)
	}
	if got.Upheld != 2 {
		t.Fatalf("upheld = %d, want 2", got.Upheld)
	}
	if got.Pct != 67 {
		t.Fatalf("pct = %d, want 67", got.Pct)
	}
}

func TestTrajectoryFallbackBelowMinimum(t *testing.T) {
	conn := activeConn("sam")
	conn.DailyLogs = []journal.DailyLog{
		daily(conn.ID, 1, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded),
		daily(conn.ID, 2, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded),
	}

	got := computeTrajectory(extractFor(t, conn))
	if got.Direction != trajectoryPlateauing || got.Confidence != confidenceLow {
		t.Fatalf("got %q/%q, want plateauing/low fallback", got.Direction, got.Confidence)
	}
}

func TestTrajectoryStabilizing(t *testing.T) {
	conn := activeConn("sam")
	for _, ago := range []int{25, 24, 23} {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, ago, journal.EnergyBalanced, journal.DirectionSame, 30, journal.EmotionUncertain))
	}
	for _, ago := range []int{5, 4, 3} {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, ago, journal.EnergyBalanced, journal.DirectionSame, 60, journal.EmotionGrounded))
	}

	got := computeTrajectory(extractFor(t, conn))
	if got.Direction != trajectoryStabilizing {
		t.Fatalf("direction = %q, want stabilizing", got.Direction)
	}
	if got.Confidence != confidenceHigh {
		t.Fatalf("confidence = %q, want high", got.Confidence)
	}
}

func TestTrajectoryFading(t *testing.T) {
	conn := activeConn("sam")
	for _, ago := range []int{25, 24, 23} {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, ago, journal.EnergyBalanced, journal.DirectionSame, 70, journal.EmotionGrounded))
	}
	for _, ago := range []int{5, 4, 3} {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, ago, journal.EnergyBalanced, journal.DirectionSame, 30, journal.EmotionDraining))
	}

	got := computeTrajectory(extractFor(t, conn))
	if got.Direction != trajectoryFading {
		t.Fatalf("direction = %q, want fading", got.Direction)
	}
}

func TestTrajectoryPlateau(t *testing.T) {
	conn := activeConn("sam")
	for _, ago := range []int{20, 15, 10, 5} {
		conn.DailyLogs = append(conn.DailyLogs,
			daily(conn.ID, ago, journal.EnergyBalanced, journal.DirectionSame, 50, journal.EmotionGrounded))
	}

	got := computeTrajectory(extractFor(t, conn))
	if got.Direction != trajectoryPlateauing {
		t.Fatalf("direction = %q, want plateauing", got.Direction)
	}
	if got.Confidence != confidenceLow {
		t.Fatalf("confidence = %q, want low", got.Confidence)
	}
}
