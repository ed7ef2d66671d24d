package insights

import "github.com/tetherhq/tether/internal/journal"

// The five emotional buckets the UI knows how to render. The raw-state map
// below is deliberately lossy: Preoccupied and Draining both land in anxious
// and there is no sixth bucket to tell them apart.
const (
	bucketCalm     = "calm"
	bucketConfused = "confused"
	bucketAnxious  = "anxious"
	bucketSecure   = "secure"
	bucketDetached = "detached"
)

var emotionBuckets = []string{bucketCalm, bucketConfused, bucketAnxious, bucketSecure, bucketDetached}

var emotionMap = map[string]string{
	journal.EmotionGrounded:    bucketCalm,
	journal.EmotionUncertain:   bucketConfused,
	journal.EmotionPreoccupied: bucketAnxious,
	journal.EmotionDraining:    bucketAnxious,
	journal.EmotionWarm:        bucketSecure,
	journal.EmotionDistant:     bucketDetached,
}

var outcomeInterpretations = map[string]string{
	bucketCalm:     "Most of your recent check-ins ended on steady ground.",
	bucketConfused: "You have been leaving interactions unsure of where things stand.",
	bucketAnxious:  "Recent interactions have mostly left you wound up rather than settled.",
	bucketSecure:   "Your recent check-ins point to feeling safe in these connections.",
	bucketDetached: "You have been checking out emotionally after recent interactions.",
}

// computeEmotionalOutcome maps the 30-day emotion states onto the five-bucket
// taxonomy. Percentages always sum to exactly 100 when any logs exist; the
// dominant bucket absorbs the rounding remainder.
func computeEmotionalOutcome(ds *Dataset) EmotionalOutcome {
	dist := make(map[string]int, len(emotionBuckets))
	for _, b := range emotionBuckets {
		dist[b] = 0
	}

	total := len(ds.DailyLogs30)
	if total == 0 {
		return EmotionalOutcome{
			Distribution:   dist,
			Interpretation: "Not enough recent check-ins to read an emotional outcome.",
		}
	}

	counts := make(map[string]int, len(emotionBuckets))
	for _, d := range ds.DailyLogs30 {
		bucket, ok := emotionMap[d.EmotionState]
		if !ok {
			bucket = bucketConfused
		}
		counts[bucket]++
	}

	dominant := emotionBuckets[0]
	sum := 0
	for _, b := range emotionBuckets {
		dist[b] = pctRound(float64(counts[b]), total)
		sum += dist[b]
		if counts[b] > counts[dominant] {
			dominant = b
		}
	}
	dist[dominant] += 100 - sum

	return EmotionalOutcome{
		Distribution:   dist,
		Dominant:       dominant,
		Interpretation: outcomeInterpretations[dominant],
	}
}
